package cli

import (
	"github.com/ds124wfegd/animegen/internal/controller"
	"github.com/ds124wfegd/animegen/internal/pkg/relayclient"
	"github.com/ds124wfegd/animegen/internal/pkg/storage"
	"github.com/ds124wfegd/animegen/internal/tui"
	"github.com/spf13/cobra"
)

var (
	tuiRelay string
	tuiOut   string
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive terminal client",
	Long: `Pick a photo, generate its anime version and save it, all in the terminal.

Keys:
- enter : choose the typed photo path
- g     : generate anime version
- r     : upload new photo
- d     : download
- c     : copy image link
- q     : quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVar(&tuiRelay, "relay", "", "Relay base URL (defaults to client.relay_url)")
	tuiCmd.Flags().StringVarP(&tuiOut, "out", "o", "", "Directory for downloads (defaults to client.output_dir)")
}

func runTUI(cmd *cobra.Command, args []string) error {
	ctrl := controller.New(relayclient.New(nil, relayURL(tuiRelay)))
	return tui.Run(ctrl, tui.Options{Store: storage.NewFileStorage(outputDir(tuiOut))})
}
