package cli

import (
	"github.com/ds124wfegd/animegen/internal/appServer"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the generate relay and the web page",
	Long: `Run the HTTP relay that forwards photos to the anime transform API.

The page is served at / and the relay at POST /api/generate. Without an
API key the relay runs in preview mode and echoes photos back.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		appServer.NewServer(appConfig)
	},
}
