package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/atotto/clipboard"
	"github.com/ds124wfegd/animegen/internal/controller"
	"github.com/ds124wfegd/animegen/internal/entity"
	"github.com/ds124wfegd/animegen/internal/pkg/relayclient"
	"github.com/ds124wfegd/animegen/internal/pkg/storage"
	"github.com/ds124wfegd/animegen/internal/pkg/ui"
	"github.com/gabriel-vasile/mimetype"
	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"
)

var (
	generateRelay string
	generateOut   string
)

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true, ".bmp": true,
}

var generateCmd = &cobra.Command{
	Use:   "generate [image]",
	Short: "Generate an anime version of a photo",
	Long: `Send one photo through the relay and save the result.

Without an argument, pick a photo from the current directory with a fuzzy finder.

Examples:
  animegen generate me.jpg
  animegen generate --relay http://localhost:8080 --out ./anime`,
	Aliases: []string{"gen"},
	Args:    cobra.MaximumNArgs(1),
	RunE:    runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateRelay, "relay", "", "Relay base URL (defaults to client.relay_url)")
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "Directory for the result (defaults to client.output_dir)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) > 0 {
		path = args[0]
	} else {
		picked, err := pickImage(".")
		if err != nil {
			return err
		}
		path = picked
	}

	ctrl := controller.New(relayclient.New(nil, relayURL(generateRelay)))
	if err := ctrl.Select(path); err != nil {
		fmt.Println(ui.FormatError("Failed to read photo"))
		return err
	}

	ctx, stop := signal.NotifyContext(getContext(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println(ui.FormatInfo("Transforming into anime..."))
	resp, err := ctrl.Generate(ctx)
	if err != nil {
		fmt.Println(ui.FormatError(ctrl.Snapshot().ErrorMessage()))
		return err
	}
	if resp.Message != "" {
		fmt.Println(ui.FormatWarning(resp.Message))
	}

	artifact, ok := ctrl.Download()
	if !ok {
		return errors.New(entity.MsgGenericFailure)
	}

	store := storage.NewFileStorage(outputDir(generateOut))
	if artifact.Inline() && store.Exists(artifact.Filename) {
		fmt.Println(ui.FormatMuted("Replacing " + store.Path(artifact.Filename)))
	}
	saved, err := artifact.Save(store)
	if errors.Is(err, controller.ErrRemoteArtifact) {
		link := string(artifact.Payload)
		fmt.Println(ui.FormatSuccess("Anime image: " + link))
		if err := clipboard.WriteAll(link); err != nil {
			fmt.Println(ui.FormatMuted("(Clipboard access failed, please copy manually)"))
		}
		return nil
	}
	if err != nil {
		fmt.Println(ui.FormatError("Failed to save image"))
		return err
	}

	fmt.Println(ui.FormatSuccess("Saved " + saved))
	return nil
}

// findImages lists the image files directly inside dir.
func findImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if imageExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

func pickImage(dir string) (string, error) {
	files, err := findImages(dir)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		fmt.Println(ui.FormatWarning("No photos found in " + dir))
		return "", entity.ErrNoFile
	}

	idx, err := fuzzyfinder.Find(
		files,
		func(i int) string {
			return filepath.Base(files[i])
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			return describeImage(files[i])
		}),
	)
	if err != nil {
		return "", entity.ErrNoFile
	}
	return files[idx], nil
}

func describeImage(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return err.Error()
	}
	mediaType := "unknown"
	if mt, err := mimetype.DetectFile(path); err == nil {
		mediaType = mt.String()
	}
	return fmt.Sprintf("File: %s\nType: %s\nSize: %d bytes", filepath.Base(path), mediaType, info.Size())
}
