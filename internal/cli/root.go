// Package cli wires the animegen commands.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/ds124wfegd/animegen/config"
	"github.com/ds124wfegd/animegen/internal/pkg/ui"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var appConfig *config.Config

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "animegen",
	Short: "Turn a photo into an anime character",
	Long: ui.StyleTitle.Render("animegen") + " - AI Anime Character Generator\n\n" +
		"Serves the generate relay and its web page, or runs a terminal client\n" +
		"against a running relay.",
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(generateCmd)
}

func initializeApp(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	appConfig = cfg

	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		logrus.SetLevel(level)
	}
	return nil
}

func relayURL(flag string) string {
	if flag != "" {
		return flag
	}
	return appConfig.Client.RelayURL
}

func outputDir(flag string) string {
	if flag != "" {
		return flag
	}
	return appConfig.Client.OutputDir
}

// getContext returns a context for operations
func getContext() context.Context {
	return context.Background()
}
