package main

import (
	"os"

	"github.com/spf13/cobra"

	"tnlog/internal/config"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:           "tnlog",
		Short:         "Download and decode flight-recorder tracklogs",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config (optional)")

	cmd.AddCommand(newDownloadCommand(&configPath))
	cmd.AddCommand(newRawCommand(&configPath))
	cmd.AddCommand(newDecodeCommand(&configPath))
	cmd.AddCommand(newSessionsCommand(&configPath))
	return cmd
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}
