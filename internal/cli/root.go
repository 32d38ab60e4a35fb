package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

var configFile string

var rootCmd = &cobra.Command{
	Use:   "lingobridge",
	Short: "Minimal translation gateway",
	Long: `A small HTTP gateway that forwards translation requests to one
configured provider and returns a uniform JSON result.

Supported providers: Google Cloud Translation, Gemini, MyMemory

Use "lingobridge serve" to start the HTTP server.`,
	Version:      version,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default ./.env when present)")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
