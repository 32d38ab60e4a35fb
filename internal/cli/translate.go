package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"lingobridge/internal/config"
	"lingobridge/internal/models"

	"github.com/spf13/cobra"
)

var (
	targetLang string
	sourceLang string
)

var errTranslationFailed = errors.New("translation failed")

var translateCmd = &cobra.Command{
	Use:   "translate [flags] TEXT...",
	Short: "Translate text once through the configured provider",
	Long: `Translate text through the same gateway the HTTP server uses and
print the result as JSON. Arguments are joined with single spaces.

Example:
  lingobridge translate --to es Hello world`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		logger, err := setupLogger(cfg.Env)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer logger.Sync()

		ctx := cmd.Context()
		svc, cleanup, err := buildService(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer cleanup()

		result := svc.Translate(ctx, models.TranslationRequest{
			Text:           strings.Join(args, " "),
			TargetLanguage: targetLang,
			SourceLanguage: sourceLang,
		})

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}

		if !result.Success {
			return errTranslationFailed
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringVarP(&targetLang, "to", "t", "", "Target language code (required)")
	translateCmd.Flags().StringVarP(&sourceLang, "from", "f", models.AutoDetect, "Source language code")

	translateCmd.MarkFlagRequired("to")
}
