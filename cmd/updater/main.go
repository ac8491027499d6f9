// Command updater re-checks the catalog dataset against the configured update
// source and reports proposed changes. The dataset file is never modified.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/spf13/cobra"

	"github.com/kingfs/go-llm-reference/internal/config"
	"github.com/kingfs/go-llm-reference/internal/updater"
)

func main() {
	config.LoadEnvFiles(config.DefaultEnvFiles)

	if err := newRootCmd().Execute(); err != nil {
		fiberlog.Errorf("Update check failed: %v", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		dataPath   string
		reportPath string
		logLevel   string
		source     string
		sourceURL  string
		cachePath  string
	)

	cmd := &cobra.Command{
		Use:   "updater",
		Short: "Check catalog entries for pricing and context changes",
		Args:  cobra.NoArgs,
		// main logs the error itself.
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			config.SetupLogLevel(logLevel)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var src updater.Source
			switch source {
			case "mock", "":
				src = updater.NoopSource{}
			case "openrouter":
				src = updater.NewOpenRouterSource(sourceURL, cachePath)
			default:
				return fmt.Errorf("unknown source %q (want mock or openrouter)", source)
			}

			_, err := updater.Run(ctx, dataPath, reportPath, src)
			return err
		},
	}

	cmd.Flags().StringVar(&dataPath, "data", envOr("LLMREF_DATA", "data/models.json"), "dataset file to check")
	cmd.Flags().StringVar(&reportPath, "report", "", "write the change report as YAML to this file")
	cmd.Flags().StringVar(&source, "source", "mock", "update source: mock or openrouter")
	cmd.Flags().StringVar(&sourceURL, "source-url", "", "override the OpenRouter listing URL")
	cmd.Flags().StringVar(&cachePath, "cache", "", "cache file for the OpenRouter listing, used when the network is down")
	cmd.Flags().StringVar(&logLevel, "log-level", envOr("LOG_LEVEL", "info"), "trace|debug|info|warn|error")
	return cmd
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
