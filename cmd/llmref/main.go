// Package main provides the llmref CLI: list, inspect and compare catalog models.
package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	llmref "github.com/kingfs/go-llm-reference"
)

// options carries the persistent flags shared by every subcommand.
type options struct {
	catalogPath string
	noColor     bool
}

func (o *options) catalog() (*llmref.Catalog, error) {
	if o.catalogPath == "" {
		return llmref.Default(), nil
	}
	return llmref.Load(o.catalogPath)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "llmref",
		Short: "LLM API reference catalog",
		Long: `llmref browses a catalog of LLM API offerings.

Filter and sort with the same parameters the web view uses, print request
snippets for a model, compare models side by side or export llms.txt.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.noColor {
				color.NoColor = true
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&opts.catalogPath, "catalog", "", "dataset file (.json, .yaml); defaults to the bundled catalog")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(
		listCmd(opts),
		showCmd(opts),
		snippetsCmd(opts),
		compareCmd(opts),
		exportCmd(opts),
	)
	return rootCmd
}
