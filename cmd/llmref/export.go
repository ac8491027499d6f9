package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	llmref "github.com/kingfs/go-llm-reference"
)

func exportCmd(opts *options) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the llms.txt listing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := opts.catalog()
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				return llmref.WriteText(cmd.OutOrStdout(), catalog.Models())
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			if err := llmref.WriteText(f, catalog.Models()); err != nil {
				f.Close()
				return fmt.Errorf("write %s: %w", output, err)
			}
			return f.Close()
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}
