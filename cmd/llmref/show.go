package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	llmref "github.com/kingfs/go-llm-reference"
)

func showCmd(opts *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id|api-string>",
		Short: "Show one model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := opts.catalog()
			if err != nil {
				return err
			}
			m, ok := catalog.Get(args[0])
			if !ok {
				return fmt.Errorf("model %q not found", args[0])
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(m)
			}
			printDetails(cmd.OutOrStdout(), m)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw catalog entry")
	return cmd
}

func printDetails(w io.Writer, m llmref.Model) {
	fmt.Fprintln(w, color.CyanString(m.ModelName))
	fmt.Fprintln(w, strings.Repeat("─", 40))
	field := func(label, value string) {
		if value != "" {
			fmt.Fprintf(w, "  %-14s %s\n", label+":", value)
		}
	}
	field("ID", m.ID)
	field("Provider", m.Provider)
	field("API string", m.APIString)
	field("Status", string(m.Status))
	field("Context", llmref.FormatContextK(m.ContextWindow))
	field("Input", llmref.FormatPrice(m.Pricing.InputPer1M)+"/1M")
	field("Output", llmref.FormatPrice(m.Pricing.OutputPer1M)+"/1M")
	field("Capabilities", strings.Join(m.Capabilities, ", "))
	field("Released", m.ReleaseDate)
	field("Verified", m.LastVerified)
	field("Description", m.Description)
}
