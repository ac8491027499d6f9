package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	llmref "github.com/kingfs/go-llm-reference"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	labelStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1).Width(28)
)

func compareCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <id> <id>...",
		Short: "Compare models side by side",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := opts.catalog()
			if err != nil {
				return err
			}

			var sel llmref.Selection
			for _, id := range args {
				sel.Add(id)
			}
			if !sel.Ready() {
				return fmt.Errorf("select at least %d distinct models to compare", llmref.MinCompare)
			}
			models, missing := sel.Resolve(catalog)
			if len(missing) > 0 {
				return fmt.Errorf("unknown models: %s", strings.Join(missing, ", "))
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderComparison(llmref.Compare(models)))
			return nil
		},
	}
}

func renderComparison(c llmref.Comparison) string {
	headers := []string{""}
	for _, m := range c.Models {
		headers = append(headers, m.ModelName)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return labelStyle
			default:
				return cellStyle
			}
		})
	for _, r := range c.Rows {
		t.Row(append([]string{r.Label}, r.Values...)...)
	}
	return t.Render()
}
