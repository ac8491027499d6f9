package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	llmref "github.com/kingfs/go-llm-reference"
)

func listCmd(opts *options) *cobra.Command {
	var (
		search       string
		provider     string
		capabilities string
		maxPrice     float64
		sortKey      string
		query        string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List models matching a filter",
		Long: `List models matching a filter.

Flags mirror the web query parameters. --query accepts a raw query string
(for example "provider=OpenAI&capability=vision,tools&sort=price-low");
individual flags override the values it carries.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := opts.catalog()
			if err != nil {
				return err
			}

			state := llmref.ParseQueryState(query)
			flags := cmd.Flags()
			if flags.Changed("search") {
				state.Search = search
			}
			if flags.Changed("provider") {
				state.Provider = provider
			}
			if flags.Changed("capability") {
				state.Capabilities = llmref.DecodeCapabilities(capabilities)
			}
			if flags.Changed("max-price") {
				state.MaxPrice = &maxPrice
			}
			if flags.Changed("sort") {
				state.Sort = llmref.ParseSortKey(sortKey)
			}

			models := catalog.Search(state)
			printModels(cmd.OutOrStdout(), models)
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d of %d models", len(models), catalog.Len())
			if q := state.Encode(); q != "" {
				fmt.Fprintf(cmd.OutOrStdout(), " (?%s)", q)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "substring of model name, API string or provider")
	cmd.Flags().StringVarP(&provider, "provider", "p", llmref.ProviderAll, "exact provider name")
	cmd.Flags().StringVarP(&capabilities, "capability", "c", "", "comma-separated required capabilities")
	cmd.Flags().Float64Var(&maxPrice, "max-price", 0, "maximum output price per 1M tokens (inclusive)")
	cmd.Flags().StringVar(&sortKey, "sort", string(llmref.SortRecommended), "sort order: "+joinKeys())
	cmd.Flags().StringVarP(&query, "query", "q", "", "raw query string")

	return cmd
}

func joinKeys() string {
	keys := make([]string, len(llmref.SortKeys))
	for i, k := range llmref.SortKeys {
		keys[i] = string(k)
	}
	return strings.Join(keys, "|")
}

func printModels(w io.Writer, models []llmref.Model) {
	if len(models) == 0 {
		fmt.Fprintln(w, "No models match the current filters")
		return
	}
	for _, m := range models {
		name := color.CyanString("%-20s", m.ModelName)
		status := ""
		switch m.Status {
		case llmref.StatusDeprecated:
			status = " " + color.RedString("[deprecated]")
		case llmref.StatusBeta:
			status = " " + color.YellowString("[beta]")
		}
		fmt.Fprintf(w, "%s %-22s %-10s %8s /%8s  %10s  %s%s\n",
			name,
			m.APIString,
			m.Provider,
			llmref.FormatPrice(m.Pricing.InputPer1M),
			llmref.FormatPrice(m.Pricing.OutputPer1M),
			llmref.FormatContextK(m.ContextWindow),
			strings.Join(m.Capabilities, ","),
			status,
		)
	}
}
