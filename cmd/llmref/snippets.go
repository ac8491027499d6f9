package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	llmref "github.com/kingfs/go-llm-reference"
)

func snippetsCmd(opts *options) *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "snippets <id|api-string>",
		Short: "Print request snippets for a model",
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

			s := llmref.GenerateSnippets(m)
			out := cmd.OutOrStdout()
			if lang != "" {
				code, ok := s.Get(lang)
				if !ok {
					return fmt.Errorf("unknown language %q (want curl, python or javascript)", lang)
				}
				fmt.Fprintln(out, code)
				return nil
			}

			for i, l := range []string{llmref.LangCurl, llmref.LangPython, llmref.LangJavaScript} {
				if i > 0 {
					fmt.Fprintln(out)
				}
				code, _ := s.Get(l)
				fmt.Fprintln(out, color.YellowString("# %s", l))
				fmt.Fprintln(out, code)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&lang, "lang", "l", "", "curl, python or javascript")
	return cmd
}
