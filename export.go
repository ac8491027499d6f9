package llmref

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// TextContentType is the content type of the plain-text export.
const TextContentType = "text/plain; charset=utf-8"

var enPrinter = message.NewPrinter(language.English)

// FormatContextK renders a token count in thousands the way a browser renders
// (n/1000).toLocaleString("en-US"): grouped integer part, up to three decimals
// with trailing zeros removed, plus a "k" suffix. 1048576 becomes "1,048.576k".
func FormatContextK(tokens int) string {
	whole := enPrinter.Sprintf("%d", tokens/1000)
	frac := strings.TrimRight(fmt.Sprintf("%03d", tokens%1000), "0")
	if frac == "" {
		return whole + "k"
	}
	return whole + "." + frac + "k"
}

// FormatPrice renders a per-million price as "$1.25".
func FormatPrice(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// WriteText writes the grouped plain-text listing (llms.txt) of models to w.
// Providers appear alphabetically; models keep dataset order within a provider.
func WriteText(w io.Writer, models []Model) error {
	var b strings.Builder
	b.WriteString("# LLM Model Reference\n")
	b.WriteString("# See https://llmstxt.org for format details\n\n")

	var providers []string
	for _, m := range models {
		if !slices.Contains(providers, m.Provider) {
			providers = append(providers, m.Provider)
		}
	}
	slices.Sort(providers)

	for _, p := range providers {
		fmt.Fprintf(&b, "## %s\n\n", p)
		for _, m := range models {
			if m.Provider != p {
				continue
			}
			fmt.Fprintf(&b, "- %s (%s)\n", m.ModelName, m.APIString)
			fmt.Fprintf(&b, "  - Context: %s\n", FormatContextK(m.ContextWindow))
			fmt.Fprintf(&b, "  - Input: %s/1M\n", FormatPrice(m.Pricing.InputPer1M))
			fmt.Fprintf(&b, "  - Output: %s/1M\n", FormatPrice(m.Pricing.OutputPer1M))
			if m.Description != "" {
				fmt.Fprintf(&b, "  - Description: %s\n", m.Description)
			}
			b.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Text returns the plain-text listing as a string.
func Text(models []Model) string {
	var b strings.Builder
	_ = WriteText(&b, models)
	return b.String()
}
