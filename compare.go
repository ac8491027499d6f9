package llmref

import (
	"fmt"
	"slices"
	"strings"
)

// MinCompare is the smallest selection worth comparing.
const MinCompare = 2

// Comparison row labels.
const (
	RowContext      = "Context Window"
	RowInput        = "Input / 1M"
	RowOutput       = "Output / 1M"
	RowCapabilities = "Capabilities"
	RowDescription  = "Description"
)

// ComparisonRow is one attribute across every compared model.
type ComparisonRow struct {
	Label  string   `json:"label"`
	Values []string `json:"values"`
}

// Comparison lays selected models side by side.
type Comparison struct {
	Models []Model         `json:"models"`
	Rows   []ComparisonRow `json:"rows"`
}

// Compare builds the comparison table for models in the given order.
func Compare(models []Model) Comparison {
	rows := []ComparisonRow{
		{Label: RowContext},
		{Label: RowInput},
		{Label: RowOutput},
		{Label: RowCapabilities},
		{Label: RowDescription},
	}
	for _, m := range models {
		rows[0].Values = append(rows[0].Values, fmt.Sprintf("%.0fk", float64(m.ContextWindow)/1000))
		rows[1].Values = append(rows[1].Values, FormatPrice(m.Pricing.InputPer1M))
		rows[2].Values = append(rows[2].Values, FormatPrice(m.Pricing.OutputPer1M))
		rows[3].Values = append(rows[3].Values, strings.Join(m.Capabilities, ", "))
		rows[4].Values = append(rows[4].Values, m.Description)
	}
	return Comparison{Models: slices.Clone(models), Rows: rows}
}

// Selection tracks the models picked for comparison, in pick order.
type Selection struct {
	ids []string
}

// Add selects id; selecting twice is a no-op.
func (s *Selection) Add(id string) {
	if !slices.Contains(s.ids, id) {
		s.ids = append(s.ids, id)
	}
}

// Remove deselects id.
func (s *Selection) Remove(id string) {
	s.ids = slices.DeleteFunc(s.ids, func(v string) bool { return v == id })
}

// Toggle flips the selection state of id.
func (s *Selection) Toggle(id string) {
	if slices.Contains(s.ids, id) {
		s.Remove(id)
		return
	}
	s.Add(id)
}

// Clear empties the selection.
func (s *Selection) Clear() { s.ids = nil }

// IDs returns the selected IDs in pick order.
func (s *Selection) IDs() []string { return slices.Clone(s.ids) }

// Ready reports whether enough models are selected to compare.
func (s *Selection) Ready() bool { return len(s.ids) >= MinCompare }

// Resolve looks every selected ID up in c. Unknown IDs are returned in missing.
func (s *Selection) Resolve(c *Catalog) (models []Model, missing []string) {
	for _, id := range s.ids {
		if m, ok := c.Get(id); ok {
			models = append(models, m)
		} else {
			missing = append(missing, id)
		}
	}
	return models, missing
}
