package llmref

import "slices"

// Status is the lifecycle state of a model offering.
type Status string

const (
	StatusActive     Status = "active"
	StatusDeprecated Status = "deprecated"
	StatusBeta       Status = "beta"
)

// Pricing holds per-million-token prices in USD.
type Pricing struct {
	InputPer1M  float64 `json:"input_per_1m" yaml:"input_per_1m"`
	OutputPer1M float64 `json:"output_per_1m" yaml:"output_per_1m"`
}

// Model is one catalog entry describing a provider's LLM API offering.
type Model struct {
	ID            string   `json:"id" yaml:"id"`
	Provider      string   `json:"provider" yaml:"provider"`
	ModelName     string   `json:"model_name" yaml:"model_name"`
	APIString     string   `json:"api_string" yaml:"api_string"`
	Pricing       Pricing  `json:"pricing" yaml:"pricing"`
	ContextWindow int      `json:"context_window" yaml:"context_window"`
	Capabilities  []string `json:"capabilities" yaml:"capabilities"`
	LastVerified  string   `json:"last_verified" yaml:"last_verified"`
	Status        Status   `json:"status" yaml:"status"`
	Description   string   `json:"description,omitempty" yaml:"description,omitempty"`
	ReleaseDate   string   `json:"release_date,omitempty" yaml:"release_date,omitempty"`
}

// HasCapability reports whether the model carries the given tag.
func (m Model) HasCapability(tag string) bool {
	return slices.Contains(m.Capabilities, tag)
}

// HasAll reports whether every tag in tags is present on the model.
// An empty tag list always matches.
func (m Model) HasAll(tags []string) bool {
	for _, t := range tags {
		if !m.HasCapability(t) {
			return false
		}
	}
	return true
}
