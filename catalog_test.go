package llmref

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp: %v", err)
	}
	return p
}

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	if c.Len() == 0 {
		t.Fatal("bundled dataset is empty")
	}
	if got := c.MaxOutputPrice(); got != 30 {
		t.Errorf("MaxOutputPrice = %v, want 30", got)
	}
	wantProviders := []string{"Anthropic", "DeepSeek", "Google", "Mistral", "OpenAI"}
	if got := c.Providers(); !slices.Equal(got, wantProviders) {
		t.Errorf("Providers = %v, want %v", got, wantProviders)
	}
	if !slices.IsSorted(c.Capabilities()) {
		t.Errorf("Capabilities not sorted: %v", c.Capabilities())
	}
}

func TestDefaultDatasetInvariants(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range Default().Models() {
		if seen[m.ID] {
			t.Errorf("duplicate id %s", m.ID)
		}
		seen[m.ID] = true
		if m.Pricing.InputPer1M < 0 || m.Pricing.OutputPer1M < 0 {
			t.Errorf("%s: negative pricing", m.ID)
		}
		if m.ContextWindow <= 0 {
			t.Errorf("%s: context window must be positive", m.ID)
		}
		caps := slices.Clone(m.Capabilities)
		slices.Sort(caps)
		if len(slices.Compact(caps)) != len(m.Capabilities) {
			t.Errorf("%s: duplicate capabilities", m.ID)
		}
		if _, ok := ParseDate(m.LastVerified); !ok {
			t.Errorf("%s: unparseable last_verified %q", m.ID, m.LastVerified)
		}
		switch m.Status {
		case StatusActive, StatusBeta, StatusDeprecated:
		default:
			t.Errorf("%s: unknown status %q", m.ID, m.Status)
		}
	}
}

func TestGet(t *testing.T) {
	c := Default()

	// Exact ID
	id := "openai-gpt-4o"
	if m, ok := c.Get(id); !ok || m.ID != id {
		t.Errorf("Failed to find model by ID: %s", id)
	}

	// API string, case-insensitive
	if m, ok := c.Get("GPT-4o-Mini"); !ok || m.ID != "openai-gpt-4o-mini" {
		t.Errorf("Expected openai-gpt-4o-mini for api string lookup, got %+v", m)
	}

	if _, ok := c.Get("non-existent-model"); ok {
		t.Error("Expected not to find non-existent model")
	}
}

func TestModelsReturnsCopy(t *testing.T) {
	c := Default()
	ms := c.Models()
	ms[0].ModelName = "mutated"
	if m, _ := c.Get(ms[0].ID); m.ModelName == "mutated" {
		t.Error("Models() exposed internal storage")
	}
}

func TestQuery(t *testing.T) {
	c := Default()

	// 1. Provider filtering
	p := "Anthropic"
	results := c.Query().Provider(p).List()
	if len(results) == 0 {
		t.Fatalf("no models found for provider %s", p)
	}
	for _, m := range results {
		if m.Provider != p {
			t.Errorf("Expected provider %s, got %s for model %s", p, m.Provider, m.ID)
		}
	}

	// 2. Capability filtering (AND logic)
	results = c.Query().Has(CapVision).Has(CapReasoning).List()
	for _, m := range results {
		if !m.HasCapability(CapVision) || !m.HasCapability(CapReasoning) {
			t.Errorf("Model %s missing required capabilities", m.ID)
		}
	}

	// 3. Price ceiling and sort
	results = c.Query().MaxPrice(2.5).SortBy(SortPriceLow).List()
	want := []string{"openai-gpt-4o-mini", "deepseek-deepseek-reasoner", "google-gemini-2-5-flash"}
	if got := ids(results); !slices.Equal(got, want) {
		t.Errorf("cheap models = %v, want %v", got, want)
	}

	// 4. Empty query returns everything in dataset order
	all := c.Query().List()
	if !slices.Equal(ids(all), ids(c.Models())) {
		t.Errorf("Expected %d models in dataset order, got %v", c.Len(), ids(all))
	}
}

func TestLoadJSON(t *testing.T) {
	p := writeTemp(t, "models.json", `[
	  {"id":"a","provider":"Acme","model_name":"A","api_string":"a-1","pricing":{"input_per_1m":1,"output_per_1m":2},"context_window":8000,"capabilities":["tools"],"last_verified":"2025-01-01","status":"active"},
	  {"id":"b","provider":"Acme","model_name":"B","api_string":"b-1","pricing":{"input_per_1m":3,"output_per_1m":4},"context_window":16000,"capabilities":[],"last_verified":"2025-01-02","status":"beta"}
	]`)
	c, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Len() != 2 || c.MaxOutputPrice() != 4 {
		t.Errorf("unexpected catalog: len=%d max=%v", c.Len(), c.MaxOutputPrice())
	}
}

func TestLoadYAML(t *testing.T) {
	p := writeTemp(t, "models.yaml", `
- id: a
  provider: Acme
  model_name: A
  api_string: a-1
  pricing:
    input_per_1m: 1
    output_per_1m: 2.5
  context_window: 8000
  capabilities: [tools, vision]
  last_verified: "2025-01-01"
  status: active
`)
	c, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	m, ok := c.Get("a")
	if !ok {
		t.Fatal("model a not loaded")
	}
	if m.Pricing.OutputPer1M != 2.5 || !m.HasAll([]string{"tools", "vision"}) {
		t.Errorf("unexpected model: %+v", m)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
	p := writeTemp(t, "bad.json", `{"not":"array"}`)
	if _, err := Load(p); err == nil {
		t.Error("expected error for non-array JSON")
	}
}

func BenchmarkGetByID(b *testing.B) {
	c := Default()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get("openai-gpt-4o")
	}
}

func BenchmarkGetByAPIString(b *testing.B) {
	c := Default()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get("GPT-4O")
	}
}

func BenchmarkQueryCapabilities(b *testing.B) {
	c := Default()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Query().Has(CapVision).Has(CapTools).List()
	}
}
