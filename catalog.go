package llmref

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/models.json
var embeddedModels []byte

// Catalog is a loaded, read-only model dataset. It is safe for concurrent use.
type Catalog struct {
	models       []Model
	byID         map[string]int
	apiIndex     map[string]string // lower-cased API string -> ID
	providers    []string
	capabilities []string
	maxPrice     float64
}

// New builds a catalog over models. The slice is copied; the caller may reuse it.
func New(models []Model) *Catalog {
	c := &Catalog{
		models:   slices.Clone(models),
		byID:     make(map[string]int, len(models)),
		apiIndex: make(map[string]string, len(models)),
	}
	provSeen := make(map[string]bool)
	capSeen := make(map[string]bool)
	for i, m := range c.models {
		c.byID[m.ID] = i
		if key := strings.ToLower(m.APIString); key != "" {
			// First entry wins when two providers share an API string.
			if _, ok := c.apiIndex[key]; !ok {
				c.apiIndex[key] = m.ID
			}
		}
		if !provSeen[m.Provider] {
			provSeen[m.Provider] = true
			c.providers = append(c.providers, m.Provider)
		}
		for _, t := range m.Capabilities {
			if !capSeen[t] {
				capSeen[t] = true
				c.capabilities = append(c.capabilities, t)
			}
		}
	}
	slices.Sort(c.providers)
	slices.Sort(c.capabilities)
	c.maxPrice = MaxOutputPrice(c.models)
	return c
}

// Load reads a catalog file. JSON arrays are the native format; files ending in
// .yaml or .yml are decoded as a YAML list with the same field names.
func Load(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model catalog: %w", err)
	}
	models, err := Decode(b, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	return New(models), nil
}

// Decode parses a dataset. ext selects the format (".yaml"/".yml" for YAML,
// anything else for JSON).
func Decode(b []byte, ext string) ([]Model, error) {
	var models []Model
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.NewDecoder(bytes.NewReader(b)).Decode(&models); err != nil {
			return nil, fmt.Errorf("parse model catalog YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(b, &models); err != nil {
			return nil, fmt.Errorf("parse model catalog JSON: %w", err)
		}
	}
	return models, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the catalog built from the bundled dataset.
func Default() *Catalog {
	defaultOnce.Do(func() {
		models, err := Decode(embeddedModels, ".json")
		if err != nil {
			panic(fmt.Sprintf("llmref: bundled dataset: %v", err))
		}
		defaultCatalog = New(models)
	})
	return defaultCatalog
}

// Get retrieves a model by its ID or, failing that, by its API string
// (case-insensitive).
func (c *Catalog) Get(name string) (Model, bool) {
	if i, ok := c.byID[name]; ok {
		return c.models[i], true
	}
	if id, ok := c.apiIndex[strings.ToLower(name)]; ok {
		return c.models[c.byID[id]], true
	}
	return Model{}, false
}

// Len returns the number of models.
func (c *Catalog) Len() int { return len(c.models) }

// Models returns a copy of every model in dataset order.
func (c *Catalog) Models() []Model { return slices.Clone(c.models) }

// Providers returns the distinct providers, sorted.
func (c *Catalog) Providers() []string { return slices.Clone(c.providers) }

// Capabilities returns the distinct capability tags, sorted.
func (c *Catalog) Capabilities() []string { return slices.Clone(c.capabilities) }

// MaxOutputPrice is the highest output price in the dataset, the default price ceiling.
func (c *Catalog) MaxOutputPrice() float64 { return c.maxPrice }

// Search applies s to the whole dataset, resolving an absent price ceiling to the
// dataset maximum.
func (c *Catalog) Search(s QueryState) []Model {
	return Filter(c.models, s.WithDefaults(c.maxPrice))
}

// QueryBuilder provides a chainable API for filtering models.
type QueryBuilder struct {
	catalog *Catalog
	state   QueryState
}

// Query starts a new query builder.
func (c *Catalog) Query() *QueryBuilder {
	return &QueryBuilder{catalog: c, state: QueryState{Provider: ProviderAll}}
}

// Search filters by a case-insensitive substring of name, API string or provider.
func (q *QueryBuilder) Search(s string) *QueryBuilder {
	q.state.Search = s
	return q
}

// Provider filters models by exact provider name.
func (q *QueryBuilder) Provider(p string) *QueryBuilder {
	q.state.Provider = p
	return q
}

// Has requires the given capability tags; calls accumulate.
func (q *QueryBuilder) Has(tags ...string) *QueryBuilder {
	for _, t := range tags {
		if !slices.Contains(q.state.Capabilities, t) {
			q.state.Capabilities = append(q.state.Capabilities, t)
		}
	}
	return q
}

// MaxPrice caps the output price per million tokens (inclusive).
func (q *QueryBuilder) MaxPrice(v float64) *QueryBuilder {
	q.state.MaxPrice = &v
	return q
}

// SortBy sets the ordering.
func (q *QueryBuilder) SortBy(k SortKey) *QueryBuilder {
	q.state.Sort = k
	return q
}

// State returns the accumulated query state.
func (q *QueryBuilder) State() QueryState { return q.state }

// List returns the models matching the query criteria.
func (q *QueryBuilder) List() []Model {
	return q.catalog.Search(q.state)
}
