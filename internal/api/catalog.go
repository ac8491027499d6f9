package api

import (
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"

	llmref "github.com/kingfs/go-llm-reference"
)

// CatalogHandler serves the model list, lookups, snippets, comparisons and the
// plain-text export. The catalog is read-only, so one handler serves all requests.
type CatalogHandler struct {
	catalog *llmref.Catalog
}

// NewCatalogHandler creates a catalog handler
func NewCatalogHandler(catalog *llmref.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListResponse is the body of GET /api/models.
type ListResponse struct {
	Query    string         `json:"query"`
	Count    int            `json:"count"`
	MaxPrice float64        `json:"max_price"`
	Models   []llmref.Model `json:"models"`
}

// CapabilityFacet is one toggleable capability chip.
type CapabilityFacet struct {
	Tag      string `json:"tag"`
	Selected bool   `json:"selected"`
	// Toggle is the query string after flipping this tag on the current request.
	Toggle   string `json:"toggle"`
}

// FacetsResponse is the body of GET /api/facets.
type FacetsResponse struct {
	Providers    []string          `json:"providers"`
	Capabilities []CapabilityFacet `json:"capabilities"`
	SortKeys     []llmref.SortKey  `json:"sort_keys"`
	MaxPrice     float64           `json:"max_price"`
	State        StateView         `json:"state"`
}

// StateView is the QueryState with defaults resolved, as seen by the client.
type StateView struct {
	Search       string         `json:"search"`
	Provider     string         `json:"provider"`
	Capabilities []string       `json:"capabilities"`
	MaxPrice     float64        `json:"max_price"`
	Sort         llmref.SortKey `json:"sort"`
}

func rawQuery(c *fiber.Ctx) string {
	return string(c.Request().URI().QueryString())
}

func (h *CatalogHandler) state(c *fiber.Ctx) llmref.QueryState {
	return llmref.ParseQueryState(rawQuery(c)).WithDefaults(h.catalog.MaxOutputPrice())
}

// List returns the models matching the request's query parameters.
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	s := llmref.ParseQueryState(rawQuery(c))
	models := h.catalog.Search(s)
	return c.JSON(ListResponse{
		Query:    s.Encode(),
		Count:    len(models),
		MaxPrice: h.catalog.MaxOutputPrice(),
		Models:   models,
	})
}

// Facets returns the filter controls for the current request, including the
// query string each capability chip would navigate to.
func (h *CatalogHandler) Facets(c *fiber.Ctx) error {
	raw := rawQuery(c)
	s := h.state(c)

	caps := h.catalog.Capabilities()
	facets := make([]CapabilityFacet, 0, len(caps))
	for _, tag := range caps {
		facets = append(facets, CapabilityFacet{
			Tag:      tag,
			Selected: slices.Contains(s.Capabilities, tag),
			Toggle:   llmref.ToggleCapability(raw, tag),
		})
	}

	selected := s.Capabilities
	if selected == nil {
		selected = []string{}
	}

	return c.JSON(FacetsResponse{
		Providers:    append([]string{llmref.ProviderAll}, h.catalog.Providers()...),
		Capabilities: facets,
		SortKeys:     llmref.SortKeys,
		MaxPrice:     h.catalog.MaxOutputPrice(),
		State: StateView{
			Search:       s.Search,
			Provider:     s.Provider,
			Capabilities: selected,
			MaxPrice:     *s.MaxPrice,
			Sort:         s.Sort,
		},
	})
}

func (h *CatalogHandler) lookup(c *fiber.Ctx) (llmref.Model, error) {
	id := c.Params("id")
	m, ok := h.catalog.Get(id)
	if !ok {
		return llmref.Model{}, NewNotFoundError("model " + id)
	}
	return m, nil
}

// Get returns a single model by ID or API string.
func (h *CatalogHandler) Get(c *fiber.Ctx) error {
	m, err := h.lookup(c)
	if err != nil {
		return err
	}
	return c.JSON(m)
}

// Snippets returns every code example for a model, or a single one as plain text
// when ?lang= is given.
func (h *CatalogHandler) Snippets(c *fiber.Ctx) error {
	m, err := h.lookup(c)
	if err != nil {
		return err
	}
	snippets := llmref.GenerateSnippets(m)

	lang := c.Query("lang")
	if lang == "" {
		return c.JSON(snippets)
	}
	body, ok := snippets.Get(lang)
	if !ok {
		return NewValidationError("unsupported snippet language " + lang)
	}
	c.Set(fiber.HeaderContentType, llmref.TextContentType)
	return c.SendString(body)
}

// Compare lays out the models named in ?ids= side by side.
func (h *CatalogHandler) Compare(c *fiber.Ctx) error {
	var sel llmref.Selection
	for _, id := range strings.Split(c.Query("ids"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			sel.Add(id)
		}
	}
	if !sel.Ready() {
		return NewValidationError("select at least two models to compare")
	}

	models, missing := sel.Resolve(h.catalog)
	if len(missing) > 0 {
		return NewNotFoundError("model " + strings.Join(missing, ", "))
	}
	return c.JSON(llmref.Compare(models))
}

// Text serves the grouped plain-text listing.
func (h *CatalogHandler) Text(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, llmref.TextContentType)
	return c.SendString(llmref.Text(h.catalog.Models()))
}
