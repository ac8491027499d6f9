package llmref

import (
	"math"
	"strconv"
	"strings"
)

// ProviderAll is the provider sentinel meaning "no provider filter".
const ProviderAll = "all"

// Query parameter names.
const (
	SearchParam   = "search"
	ProviderParam = "provider"
	MaxPriceParam = "maxPrice"
	SortParam     = "sort"
)

// QueryState is the decoded set of active filter and sort parameters.
// The zero value matches every model and keeps dataset order.
type QueryState struct {
	Search       string
	Provider     string
	Capabilities []string
	// MaxPrice is an inclusive ceiling on Pricing.OutputPer1M. Nil means the
	// dataset maximum.
	MaxPrice     *float64
	Sort         SortKey
}

// ParseQueryState rebuilds a QueryState from a raw query string. Malformed values
// fall back to their defaults instead of failing.
func ParseQueryState(rawQuery string) QueryState {
	p := ParseParams(rawQuery)
	s := QueryState{
		Search:       p.Get(SearchParam),
		Provider:     p.Get(ProviderParam),
		Capabilities: DecodeCapabilities(p.Get(CapabilityParam)),
		Sort:         ParseSortKey(p.Get(SortParam)),
	}
	if s.Provider == "" {
		s.Provider = ProviderAll
	}
	if v, ok := parsePrice(p.Get(MaxPriceParam)); ok {
		s.MaxPrice = &v
	}
	return s
}

func parsePrice(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Encode renders the state as a query string, omitting every default so that the
// zero state encodes to "".
func (s QueryState) Encode() string {
	p := ParseParams("")
	p.Update(SearchParam, s.Search)
	p.Update(ProviderParam, s.Provider)
	p.Update(CapabilityParam, EncodeCapabilities(s.Capabilities))
	if s.MaxPrice != nil {
		p.Set(MaxPriceParam, strconv.FormatFloat(*s.MaxPrice, 'f', -1, 64))
	}
	if k := ParseSortKey(string(s.Sort)); k != SortRecommended {
		p.Set(SortParam, string(k))
	}
	return p.Encode()
}

// WithDefaults returns a copy with the provider sentinel, the default sort and,
// when unset, maxPrice filled in.
func (s QueryState) WithDefaults(maxPrice float64) QueryState {
	if s.Provider == "" {
		s.Provider = ProviderAll
	}
	s.Sort = ParseSortKey(string(s.Sort))
	if s.MaxPrice == nil {
		s.MaxPrice = &maxPrice
	}
	return s
}

// Match reports whether m passes every filter in s. A nil MaxPrice imposes no ceiling.
func (s QueryState) Match(m Model) bool {
	if s.Search != "" {
		q := strings.ToLower(s.Search)
		if !strings.Contains(strings.ToLower(m.ModelName), q) &&
			!strings.Contains(strings.ToLower(m.APIString), q) &&
			!strings.Contains(strings.ToLower(m.Provider), q) {
			return false
		}
	}
	if s.Provider != "" && s.Provider != ProviderAll && s.Provider != m.Provider {
		return false
	}
	if !m.HasAll(s.Capabilities) {
		return false
	}
	if s.MaxPrice != nil && m.Pricing.OutputPer1M > *s.MaxPrice {
		return false
	}
	return true
}

// Filter returns the models passing s, ordered by s.Sort. The input slice is not
// modified and no model is duplicated. When s.MaxPrice is nil the ceiling is the
// highest output price in models.
func Filter(models []Model, s QueryState) []Model {
	s = s.WithDefaults(MaxOutputPrice(models))

	out := make([]Model, 0, len(models))
	for _, m := range models {
		if s.Match(m) {
			out = append(out, m)
		}
	}
	SortModels(out, s.Sort)
	return out
}

// MaxOutputPrice returns the highest Pricing.OutputPer1M in models, or 0 for none.
func MaxOutputPrice(models []Model) float64 {
	var highest float64
	for _, m := range models {
		highest = max(highest, m.Pricing.OutputPer1M)
	}
	return highest
}
