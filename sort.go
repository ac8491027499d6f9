package llmref

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

// SortKey selects the ordering applied after filtering.
type SortKey string

const (
	SortRecommended SortKey = "recommended"
	SortPriceLow    SortKey = "price-low"
	SortPriceHigh   SortKey = "price-high"
	SortContext     SortKey = "context"
	SortNewest      SortKey = "newest"
	SortName        SortKey = "name"
)

// SortKeys lists every supported key, default first.
var SortKeys = []SortKey{SortRecommended, SortPriceLow, SortPriceHigh, SortContext, SortNewest, SortName}

// ParseSortKey maps s to a known key; anything unrecognised is SortRecommended.
func ParseSortKey(s string) SortKey {
	k := SortKey(strings.TrimSpace(s))
	if slices.Contains(SortKeys, k) {
		return k
	}
	return SortRecommended
}

// SortModels orders models in place. The sort is stable: ties keep their relative
// order, and SortRecommended leaves the slice untouched.
func SortModels(models []Model, key SortKey) {
	var less func(a, b Model) int
	switch key {
	case SortPriceLow:
		less = func(a, b Model) int { return cmp.Compare(a.Pricing.OutputPer1M, b.Pricing.OutputPer1M) }
	case SortPriceHigh:
		less = func(a, b Model) int { return cmp.Compare(b.Pricing.OutputPer1M, a.Pricing.OutputPer1M) }
	case SortContext:
		less = func(a, b Model) int { return cmp.Compare(b.ContextWindow, a.ContextWindow) }
	case SortNewest:
		less = func(a, b Model) int { return compareDates(b.LastVerified, a.LastVerified) }
	case SortName:
		less = func(a, b Model) int { return strings.Compare(a.ModelName, b.ModelName) }
	default:
		return
	}
	slices.SortStableFunc(models, less)
}

var dateLayouts = []string{time.DateOnly, time.RFC3339, time.RFC3339Nano}

// ParseDate parses a last_verified style date. ok is false when no layout fits.
func ParseDate(s string) (t time.Time, ok bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// compareDates orders unparseable dates before every valid one.
func compareDates(a, b string) int {
	ta, okA := ParseDate(a)
	tb, okB := ParseDate(b)
	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return -1
	case !okB:
		return 1
	}
	return ta.Compare(tb)
}
