package llmref

import "strings"

// Well-known capability tags used by the bundled dataset.
const (
	CapVision    = "vision"
	CapTools     = "tools"
	CapJSONMode  = "json-mode"
	CapStreaming = "streaming"
	CapReasoning = "reasoning"
	CapAudio     = "audio"
)

// CapabilityParam is the query parameter holding the comma-joined capability set.
const CapabilityParam = "capability"

// DecodeCapabilities splits a comma-joined capability parameter into tags.
// Empty segments and repeated tags are dropped; first-seen order is kept.
func DecodeCapabilities(s string) []string {
	if s == "" {
		return nil
	}
	var tags []string
	seen := make(map[string]bool)
	for _, t := range strings.Split(s, ",") {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		tags = append(tags, t)
	}
	return tags
}

// EncodeCapabilities joins tags with commas. It is the inverse of DecodeCapabilities
// for any tag list without duplicates or empty entries.
func EncodeCapabilities(tags []string) string {
	return strings.Join(tags, ",")
}

// ToggleCapability adds tag to the capability parameter of rawQuery when absent and
// removes it when present. The parameter is deleted once the set is empty. Every other
// parameter keeps its position and its original encoding, so toggling a tag on and then
// off yields the query string it started from whenever the capability value was already
// in its comma-joined form.
func ToggleCapability(rawQuery, tag string) string {
	p := ParseParams(rawQuery)
	current := DecodeCapabilities(p.Get(CapabilityParam))

	next := make([]string, 0, len(current)+1)
	found := false
	for _, c := range current {
		if c == tag {
			found = true
			continue
		}
		next = append(next, c)
	}
	if !found {
		next = append(next, tag)
	}

	if len(next) == 0 {
		p.Del(CapabilityParam)
	} else {
		p.Set(CapabilityParam, EncodeCapabilities(next))
	}
	return p.Encode()
}
