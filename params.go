package llmref

import (
	"net/url"
	"strings"
)

type param struct {
	key string // decoded
	raw string // "k=v" exactly as received or as produced by Set
}

// Params is an order-preserving view of a raw query string. Unlike url.Values it
// never reorders parameters and leaves untouched pairs byte-for-byte as they were.
type Params struct {
	pairs []param
}

// ParseParams splits rawQuery (with or without a leading '?') into ordered pairs.
func ParseParams(rawQuery string) *Params {
	rawQuery = strings.TrimPrefix(rawQuery, "?")
	p := &Params{}
	if rawQuery == "" {
		return p
	}
	for _, raw := range strings.Split(rawQuery, "&") {
		if raw == "" {
			continue
		}
		k, _, _ := strings.Cut(raw, "=")
		p.pairs = append(p.pairs, param{key: unescape(k), raw: raw})
	}
	return p
}

// Get returns the decoded value of the first pair named key, or "".
func (p *Params) Get(key string) string {
	for _, kv := range p.pairs {
		if kv.key == key {
			_, v, _ := strings.Cut(kv.raw, "=")
			return unescape(v)
		}
	}
	return ""
}

// Has reports whether a pair named key exists.
func (p *Params) Has(key string) bool {
	for _, kv := range p.pairs {
		if kv.key == key {
			return true
		}
	}
	return false
}

// Set replaces the first pair named key in place and drops any later duplicates.
// A key not yet present is appended.
func (p *Params) Set(key, value string) {
	raw := escape(key) + "=" + escape(value)
	out := p.pairs[:0]
	replaced := false
	for _, kv := range p.pairs {
		if kv.key != key {
			out = append(out, kv)
			continue
		}
		if !replaced {
			out = append(out, param{key: key, raw: raw})
			replaced = true
		}
	}
	if !replaced {
		out = append(out, param{key: key, raw: raw})
	}
	p.pairs = out
}

// Del removes every pair named key.
func (p *Params) Del(key string) {
	out := p.pairs[:0]
	for _, kv := range p.pairs {
		if kv.key != key {
			out = append(out, kv)
		}
	}
	p.pairs = out
}

// Update mirrors a filter control: a non-empty value other than the "all"
// sentinel sets the parameter, anything else removes it.
func (p *Params) Update(key, value string) {
	if value == "" || value == ProviderAll {
		p.Del(key)
		return
	}
	p.Set(key, value)
}

// Encode joins the pairs back into a query string without a leading '?'.
func (p *Params) Encode() string {
	raws := make([]string, len(p.pairs))
	for i, kv := range p.pairs {
		raws[i] = kv.raw
	}
	return strings.Join(raws, "&")
}

func unescape(s string) string {
	if u, err := url.QueryUnescape(s); err == nil {
		return u
	}
	return s
}

// escape is url.QueryEscape with commas left readable, since list-valued
// parameters are comma-joined.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "%2C", ",")
}
