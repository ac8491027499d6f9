package updater

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	fiberlog "github.com/gofiber/fiber/v2/log"

	llmref "github.com/kingfs/go-llm-reference"
)

// DefaultOpenRouterURL is the public OpenRouter model listing.
const DefaultOpenRouterURL = "https://openrouter.ai/api/v1/models"

type openRouterModel struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	ContextLength int               `json:"context_length"`
	Pricing       openRouterPricing `json:"pricing"`
}

// Prices are USD per token, encoded as strings.
type openRouterPricing struct {
	Prompt     string `json:"prompt"`
	Completion string `json:"completion"`
}

type openRouterResponse struct {
	Data []openRouterModel `json:"data"`
}

// OpenRouterSource reads current prices and context lengths from the OpenRouter
// model listing. The listing is fetched once per source. When the request
// fails and CachePath names a previously saved response, that copy is used.
type OpenRouterSource struct {
	URL       string
	Client    *http.Client
	CachePath string

	once     sync.Once
	byKey    map[string]openRouterModel // "provider/api-string", lower-cased
	bySuffix map[string]openRouterModel // api string, only when unique
	err      error
}

// NewOpenRouterSource returns a source reading from url (DefaultOpenRouterURL when empty).
func NewOpenRouterSource(url, cachePath string) *OpenRouterSource {
	if url == "" {
		url = DefaultOpenRouterURL
	}
	return &OpenRouterSource{URL: url, Client: http.DefaultClient, CachePath: cachePath}
}

// Lookup implements Source.
func (s *OpenRouterSource) Lookup(ctx context.Context, m llmref.Model) (Observation, bool, error) {
	s.once.Do(func() { s.err = s.load(ctx) })
	if s.err != nil {
		return Observation{}, false, s.err
	}

	api := strings.ToLower(m.APIString)
	or, ok := s.byKey[strings.ToLower(m.Provider)+"/"+api]
	if !ok {
		or, ok = s.bySuffix[api]
	}
	if !ok {
		fiberlog.Debugf("No OpenRouter entry for %s", m.ID)
		return Observation{}, false, nil
	}

	var obs Observation
	if or.ContextLength > 0 {
		obs.ContextWindow = &or.ContextLength
	}
	obs.InputPer1M = perMillion(or.Pricing.Prompt)
	obs.OutputPer1M = perMillion(or.Pricing.Completion)
	return obs, true, nil
}

func (s *OpenRouterSource) load(ctx context.Context) error {
	body, err := s.fetch(ctx)
	if err != nil {
		if s.CachePath == "" {
			return err
		}
		fiberlog.Warnf("Network error: %v. Attempting to use cached listing %s", err, s.CachePath)
		cached, cerr := os.ReadFile(s.CachePath)
		if cerr != nil {
			return fmt.Errorf("fetch OpenRouter listing: %w (cache: %v)", err, cerr)
		}
		body = cached
	} else if s.CachePath != "" {
		if err := os.MkdirAll(filepath.Dir(s.CachePath), 0o755); err == nil {
			if err := os.WriteFile(s.CachePath, body, 0o644); err != nil {
				fiberlog.Warnf("Failed to cache OpenRouter listing: %v", err)
			}
		}
	}

	var resp openRouterResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("parse OpenRouter listing: %w", err)
	}
	fiberlog.Infof("Fetched %d models from OpenRouter", len(resp.Data))
	s.index(resp.Data)
	return nil
}

func (s *OpenRouterSource) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// index keys entries by full ID and by the part after the provider prefix. A
// suffix shared by several providers is ambiguous and left out.
func (s *OpenRouterSource) index(models []openRouterModel) {
	s.byKey = make(map[string]openRouterModel, len(models))
	s.bySuffix = make(map[string]openRouterModel, len(models))
	counts := make(map[string]int, len(models))
	for _, m := range models {
		id := strings.ToLower(m.ID)
		s.byKey[id] = m
		if _, suffix, ok := strings.Cut(id, "/"); ok {
			counts[suffix]++
			s.bySuffix[suffix] = m
		}
	}
	for suffix, n := range counts {
		if n > 1 {
			delete(s.bySuffix, suffix)
		}
	}
}

func perMillion(perToken string) *float64 {
	v, err := strconv.ParseFloat(perToken, 64)
	if err != nil || v < 0 {
		return nil
	}
	// Round to cents-of-a-cent so float noise does not show up as a change.
	p, _ := strconv.ParseFloat(strconv.FormatFloat(v*1e6, 'f', 4, 64), 64)
	return &p
}
