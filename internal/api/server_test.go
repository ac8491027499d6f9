package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	llmref "github.com/kingfs/go-llm-reference"
	"github.com/kingfs/go-llm-reference/internal/config"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.Default()
	cfg.Server.Environment = "test"
	return NewServer(cfg, llmref.Default())
}

func get(t *testing.T, s *Server, target string) (*http.Response, []byte) {
	t.Helper()
	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	return resp, body
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v), string(body))
	return v
}

type errorBody struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func TestHealth(t *testing.T) {
	resp, body := get(t, newTestServer(t), "/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"healthy"`)
}

func TestListModels(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name      string
		target    string
		wantQuery string
		wantIDs   []string
	}{
		{
			name:      "provider, capability and sort",
			target:    "/api/models?provider=Anthropic&capability=vision&sort=price-low",
			wantQuery: "provider=Anthropic&capability=vision&sort=price-low",
			wantIDs:   []string{"anthropic-claude-haiku-4-5", "anthropic-claude-sonnet-4-5"},
		},
		{
			name:      "inclusive price ceiling",
			target:    "/api/models?maxPrice=2.5&sort=price-high",
			wantQuery: "maxPrice=2.5&sort=price-high",
			wantIDs:   []string{"google-gemini-2-5-flash", "deepseek-deepseek-reasoner", "openai-gpt-4o-mini"},
		},
		{
			name:      "search",
			target:    "/api/models?search=GEMINI",
			wantQuery: "search=GEMINI",
			wantIDs:   []string{"google-gemini-2-5-pro", "google-gemini-2-5-flash"},
		},
		{
			name:      "no match is an empty list",
			target:    "/api/models?search=zzz",
			wantQuery: "search=zzz",
			wantIDs:   []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, s, tt.target)
			require.Equal(t, http.StatusOK, resp.StatusCode)

			got := decode[ListResponse](t, body)
			assert.Equal(t, tt.wantQuery, got.Query)
			assert.Equal(t, len(tt.wantIDs), got.Count)
			assert.Equal(t, 30.0, got.MaxPrice)

			ids := make([]string, 0, len(got.Models))
			for _, m := range got.Models {
				ids = append(ids, m.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestListModelsMalformedParamsDegrade(t *testing.T) {
	resp, body := get(t, newTestServer(t), "/api/models?maxPrice=cheap&sort=random")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got := decode[ListResponse](t, body)
	assert.Equal(t, llmref.Default().Len(), got.Count)
	assert.Equal(t, "", got.Query)
}

func TestFacets(t *testing.T) {
	resp, body := get(t, newTestServer(t), "/api/facets?search=gpt&capability=vision")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got := decode[FacetsResponse](t, body)
	assert.Equal(t, llmref.ProviderAll, got.Providers[0])
	assert.Equal(t, 30.0, got.State.MaxPrice)
	assert.Equal(t, llmref.SortRecommended, got.State.Sort)
	assert.Equal(t, []string{"vision"}, got.State.Capabilities)

	toggles := map[string]CapabilityFacet{}
	for _, f := range got.Capabilities {
		toggles[f.Tag] = f
	}
	require.Contains(t, toggles, "vision")
	require.Contains(t, toggles, "tools")
	assert.True(t, toggles["vision"].Selected)
	assert.Equal(t, "search=gpt", toggles["vision"].Toggle)
	assert.False(t, toggles["tools"].Selected)
	assert.Equal(t, "search=gpt&capability=vision,tools", toggles["tools"].Toggle)
}

func TestGetModel(t *testing.T) {
	s := newTestServer(t)

	resp, body := get(t, s, "/api/models/gpt-4o")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	m := decode[llmref.Model](t, body)
	assert.Equal(t, "openai-gpt-4o", m.ID)

	resp, body = get(t, s, "/api/models/nope")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, string(ErrorTypeNotFound), decode[errorBody](t, body).Error.Type)
}

func TestSnippets(t *testing.T) {
	s := newTestServer(t)

	resp, body := get(t, s, "/api/models/openai-gpt-4o/snippets")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snippets := decode[llmref.Snippets](t, body)
	assert.Contains(t, snippets.Curl, "api.openai.com")
	assert.Contains(t, snippets.Curl, `"model": "gpt-4o"`)

	resp, body = get(t, s, "/api/models/openai-gpt-4o/snippets?lang=python")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/plain"))
	assert.Contains(t, string(body), `model="gpt-4o"`)

	resp, body = get(t, s, "/api/models/openai-gpt-4o/snippets?lang=ruby")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, string(ErrorTypeValidation), decode[errorBody](t, body).Error.Type)
}

func TestCompare(t *testing.T) {
	s := newTestServer(t)

	resp, body := get(t, s, "/api/compare?ids=openai-gpt-4o,claude-haiku-4-5")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cmp := decode[llmref.Comparison](t, body)
	require.Len(t, cmp.Models, 2)
	assert.Equal(t, "anthropic-claude-haiku-4-5", cmp.Models[1].ID)
	require.Len(t, cmp.Rows, 5)
	assert.Equal(t, []string{"128k", "200k"}, cmp.Rows[0].Values)

	resp, _ = get(t, s, "/api/compare?ids=openai-gpt-4o,openai-gpt-4o")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = get(t, s, "/api/compare?ids=openai-gpt-4o,ghost")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, decode[errorBody](t, body).Error.Message, "ghost")
}

func TestLLMsText(t *testing.T) {
	resp, body := get(t, newTestServer(t), "/llms.txt")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, llmref.TextContentType, resp.Header.Get("Content-Type"))
	assert.True(t, strings.HasPrefix(string(body), "# LLM Model Reference\n"))
	assert.Contains(t, string(body), "## Anthropic\n")
}

func TestUnknownRoute(t *testing.T) {
	resp, body := get(t, newTestServer(t), "/nowhere")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, string(ErrorTypeNotFound), decode[errorBody](t, body).Error.Type)
}
