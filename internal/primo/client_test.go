// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package primo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scholar-assistant/pkg/types"
)

const sampleResponse = `{
	"docs": [
		{
			"id": "alma991234",
			"context": "PC",
			"pnx": {
				"control": {"recordid": ["alma991234"]},
				"display": {
					"title": ["Deep Learning"],
					"creator": ["LeCun, Yann", "Bengio, Yoshua"],
					"type": ["article"],
					"creationdate": ["2015"]
				},
				"sort": {"creationdate": ["20150528"]},
				"facets": {"tlevel": ["peer_reviewed"]}
			},
			"link": {"record": "https://example.org/record/alma991234"}
		}
	],
	"info": {"total": 1234}
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	cfg := types.PrimoConfig{
		BaseURL: ts.URL,
		VID:     "01CALS_USB:01CALS_USB",
		Tab:     "Everything",
		Scope:   "MyInst_and_CI",
		Inst:    "01CALS_USB",
	}
	return NewClient(cfg, zerolog.Nop()), ts
}

func TestClientSearch(t *testing.T) {
	var captured url.Values
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		captured = r.URL.Query()
		assert.Equal(t, "/pnxs", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleResponse))
	})

	q := "any,contains,deep learning,AND;facet_tlevel,exact,peer_reviewed"
	rs, err := c.Search(context.Background(), q, SearchOptions{Limit: 10})
	require.NoError(t, err)

	require.Len(t, rs.Docs, 1)
	assert.Equal(t, 1234, rs.Info.Total)
	doc := rs.Docs[0]
	assert.Equal(t, "alma991234", doc.ID)
	assert.Equal(t, []string{"Deep Learning"}, doc.PNX.Display.Title)
	assert.Equal(t, []string{"20150528"}, doc.PNX.Sort.CreationDate)
	assert.Equal(t, "https://example.org/record/alma991234", doc.Link.Record)

	assert.Equal(t, q, captured.Get("q"))
	assert.Equal(t, "01CALS_USB:01CALS_USB", captured.Get("vid"))
	assert.Equal(t, "Everything", captured.Get("tab"))
	assert.Equal(t, "MyInst_and_CI", captured.Get("scope"))
	assert.Equal(t, "10", captured.Get("limit"))
	assert.Equal(t, "0", captured.Get("offset"))
	assert.Equal(t, "en", captured.Get("lang"))
	assert.Equal(t, "advanced", captured.Get("mode"))
	assert.Equal(t, "rank", captured.Get("sort"))
	assert.Equal(t, "Y", captured.Get("skipDelivery"))
	assert.Equal(t, "true", captured.Get("rapido"))
	assert.Equal(t, "true", captured.Get("showPnx"))
}

func TestClientSearchClampsOptions(t *testing.T) {
	var captured url.Values
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		captured = r.URL.Query()
		w.Write([]byte(`{"docs": [], "info": {"total": 0}}`))
	})

	tests := []struct {
		name       string
		opts       SearchOptions
		wantLimit  string
		wantOffset string
		wantSort   string
	}{
		{"limit above max", SearchOptions{Limit: 500}, "50", "0", "rank"},
		{"limit below min", SearchOptions{Limit: 0}, "1", "0", "rank"},
		{"negative offset", SearchOptions{Limit: 10, Offset: -5}, "10", "0", "rank"},
		{"custom sort", SearchOptions{Limit: 10, Sort: "date"}, "10", "0", "date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Search(context.Background(), "any,contains,x", tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLimit, captured.Get("limit"))
			assert.Equal(t, tt.wantOffset, captured.Get("offset"))
			assert.Equal(t, tt.wantSort, captured.Get("sort"))
		})
	}
}

func TestClientSearchHTTPError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad request: malformed q", http.StatusBadRequest)
	})

	_, err := c.Search(context.Background(), "nonsense", SearchOptions{Limit: 10})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "malformed q")
}

func TestClientSearchEmptyResults(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"docs": [], "info": {"total": 0}}`))
	})

	rs, err := c.Search(context.Background(), "any,contains,nothing", SearchOptions{Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, rs.Docs)
	assert.Zero(t, rs.Info.Total)
}
