// Package testutil provides testing utilities for the review scraper.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
)

// ReviewSpec describes one raw review served by the mock API.
type ReviewSpec struct {
	ID          string
	SteamID     string
	Created     int64
	Updated     int64
	Playtime    int64
	Content     string
	Comments    int
	Helpful     int
	Funny       int
	Recommended bool
}

func (r ReviewSpec) toMap() map[string]any {
	updated := r.Updated
	if updated == 0 {
		updated = r.Created
	}
	return map[string]any{
		"recommendationid": r.ID,
		"author": map[string]any{
			"steamid":            r.SteamID,
			"playtime_at_review": r.Playtime,
		},
		"timestamp_created": r.Created,
		"timestamp_updated": updated,
		"review":            r.Content,
		"comment_count":     r.Comments,
		"votes_up":          r.Helpful,
		"votes_funny":       r.Funny,
		"voted_up":          r.Recommended,
	}
}

// MockSteam is a configurable mock of the Steam review listing endpoint.
// Pages are served in the order they were added: cursor "*" selects page 0
// and each page's response carries the cursor of the next. Requests past
// the last added page receive an empty page, which is the end-of-stream
// signal for the real endpoint too.
type MockSteam struct {
	server *httptest.Server
	mu     sync.Mutex
	pages  []page

	// Total is reported as query_summary.total_reviews on every page.
	Total int

	// Status, when nonzero, is returned for every request instead of the
	// configured pages.
	Status int

	// RawBody, when set, is written verbatim for every request.
	RawBody string

	// Tracking
	RequestCount int
	LastQuery    url.Values
}

type page struct {
	reviews []map[string]any
	raw     string
}

// NewMockSteam creates a new mock review API server.
func NewMockSteam() *MockSteam {
	mock := &MockSteam{}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		defer mock.mu.Unlock()

		mock.RequestCount++
		mock.LastQuery = r.URL.Query()

		if mock.Status != 0 {
			w.WriteHeader(mock.Status)
			return
		}
		if mock.RawBody != "" {
			fmt.Fprint(w, mock.RawBody)
			return
		}

		index := mock.pageIndex(r.URL.Query().Get("cursor"))
		if index >= 0 && index < len(mock.pages) && mock.pages[index].raw != "" {
			fmt.Fprint(w, mock.pages[index].raw)
			return
		}

		var reviews []map[string]any
		if index >= 0 && index < len(mock.pages) {
			reviews = mock.pages[index].reviews
		}
		if reviews == nil {
			reviews = []map[string]any{}
		}

		body := map[string]any{
			"success": 1,
			"query_summary": map[string]any{
				"num_reviews":   len(reviews),
				"total_reviews": mock.Total,
			},
			"cursor":  cursorFor(index + 1),
			"reviews": reviews,
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(body); err != nil {
			panic(fmt.Sprintf("encode mock page: %v", err))
		}
	}))

	return mock
}

// pageIndex maps a request cursor to the page it selects.
func (m *MockSteam) pageIndex(cursor string) int {
	if cursor == "*" || cursor == "" {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimPrefix(cursor, "page-"))
	if err != nil {
		return len(m.pages) // unknown cursor reads as past-the-end
	}
	return n
}

func cursorFor(index int) string {
	return fmt.Sprintf("page-%d", index)
}

// AddPage appends a page of reviews to the sequence served by the mock.
func (m *MockSteam) AddPage(reviews ...ReviewSpec) {
	m.mu.Lock()
	defer m.mu.Unlock()

	maps := make([]map[string]any, len(reviews))
	for i, r := range reviews {
		maps[i] = r.toMap()
	}
	m.pages = append(m.pages, page{reviews: maps})
}

// SetRawPage sets a verbatim response body for the page at index, for
// exercising protocol error paths.
func (m *MockSteam) SetRawPage(index int, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for len(m.pages) <= index {
		m.pages = append(m.pages, page{})
	}
	m.pages[index].raw = body
}

// URL returns the mock server URL.
func (m *MockSteam) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockSteam) Close() {
	m.server.Close()
}

// Requests returns the number of requests received so far.
func (m *MockSteam) Requests() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.RequestCount
}

// Reset clears all tracking counters.
func (m *MockSteam) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.LastQuery = nil
}
