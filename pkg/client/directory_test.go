package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// directoryRecorder serves /assigned-assets and records each query it
// receives.
type directoryRecorder struct {
	mu         sync.Mutex
	queries    []map[string]string
	totalPages int
}

func (d *directoryRecorder) handle(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	d.mu.Lock()
	d.queries = append(d.queries, map[string]string{
		"search": r.URL.Query().Get("search"),
		"type":   r.URL.Query().Get("type"),
		"page":   r.URL.Query().Get("page"),
	})
	totalPages := d.totalPages
	d.mu.Unlock()

	if page > totalPages {
		page = totalPages
	}
	writeJSON(w, http.StatusOK, AssetPage{
		Items:      []Asset{{ProductName: "Laptop"}},
		Page:       page,
		TotalPages: totalPages,
		TotalItems: int64(totalPages * 10),
	})
}

func (d *directoryRecorder) lastQuery() map[string]string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.queries[len(d.queries)-1]
}

func (d *directoryRecorder) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queries)
}

func newDirectoryClient(t *testing.T, totalPages int) (*Client, *directoryRecorder, func()) {
	t.Helper()
	recorder := &directoryRecorder{totalPages: totalPages}

	mux := http.NewServeMux()
	registerLogin(mux, signTestToken(t, time.Hour), User{Email: "employee@example.com", Role: RoleEmployee})
	mux.HandleFunc("/assigned-assets", recorder.handle)
	srv := httptest.NewServer(mux)

	c := New(srv.URL)
	signIn(t, c)
	return c, recorder, srv.Close
}

func TestDirectoryBrowser_FilterChangeResetsPage(t *testing.T) {
	c, recorder, closeSrv := newDirectoryClient(t, 5)
	defer closeSrv()

	browser := c.Directory()
	browser.SetPage(3)
	_, err := browser.Fetch(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "3", recorder.lastQuery()["page"])

	// A new search resets to page 1.
	browser.SetSearch("lap")
	assert.Equal(t, 1, browser.Page())
	_, err = browser.Fetch(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, map[string]string{"search": "lap", "type": "", "page": "1"}, recorder.lastQuery())

	// Adding a type keeps the search; the filters combine.
	browser.SetPage(2)
	browser.SetType(AssetTypeReturnable)
	assert.Equal(t, 1, browser.Page())
	_, err = browser.Fetch(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, map[string]string{"search": "lap", "type": AssetTypeReturnable, "page": "1"}, recorder.lastQuery())

	// Clearing the search keeps the type and resets the page again.
	browser.SetPage(4)
	browser.SetSearch("")
	_, err = browser.Fetch(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, map[string]string{"search": "", "type": AssetTypeReturnable, "page": "1"}, recorder.lastQuery())

	// Setting the same value twice is not a change.
	browser.SetPage(4)
	browser.SetType(AssetTypeReturnable)
	assert.Equal(t, 4, browser.Page())
}

func TestDirectoryBrowser_PageClampedToServerBounds(t *testing.T) {
	c, recorder, closeSrv := newDirectoryClient(t, 2)
	defer closeSrv()

	browser := c.Directory()
	browser.SetPage(9)

	page, err := browser.Fetch(context.Background())
	assert.NoError(t, err)

	// Out-of-range fetch, then a clamped refetch.
	assert.Equal(t, 2, recorder.count())
	assert.Equal(t, "2", recorder.lastQuery()["page"])
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 2, browser.Page())
}

func TestDirectoryBrowser_PageBelowOneClamps(t *testing.T) {
	c, _, closeSrv := newDirectoryClient(t, 3)
	defer closeSrv()

	browser := c.Directory()
	browser.SetPage(-2)
	assert.Equal(t, 1, browser.Page())
}
