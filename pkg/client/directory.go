package client

import (
	"context"
	"sync"
)

// DirectoryBrowser holds directory browsing state: a name search, a
// type filter and a page cursor. Changing either filter resets the page
// to 1; a page past the server's bounds is clamped and refetched.
type DirectoryBrowser struct {
	c *Client

	mu        sync.Mutex
	search    string
	assetType string
	page      int
}

// Directory starts a browser on page 1 with no filters.
func (c *Client) Directory() *DirectoryBrowser {
	return &DirectoryBrowser{c: c, page: 1}
}

// SetSearch sets the product-name filter. A changed value resets the
// page to 1; search and type filters combine.
func (b *DirectoryBrowser) SetSearch(search string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.search == search {
		return
	}
	b.search = search
	b.page = 1
}

// SetType sets the asset-type filter. A changed value resets the page
// to 1 and keeps the search.
func (b *DirectoryBrowser) SetType(assetType string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.assetType == assetType {
		return
	}
	b.assetType = assetType
	b.page = 1
}

// SetPage moves the cursor. Values below 1 clamp to 1; values past the
// last page are clamped on the next Fetch.
func (b *DirectoryBrowser) SetPage(page int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if page < 1 {
		page = 1
	}
	b.page = page
}

// Search returns the current name filter.
func (b *DirectoryBrowser) Search() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.search
}

// Type returns the current type filter.
func (b *DirectoryBrowser) Type() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.assetType
}

// Page returns the current page cursor.
func (b *DirectoryBrowser) Page() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.page
}

// Fetch loads the current page. When the cursor sits past the last
// page — e.g. after items were deleted — it clamps to the last page and
// fetches that instead.
func (b *DirectoryBrowser) Fetch(ctx context.Context) (*AssetPage, error) {
	b.mu.Lock()
	search, assetType, page := b.search, b.assetType, b.page
	b.mu.Unlock()

	result, err := b.c.directoryPage(ctx, search, assetType, page)
	if err != nil {
		return nil, err
	}

	if result.TotalPages > 0 && page > result.TotalPages {
		page = result.TotalPages
		result, err = b.c.directoryPage(ctx, search, assetType, page)
		if err != nil {
			return nil, err
		}
	}

	b.mu.Lock()
	// Keep the cursor only if the filters did not change underneath us.
	if b.search == search && b.assetType == assetType {
		b.page = result.Page
	}
	b.mu.Unlock()

	return result, nil
}
