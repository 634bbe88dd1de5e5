package client

import (
	"context"
	"fmt"
	"net/http"
)

// CreateAssetInput is the payload for posting a new asset. Available
// quantity starts equal to the total; it is not settable here.
type CreateAssetInput struct {
	ProductName     string `json:"productName"`
	ProductImage    string `json:"productImage"`
	ProductType     string `json:"productType"`
	ProductQuantity int    `json:"productQuantity"`
	ProductDetails  string `json:"productDetails"`
}

// UpdateAssetInput carries the fields to change; nil fields are left
// untouched by the server.
type UpdateAssetInput struct {
	ProductName       *string `json:"productName,omitempty"`
	ProductImage      *string `json:"productImage,omitempty"`
	ProductType       *string `json:"productType,omitempty"`
	ProductQuantity   *int    `json:"productQuantity,omitempty"`
	AvailableQuantity *int    `json:"availableQuantity,omitempty"`
	ProductDetails    *string `json:"productDetails,omitempty"`
}

// CreateAsset posts a new asset. HR only.
func (c *Client) CreateAsset(ctx context.Context, in CreateAssetInput) (*Asset, error) {
	asset, err := do[Asset](ctx, c.http, http.MethodPost, "/assets", in, nil)
	if err != nil {
		return nil, err
	}
	c.cache.Invalidate(tagAssets, tagDirectory)
	return &asset, nil
}

// UpdateAsset edits an asset the caller owns.
func (c *Client) UpdateAsset(ctx context.Context, assetID string, in UpdateAssetInput) (*Asset, error) {
	asset, err := do[Asset](ctx, c.http, http.MethodPatch, "/assets/"+assetID, in, nil)
	if err != nil {
		return nil, err
	}
	c.cache.Invalidate(tagAssets, tagDirectory)
	return &asset, nil
}

// DeleteAsset removes an asset the caller owns.
func (c *Client) DeleteAsset(ctx context.Context, assetID string) error {
	if _, err := do[map[string]string](ctx, c.http, http.MethodDelete, "/assets/"+assetID, nil, nil); err != nil {
		return err
	}
	c.cache.Invalidate(tagAssets, tagDirectory)
	return nil
}

// AssignAsset hands one unit of an asset directly to an affiliated
// employee, outside the request flow.
func (c *Client) AssignAsset(ctx context.Context, assetID, employeeEmail string) (*Asset, error) {
	asset, err := do[Asset](ctx, c.http, http.MethodPatch, "/assets/assign/"+assetID,
		map[string]string{"employeeEmail": employeeEmail}, nil)
	if err != nil {
		return nil, err
	}
	c.cache.Invalidate(tagAssets, tagDirectory, tagRoster)
	return &asset, nil
}

// MyAssets pages through the calling HR's inventory.
func (c *Client) MyAssets(ctx context.Context, page, limit int) (*AssetPage, error) {
	key := fmt.Sprintf("assets?page=%d&limit=%d", page, limit)
	result, err := cached(c, key, []string{tagAssets}, func() (AssetPage, error) {
		return do[AssetPage](ctx, c.http, http.MethodGet, "/assets", nil, map[string]string{
			"page":  fmt.Sprint(page),
			"limit": fmt.Sprint(limit),
		})
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// directoryPage fetches one page of the asset directory.
func (c *Client) directoryPage(ctx context.Context, search, assetType string, page int) (*AssetPage, error) {
	key := fmt.Sprintf("directory?search=%s&type=%s&page=%d", search, assetType, page)
	result, err := cached(c, key, []string{tagDirectory}, func() (AssetPage, error) {
		query := map[string]string{"page": fmt.Sprint(page)}
		if search != "" {
			query["search"] = search
		}
		if assetType != "" {
			query["type"] = assetType
		}
		return do[AssetPage](ctx, c.http, http.MethodGet, "/assigned-assets", nil, query)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
