package plateau

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"plateau-gateway/internal/models"
)

// CityGMLCatalog lists the CityGML files matching conditions, either a
// third-level mesh condition ("m:53394611") or a municipality code ("13101").
func (c *Client) CityGMLCatalog(ctx context.Context, conditions string) (*models.CatalogResponse, error) {
	if strings.TrimSpace(conditions) == "" {
		return nil, fmt.Errorf("plateau: conditions cannot be empty")
	}
	var out models.CatalogResponse
	if err := c.getJSON(ctx, "catalog", "/datacatalog/citygml/"+url.PathEscape(conditions), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Pack asks the API to bundle the given CityGML files into one ZIP archive.
func (c *Client) Pack(ctx context.Context, urls []string) (*models.PackResponse, error) {
	var out models.PackResponse
	if err := c.postJSON(ctx, "pack", "/citygml/pack", models.PackRequest{URLs: urls}, &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, fmt.Errorf("plateau: pack response carried no id")
	}
	return &out, nil
}

// PackStatus returns the progress of a pack job.
func (c *Client) PackStatus(ctx context.Context, id string) (*models.PackStatus, error) {
	var raw json.RawMessage
	if err := c.getJSON(ctx, "pack_status", "/citygml/pack/"+url.PathEscape(id)+"/status", nil, &raw); err != nil {
		return nil, err
	}

	var head struct {
		Status models.PackState `json:"status"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, fmt.Errorf("plateau: failed to decode pack status: %w", err)
	}
	return &models.PackStatus{ID: id, Status: head.Status, Details: raw}, nil
}

// PackedDownloadURL resolves the archive location of a succeeded pack job
// by following the API's redirects. The archive itself is not read.
func (c *Client) PackedDownloadURL(ctx context.Context, id string) (*models.PackedDownload, error) {
	resp, err := c.do(ctx, request{
		endpoint: "pack_download",
		method:   http.MethodGet,
		path:     "/citygml/pack/" + url.PathEscape(id) + ".zip",
		raw:      true,
	})
	if err != nil {
		return nil, err
	}

	contentType := resp.contentType
	if contentType == "" {
		contentType = "application/zip"
	}
	return &models.PackedDownload{
		DownloadURL: resp.finalURL,
		Status:      "ready",
		ContentType: contentType,
	}, nil
}

// Attributes returns the attributes of one feature in a CityGML file.
func (c *Client) Attributes(ctx context.Context, fileURL, id string, skipCodeListFetch bool) (json.RawMessage, error) {
	query := url.Values{"url": {fileURL}, "id": {id}}
	if skipCodeListFetch {
		query.Set("skip_code_list_fetch", "true")
	}
	var out json.RawMessage
	if err := c.getJSON(ctx, "attributes", "/citygml/attributes", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Features returns the feature IDs of a CityGML file inside a spatial ID.
func (c *Client) Features(ctx context.Context, fileURL, sid string) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.getJSON(ctx, "features", "/citygml/features", url.Values{"url": {fileURL}, "sid": {sid}}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SpatialIDAttributes returns the attributes of every feature of the given
// type inside the spatial IDs.
func (c *Client) SpatialIDAttributes(ctx context.Context, sid, featureType string, skipCodeListFetch bool) (json.RawMessage, error) {
	query := url.Values{"sid": {sid}, "type": {featureType}}
	if skipCodeListFetch {
		query.Set("skip_code_list_fetch", "true")
	}
	var out json.RawMessage
	if err := c.getJSON(ctx, "spatialid_attributes", "/citygml/spatialid_attributes", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}
