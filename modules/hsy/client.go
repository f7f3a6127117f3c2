package hsy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/polarsquad/ecoestate/common"
	"github.com/polarsquad/ecoestate/common/model"
)

// Client fetches feature collections from the HSY WFS endpoint.
type Client interface {
	GetFeatures(ctx context.Context, typeName string) (*model.FeatureCollection, error)
}

type hsyClient struct {
	BaseURL string
	Client  common.HttpClient
}

// NewClient constructs an HSY WFS client. The baseURL is typically
// "https://kartta.hsy.fi/geoserver/wfs".
func NewClient(baseURL string, client common.HttpClient) Client {
	return &hsyClient{
		BaseURL: baseURL,
		Client:  client,
	}
}

// PostalBoundariesTypeName is the WFS feature type carrying the postal-code
// area polygons (EPSG:3879, served untransformed).
const PostalBoundariesTypeName = "taustakartat_ja_aluejaot:pks_postinumeroalueet_2022"

// GetFeatures issues a WFS GetFeature request for one feature type and
// decodes the GeoJSON response.
func (c *hsyClient) GetFeatures(ctx context.Context, typeName string) (*model.FeatureCollection, error) {
	q := url.Values{}
	q.Set("service", "WFS")
	q.Set("version", "2.0.0")
	q.Set("request", "GetFeature")
	q.Set("typeName", typeName)
	q.Set("outputFormat", "application/json")
	requestURL := fmt.Sprintf("%s?%s", c.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("non-200 response from HSY WFS: %d", resp.StatusCode)
	}

	var fc model.FeatureCollection
	if err = json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		return nil, fmt.Errorf("failed to decode WFS GeoJSON: %w", err)
	}
	return &fc, nil
}
