package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/polarsquad/ecoestate/common"
)

// Client runs Overpass QL queries against an Overpass API endpoint.
type Client interface {
	Query(ctx context.Context, query string) ([]Element, error)
}

type overpassClient struct {
	BaseURL string
	Client  common.HttpClient
}

// NewClient constructs an Overpass client. The baseURL is typically
// "https://overpass-api.de/api/interpreter".
func NewClient(baseURL string, client common.HttpClient) Client {
	return &overpassClient{
		BaseURL: baseURL,
		Client:  client,
	}
}

// LatLon is one vertex of a way geometry.
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Element is one OSM element from an Overpass response, with the resolved
// geometry requested by "out geom".
type Element struct {
	Type     string            `json:"type"`
	ID       int64             `json:"id"`
	Tags     map[string]string `json:"tags"`
	Geometry []LatLon          `json:"geometry"`
}

type overpassResponse struct {
	Elements []Element `json:"elements"`
}

// GreenSpaceQuery selects park and forest polygons in the Helsinki
// metropolitan bounding box, with geometry included.
const GreenSpaceQuery = `[out:json][timeout:60];
(
  way["leisure"="park"](60.1,24.5,60.4,25.2);
  way["landuse"="forest"](60.1,24.5,60.4,25.2);
  way["leisure"="nature_reserve"](60.1,24.5,60.4,25.2);
);
out geom;`

// Query posts one Overpass QL query and decodes the element list.
func (c *overpassClient) Query(ctx context.Context, query string) ([]Element, error) {
	form := url.Values{}
	form.Set("data", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("non-200 response from Overpass: %d", resp.StatusCode)
	}

	var decoded overpassResponse
	if err = json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode Overpass JSON: %w", err)
	}
	return decoded.Elements, nil
}
