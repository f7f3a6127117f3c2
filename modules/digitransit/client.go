package digitransit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/polarsquad/ecoestate/common"
	"github.com/polarsquad/ecoestate/common/model"
)

// Client probes walking-distance zone layers. One probe asks whether a
// point falls inside one named zone polygon layer.
type Client interface {
	ZoneContains(ctx context.Context, zone model.WalkingZone, x, y float64) (bool, error)
}

type digitransitClient struct {
	BaseURL string
	Client  common.HttpClient
}

// NewClient constructs a zone-probe client. The baseURL points at the
// geoserver WFS endpoint serving the travel-time zone layers; requests are
// authenticated by a subscription-key header attached at the HTTP client.
func NewClient(baseURL string, client common.HttpClient) Client {
	return &digitransitClient{
		BaseURL: baseURL,
		Client:  client,
	}
}

// zoneLayers maps each zone to its WFS layer name.
var zoneLayers = map[model.WalkingZone]string{
	model.Zone5Min:  "walking_zones:travel_time_5min",
	model.Zone10Min: "walking_zones:travel_time_10min",
	model.Zone15Min: "walking_zones:travel_time_15min",
}

type probeResponse struct {
	Features []json.RawMessage `json:"features"`
}

// ZoneContains runs one point-in-layer probe and reports whether the layer
// returned any feature for the point.
func (c *digitransitClient) ZoneContains(ctx context.Context, zone model.WalkingZone, x, y float64) (bool, error) {
	layer, ok := zoneLayers[zone]
	if !ok {
		return false, fmt.Errorf("unknown walking zone %q", zone)
	}

	q := url.Values{}
	q.Set("service", "WFS")
	q.Set("version", "2.0.0")
	q.Set("request", "GetFeature")
	q.Set("typeName", layer)
	q.Set("outputFormat", "application/json")
	q.Set("cql_filter", fmt.Sprintf("INTERSECTS(geom, POINT(%f %f))", x, y))
	requestURL := fmt.Sprintf("%s?%s", c.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return false, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("non-200 response from zone layer %s: %d", layer, resp.StatusCode)
	}

	var decoded probeResponse
	if err = json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return false, fmt.Errorf("failed to decode probe GeoJSON: %w", err)
	}
	return len(decoded.Features) > 0, nil
}
