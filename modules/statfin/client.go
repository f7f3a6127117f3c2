package statfin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/polarsquad/ecoestate/common"
)

// Client is a lower-level interface for querying the StatFin PxWeb API for
// the old-dwelling price-per-square-meter table.
type Client interface {
	FetchPriceTable(ctx context.Context, year string) (*TableResponse, error)
}

type statFinClient struct {
	BaseURL string
	Client  common.HttpClient
}

// NewClient constructs a StatFin client. The baseURL points at the PxWeb
// table endpoint, e.g. "https://statfin.stat.fi/PXWeb/api/v1/en/StatFin/ashi/statfin_ashi_pxt_13mu.px".
func NewClient(baseURL string, client common.HttpClient) Client {
	return &statFinClient{
		BaseURL: baseURL,
		Client:  client,
	}
}

// Dimension names in the PxWeb cross tabulation.
const (
	dimPostalArea   = "Postinumeroalue"
	dimBuildingType = "Talotyyppi"
)

// pxwebQuery is the fixed query posted to the table endpoint: one year, all
// postal areas, the four building-type categories, the price-per-square
// metric. Year and metric are therefore size-1 dimensions in the response.
type pxwebQuery struct {
	Query    []pxwebSelection `json:"query"`
	Response pxwebFormat      `json:"response"`
}

type pxwebSelection struct {
	Code      string      `json:"code"`
	Selection pxwebFilter `json:"selection"`
}

type pxwebFilter struct {
	Filter string   `json:"filter"`
	Values []string `json:"values"`
}

type pxwebFormat struct {
	Format string `json:"format"`
}

func buildPriceQuery(year string) pxwebQuery {
	return pxwebQuery{
		Query: []pxwebSelection{
			{Code: "Vuosi", Selection: pxwebFilter{Filter: "item", Values: []string{year}}},
			{Code: dimPostalArea, Selection: pxwebFilter{Filter: "all", Values: []string{"*"}}},
			{Code: dimBuildingType, Selection: pxwebFilter{Filter: "item", Values: []string{"1", "2", "3", "4"}}},
			{Code: "Tiedot", Selection: pxwebFilter{Filter: "item", Values: []string{"keskihinta_aritm"}}},
		},
		Response: pxwebFormat{Format: "json-stat2"},
	}
}

// TableResponse is the JSON-stat cross tabulation returned by PxWeb. Value
// holds the flattened cell array; cells are numbers, or sentinel strings
// ("." / "...") when the statistic is not available.
type TableResponse struct {
	Dimension map[string]TableDimension `json:"dimension"`
	ID        []string                  `json:"id"`
	Size      []int                     `json:"size"`
	Value     []interface{}             `json:"value"`
}

// TableDimension carries one dimension's category metadata.
type TableDimension struct {
	Category TableCategory `json:"category"`
}

// TableCategory maps dimension member codes to flat-array indices and
// human-readable labels.
type TableCategory struct {
	Index map[string]int    `json:"index"`
	Label map[string]string `json:"label"`
}

// FetchPriceTable posts the fixed price query for one year and decodes the
// cross tabulation. Transient 5xx responses are retried with backoff;
// anything else fails fast.
func (c *statFinClient) FetchPriceTable(ctx context.Context, year string) (*TableResponse, error) {
	body, err := json.Marshal(buildPriceQuery(year))
	if err != nil {
		return nil, fmt.Errorf("failed to encode pxweb query: %w", err)
	}

	operation := func() (interface{}, error) {
		return c.doPost(ctx, body)
	}
	result, err := c.Client.RetryWithExponentialBackoff(operation)
	if err != nil {
		return nil, err
	}

	var table TableResponse
	if err := json.Unmarshal(result.([]byte), &table); err != nil {
		return nil, fmt.Errorf("failed to decode statfin JSON: %w", err)
	}
	return &table, nil
}

func (c *statFinClient) doPost(ctx context.Context, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &common.HTTPError{StatusCode: resp.StatusCode, Body: data}
	}
	return data, nil
}
