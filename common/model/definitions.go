package model

import "encoding/json"

// If you want a helper for JSON unmarshal:
func JSONUnmarshal(data []byte, out interface{}) error {
	return json.Unmarshal(data, out)
}

// ----------------------------------------------------------------------
// GeoJSON carrier types
// ----------------------------------------------------------------------

// Geometry is a GeoJSON geometry. Coordinates are carried as raw JSON: the
// core never reprojects or inspects them, it only shuttles them between the
// remote APIs and the HTTP layer.
type Geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// Feature is a single GeoJSON feature.
type Feature struct {
	Type       string                 `json:"type"`
	ID         string                 `json:"id,omitempty"`
	Geometry   *Geometry              `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

// FeatureCollection is a GeoJSON feature collection.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// EmptyFeatureCollection is the safe fallback returned when a geodata fetch
// fails and the caller expects a collection rather than an error.
func EmptyFeatureCollection() *FeatureCollection {
	return &FeatureCollection{Type: "FeatureCollection", Features: []Feature{}}
}

// ----------------------------------------------------------------------
// Property-price statistics
// ----------------------------------------------------------------------

// Building-type category codes from the StatFin price table (Talotyyppi
// dimension). These four fixed categories are the ones the trend
// aggregation runs over.
const (
	BuildingTypeOneRoom  = "1"
	BuildingTypeTwoRooms = "2"
	BuildingTypeLarger   = "3"
	BuildingTypeTerraced = "4"
)

// BuildingTypes lists the four category codes in a stable order.
func BuildingTypes() []string {
	return []string{BuildingTypeOneRoom, BuildingTypeTwoRooms, BuildingTypeLarger, BuildingTypeTerraced}
}

// FieldNotAvailable is the placeholder used for district/municipality when
// a postal-area label cannot be parsed.
const FieldNotAvailable = "N/A"

// PostalCodeData is one postal code's price row for one year. A building
// type missing from Prices means the statistic was not available ("." or
// "..." in the source data). Immutable after creation; held only inside
// cache entries and in transient slices passed to trend aggregation.
type PostalCodeData struct {
	PostalCode   string             `json:"postalCode"`
	District     string             `json:"district"`
	Municipality string             `json:"municipality"`
	FullLabel    string             `json:"fullLabel"`
	Prices       map[string]float64 `json:"prices"`
}

// Price returns the price for a building type and whether it was available.
func (p PostalCodeData) Price(buildingType string) (float64, bool) {
	v, ok := p.Prices[buildingType]
	return v, ok
}

// ----------------------------------------------------------------------
// Price trends
// ----------------------------------------------------------------------

// Direction classifies a price movement. Changes within a ±1% dead zone are
// noise, not movement.
type Direction string

const (
	DirectionUp     Direction = "up"
	DirectionDown   Direction = "down"
	DirectionStable Direction = "stable"
)

// TrendMetric is the computed trend for one (postal code, building type)
// pair over a year window.
type TrendMetric struct {
	PercentChange       float64   `json:"percentChange"`
	Direction           Direction `json:"direction"`
	StartPrice          float64   `json:"startPrice"`
	EndPrice            float64   `json:"endPrice"`
	AverageYearlyChange float64   `json:"averageYearlyChange"`
}

// PriceTrend aggregates one postal code's trends across building types.
// A nil entry in Trends means no trend was computable for that type.
// Derived data: recomputed from cached yearly snapshots on each request,
// never cached itself.
type PriceTrend struct {
	PostalCode   string                  `json:"postalCode"`
	District     string                  `json:"district"`
	Municipality string                  `json:"municipality"`
	FullLabel    string                  `json:"fullLabel"`
	Trends       map[string]*TrendMetric `json:"trends"`
}

// ----------------------------------------------------------------------
// Walking distance
// ----------------------------------------------------------------------

// WalkingZone names one walking-distance zone layer. A nil *WalkingZone is
// the legitimate "outside all zones" result, distinct from a cache miss.
type WalkingZone string

const (
	Zone5Min  WalkingZone = "5min"
	Zone10Min WalkingZone = "10min"
	Zone15Min WalkingZone = "15min"
)
