package overpass

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/polarsquad/ecoestate/common"
	"github.com/polarsquad/ecoestate/common/model"
)

// Service exposes the cached green-space fetch. It never returns an error:
// any failure is logged and degrades to an empty feature collection, and
// failed fetches are never cached.
type Service interface {
	GreenSpaces(ctx context.Context) *model.FeatureCollection
	ClearCache()
}

const greenSpacesCacheKey = "green-spaces"

type greenSpaceService struct {
	client Client
	cache  *common.Cache[*model.FeatureCollection]
	logger common.Logger
}

// NewService constructs the green-space service.
func NewService(client Client, cache *common.Cache[*model.FeatureCollection], logger common.Logger) Service {
	return &greenSpaceService{
		client: client,
		cache:  cache,
		logger: logger,
	}
}

// GreenSpaces returns park/forest polygons as GeoJSON, fetching and caching
// on miss.
func (s *greenSpaceService) GreenSpaces(ctx context.Context) *model.FeatureCollection {
	if fc, found := s.cache.Get(greenSpacesCacheKey); found {
		return fc
	}

	elements, err := s.client.Query(ctx, GreenSpaceQuery)
	if err != nil {
		s.logger.Errorf("overpass: green spaces fetch failed: %v", err)
		return model.EmptyFeatureCollection()
	}

	fc := elementsToFeatureCollection(elements)
	s.cache.Set(greenSpacesCacheKey, fc)
	return fc
}

// ClearCache drops the cached collection. Called by scheduled maintenance.
func (s *greenSpaceService) ClearCache() {
	s.cache.Clear()
}

// elementsToFeatureCollection turns resolved OSM ways into GeoJSON polygon
// features. Ways with fewer than three vertices cannot form a ring and are
// skipped; open rings are closed.
func elementsToFeatureCollection(elements []Element) *model.FeatureCollection {
	fc := model.EmptyFeatureCollection()
	for _, el := range elements {
		if el.Type != "way" || len(el.Geometry) < 3 {
			continue
		}

		ring := make([][]float64, 0, len(el.Geometry)+1)
		for _, pt := range el.Geometry {
			ring = append(ring, []float64{pt.Lon, pt.Lat})
		}
		first, last := ring[0], ring[len(ring)-1]
		if first[0] != last[0] || first[1] != last[1] {
			ring = append(ring, first)
		}

		coords, err := json.Marshal([][][]float64{ring})
		if err != nil {
			continue
		}

		properties := make(map[string]interface{}, len(el.Tags))
		for k, v := range el.Tags {
			properties[k] = v
		}

		fc.Features = append(fc.Features, model.Feature{
			Type:       "Feature",
			ID:         fmt.Sprintf("way/%d", el.ID),
			Geometry:   &model.Geometry{Type: "Polygon", Coordinates: coords},
			Properties: properties,
		})
	}
	return fc
}
