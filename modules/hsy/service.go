package hsy

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/polarsquad/ecoestate/common"
	"github.com/polarsquad/ecoestate/common/model"
)

// Service exposes the cached postal-boundary fetch. The boundary set is not
// parameterized per request, so a single fixed cache key is used.
type Service interface {
	PostalBoundaries(ctx context.Context) (*model.FeatureCollection, error)
	ClearCache()
}

const boundariesCacheKey = "postal-boundaries"

type boundaryService struct {
	client Client
	cache  *common.Cache[*model.FeatureCollection]
	logger common.Logger
	sf     singleflight.Group
}

// NewService constructs the postal-boundary service.
func NewService(client Client, cache *common.Cache[*model.FeatureCollection], logger common.Logger) Service {
	return &boundaryService{
		client: client,
		cache:  cache,
		logger: logger,
	}
}

// PostalBoundaries returns the postal-code area polygons, fetching and
// caching on miss. A failed fetch is returned as an error and leaves the
// cache untouched, so the next request retries.
func (s *boundaryService) PostalBoundaries(ctx context.Context) (*model.FeatureCollection, error) {
	if fc, found := s.cache.Get(boundariesCacheKey); found {
		return fc, nil
	}

	result, err, _ := s.sf.Do(boundariesCacheKey, func() (interface{}, error) {
		if fc, found := s.cache.Get(boundariesCacheKey); found {
			return fc, nil
		}
		fc, err := s.client.GetFeatures(ctx, PostalBoundariesTypeName)
		if err != nil {
			return nil, err
		}
		s.cache.Set(boundariesCacheKey, fc)
		return fc, nil
	})
	if err != nil {
		s.logger.Errorf("hsy: postal boundaries fetch failed: %v", err)
		return nil, err
	}
	return result.(*model.FeatureCollection), nil
}

// ClearCache drops the cached boundary set. Called by scheduled maintenance.
func (s *boundaryService) ClearCache() {
	s.cache.Clear()
}
