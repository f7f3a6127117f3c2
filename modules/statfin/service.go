package statfin

import (
	"context"
	"fmt"
	"regexp"

	"golang.org/x/sync/singleflight"

	"github.com/polarsquad/ecoestate/common"
	"github.com/polarsquad/ecoestate/common/model"
)

// Service is the higher-level, cached property-price interface. Unlike the
// geodata services there is no safe empty fallback here: a missing year of
// price data is a hard failure, not an empty slice, so errors propagate to
// the caller and are never cached.
type Service interface {
	PropertyPrices(ctx context.Context, year string) ([]model.PostalCodeData, error)
	ClearCache()
}

type priceService struct {
	client Client
	cache  *common.Cache[[]model.PostalCodeData]
	logger common.Logger
	sf     singleflight.Group
}

// NewService constructs a property-price service around a StatFin client
// and an injected cache (one year of parsed rows per entry, keyed by year).
func NewService(client Client, cache *common.Cache[[]model.PostalCodeData], logger common.Logger) Service {
	return &priceService{
		client: client,
		cache:  cache,
		logger: logger,
	}
}

var yearPattern = regexp.MustCompile(`^\d{4}$`)

// PropertyPrices returns the parsed price rows for one year, fetching and
// caching on miss. Concurrent cold requests for the same year are collapsed
// into a single upstream call.
func (s *priceService) PropertyPrices(ctx context.Context, year string) ([]model.PostalCodeData, error) {
	if !yearPattern.MatchString(year) {
		return nil, fmt.Errorf("invalid year %q: expected a 4-digit year", year)
	}

	if rows, found := s.cache.Get(year); found {
		return rows, nil
	}

	result, err, _ := s.sf.Do(year, func() (interface{}, error) {
		// A concurrent caller may have populated the cache while this
		// call waited on the flight group.
		if rows, found := s.cache.Get(year); found {
			return rows, nil
		}
		table, err := s.client.FetchPriceTable(ctx, year)
		if err != nil {
			return nil, err
		}
		rows, err := ParsePriceTable(table)
		if err != nil {
			return nil, err
		}
		s.cache.Set(year, rows)
		return rows, nil
	})
	if err != nil {
		s.logger.Errorf("statfin: property prices for %s failed: %v", year, err)
		return nil, fmt.Errorf("fetch property prices for %s: %w", year, err)
	}
	return result.([]model.PostalCodeData), nil
}

// ClearCache drops all cached years. Called by scheduled maintenance.
func (s *priceService) ClearCache() {
	s.cache.Clear()
}
