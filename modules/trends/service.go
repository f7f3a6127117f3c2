package trends

import (
	"context"
	"fmt"
	"strconv"

	"github.com/polarsquad/ecoestate/common/model"
	"github.com/polarsquad/ecoestate/modules/statfin"
)

// Service computes price trends over a year window by fetching each year's
// snapshot through the property-price service (each year independently
// cached there) and joining them.
type Service interface {
	PriceTrends(ctx context.Context, startYear, endYear int) ([]model.PriceTrend, error)
}

type trendService struct {
	prices statfin.Service
}

// NewService constructs a trend service over a property-price service.
func NewService(prices statfin.Service) Service {
	return &trendService{prices: prices}
}

// PriceTrends fetches the window's yearly snapshots and aggregates them.
// A failed year is a hard failure: trends computed over a silently missing
// year would misrepresent the data.
func (s *trendService) PriceTrends(ctx context.Context, startYear, endYear int) ([]model.PriceTrend, error) {
	if endYear <= startYear {
		return nil, fmt.Errorf("invalid trend window %d..%d: need at least two years", startYear, endYear)
	}

	snapshots := make([][]model.PostalCodeData, 0, endYear-startYear+1)
	for year := startYear; year <= endYear; year++ {
		rows, err := s.prices.PropertyPrices(ctx, strconv.Itoa(year))
		if err != nil {
			return nil, fmt.Errorf("trend window %d..%d: %w", startYear, endYear, err)
		}
		snapshots = append(snapshots, rows)
	}

	return Calculate(snapshots, startYear, endYear), nil
}
