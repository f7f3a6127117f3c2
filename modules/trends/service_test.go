package trends_test

import (
	"context"
	"errors"
	"testing"

	"github.com/polarsquad/ecoestate/common/model"
	"github.com/polarsquad/ecoestate/modules/trends"
)

type mockPriceService struct {
	years []string
	rows  map[string][]model.PostalCodeData
	err   error
}

func (m *mockPriceService) PropertyPrices(ctx context.Context, year string) ([]model.PostalCodeData, error) {
	m.years = append(m.years, year)
	if m.err != nil {
		return nil, m.err
	}
	return m.rows[year], nil
}

func (m *mockPriceService) ClearCache() {}

func TestPriceTrends_FetchesEachWindowYear(t *testing.T) {
	prices := &mockPriceService{rows: map[string][]model.PostalCodeData{
		"2020": {row("00100", map[string]float64{"1": 3000})},
		"2021": {row("00100", map[string]float64{"1": 3300})},
		"2022": {row("00100", map[string]float64{"1": 3600})},
	}}
	svc := trends.NewService(prices)

	result, err := svc.PriceTrends(context.Background(), 2020, 2022)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("expected 1 trend, got %d", len(result))
	}
	if len(prices.years) != 3 || prices.years[0] != "2020" || prices.years[2] != "2022" {
		t.Errorf("unexpected fetched years: %v", prices.years)
	}

	metric := result[0].Trends["1"]
	if metric == nil {
		t.Fatal("expected metric for building type 1")
	}
	if metric.StartPrice != 3000 || metric.EndPrice != 3600 {
		t.Errorf("expected endpoint prices 3000/3600, got %v/%v", metric.StartPrice, metric.EndPrice)
	}
}

func TestPriceTrends_InvalidWindow(t *testing.T) {
	svc := trends.NewService(&mockPriceService{})

	if _, err := svc.PriceTrends(context.Background(), 2022, 2022); err == nil {
		t.Error("expected error for single-year window")
	}
	if _, err := svc.PriceTrends(context.Background(), 2022, 2020); err == nil {
		t.Error("expected error for inverted window")
	}
}

// A failed year is a hard failure: trends over a silently missing year
// would misrepresent the data.
func TestPriceTrends_PropagatesFetchFailure(t *testing.T) {
	prices := &mockPriceService{err: errors.New("statfin down")}
	svc := trends.NewService(prices)

	if _, err := svc.PriceTrends(context.Background(), 2020, 2022); err == nil {
		t.Fatal("expected error when a window year fails")
	}
}
