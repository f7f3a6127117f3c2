// Package trends joins yearly per-postal-code price snapshots into
// per-code, per-building-type trend metrics over a year window.
package trends

import (
	"github.com/polarsquad/ecoestate/common/model"
)

// Calculate joins N yearly snapshots into one PriceTrend per postal code.
// snapshots[i] holds the rows for startYear+i; the slice length must match
// the window and the window must span at least two years, otherwise the
// result is empty. The function is pure and never fails: partial data is
// the expected steady state (postal codes appear, disappear and get
// renamed across years), so missing inputs degrade to nil metrics rather
// than errors.
//
// Only the first and last year of the window enter the computation; years
// in between are ignored even when present.
func Calculate(snapshots [][]model.PostalCodeData, startYear, endYear int) []model.PriceTrend {
	periodLength := endYear - startYear + 1
	if periodLength < 2 || len(snapshots) != periodLength {
		return []model.PriceTrend{}
	}

	byYear := make([]map[string]model.PostalCodeData, len(snapshots))
	for i, rows := range snapshots {
		byYear[i] = make(map[string]model.PostalCodeData, len(rows))
		for _, row := range rows {
			byYear[i][row.PostalCode] = row
		}
	}

	// Union of postal codes across all years, in first-seen order.
	var codes []string
	seen := make(map[string]bool)
	for _, rows := range snapshots {
		for _, row := range rows {
			if !seen[row.PostalCode] {
				seen[row.PostalCode] = true
				codes = append(codes, row.PostalCode)
			}
		}
	}

	first := byYear[0]
	last := byYear[len(byYear)-1]

	result := make([]model.PriceTrend, 0, len(codes))
	for _, code := range codes {
		startRow, hasStart := first[code]
		endRow, hasEnd := last[code]

		metrics := make(map[string]*model.TrendMetric, len(model.BuildingTypes()))
		computed := 0
		for _, buildingType := range model.BuildingTypes() {
			metric := trendMetric(startRow, hasStart, endRow, hasEnd, buildingType, periodLength)
			metrics[buildingType] = metric
			if metric != nil {
				computed++
			}
		}
		// A code with no computable trend for any building type is dropped.
		if computed == 0 {
			continue
		}

		labelRow := firstRowFor(byYear, code)
		result = append(result, model.PriceTrend{
			PostalCode:   code,
			District:     labelRow.District,
			Municipality: labelRow.Municipality,
			FullLabel:    labelRow.FullLabel,
			Trends:       metrics,
		})
	}
	return result
}

// trendMetric computes one (postal code, building type) metric from the
// window's endpoint prices, or nil when either endpoint is missing or the
// start price is non-positive.
func trendMetric(startRow model.PostalCodeData, hasStart bool, endRow model.PostalCodeData, hasEnd bool, buildingType string, periodLength int) *model.TrendMetric {
	if !hasStart || !hasEnd {
		return nil
	}
	startPrice, ok := startRow.Price(buildingType)
	if !ok || startPrice <= 0 {
		return nil
	}
	endPrice, ok := endRow.Price(buildingType)
	if !ok {
		return nil
	}

	percentChange := (endPrice - startPrice) / startPrice * 100
	return &model.TrendMetric{
		PercentChange:       percentChange,
		Direction:           classify(percentChange),
		StartPrice:          startPrice,
		EndPrice:            endPrice,
		AverageYearlyChange: (endPrice - startPrice) / float64(periodLength-1),
	}
}

// classify applies the ±1% dead zone: changes inside it are noise.
func classify(percentChange float64) model.Direction {
	switch {
	case percentChange > 1:
		return model.DirectionUp
	case percentChange < -1:
		return model.DirectionDown
	default:
		return model.DirectionStable
	}
}

// firstRowFor returns the code's row from the earliest window year in which
// it appears. Some codes are absent in early years, so this is not
// necessarily the start year.
func firstRowFor(byYear []map[string]model.PostalCodeData, code string) model.PostalCodeData {
	for _, rows := range byYear {
		if row, ok := rows[code]; ok {
			return row
		}
	}
	return model.PostalCodeData{}
}
