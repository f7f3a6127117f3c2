package statfin

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/polarsquad/ecoestate/common/model"
)

// postalLabelPattern matches the combined area label "<code> <district> (<municipality>)".
var postalLabelPattern = regexp.MustCompile(`^(\d{5})\s+(.+?)\s+\((.+)\)$`)

// cellIndex computes the flat-array offset of one cell in the row-major
// cross tabulation. The year and metric dimensions are fixed to size 1 by
// the query, so they contribute no offset term.
func cellIndex(postalIdx, buildingTypeCount, buildingTypeIdx int) int {
	return postalIdx*buildingTypeCount + buildingTypeIdx
}

// priceValue interprets one raw cell. PxWeb marks unavailable statistics
// with the sentinel strings "." and "..."; those, and any other non-numeric
// cell, report ok == false rather than an error.
func priceValue(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case string:
		if v == "." || v == "..." {
			return 0, false
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// parsePostalLabel splits a combined label into district and municipality.
// Unparsable labels yield "N/A" for both fields.
func parsePostalLabel(label string) (district, municipality string) {
	m := postalLabelPattern.FindStringSubmatch(label)
	if m == nil {
		return model.FieldNotAvailable, model.FieldNotAvailable
	}
	return m[2], m[3]
}

// ParsePriceTable turns a StatFin cross tabulation into one PostalCodeData
// row per postal code. Postal codes whose every building-type price is
// unavailable are dropped entirely. A malformed response (missing expected
// dimension metadata) is an error; the fetch for that year has failed.
func ParsePriceTable(table *TableResponse) ([]model.PostalCodeData, error) {
	if table == nil {
		return nil, fmt.Errorf("malformed statfin response: empty body")
	}
	postal, ok := table.Dimension[dimPostalArea]
	if !ok || postal.Category.Index == nil {
		return nil, fmt.Errorf("malformed statfin response: missing dimension %q", dimPostalArea)
	}
	building, ok := table.Dimension[dimBuildingType]
	if !ok || building.Category.Index == nil {
		return nil, fmt.Errorf("malformed statfin response: missing dimension %q", dimBuildingType)
	}

	buildingTypeCount, err := dimensionSize(table, dimBuildingType)
	if err != nil {
		return nil, err
	}

	// Deterministic row order: postal codes sorted by their flat index.
	codes := make([]string, 0, len(postal.Category.Index))
	for code := range postal.Category.Index {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool {
		return postal.Category.Index[codes[i]] < postal.Category.Index[codes[j]]
	})

	rows := make([]model.PostalCodeData, 0, len(codes))
	for _, code := range codes {
		postalIdx := postal.Category.Index[code]

		prices := make(map[string]float64)
		for btCode, btIdx := range building.Category.Index {
			offset := cellIndex(postalIdx, buildingTypeCount, btIdx)
			if offset < 0 || offset >= len(table.Value) {
				continue
			}
			if price, ok := priceValue(table.Value[offset]); ok {
				prices[btCode] = price
			}
		}
		// No data point is better than an all-missing row.
		if len(prices) == 0 {
			continue
		}

		label := postal.Category.Label[code]
		district, municipality := parsePostalLabel(label)
		rows = append(rows, model.PostalCodeData{
			PostalCode:   code,
			District:     district,
			Municipality: municipality,
			FullLabel:    label,
			Prices:       prices,
		})
	}
	return rows, nil
}

// dimensionSize returns the declared size of the named dimension from the
// parallel id/size arrays.
func dimensionSize(table *TableResponse, name string) (int, error) {
	for i, id := range table.ID {
		if id == name {
			if i >= len(table.Size) {
				break
			}
			return table.Size[i], nil
		}
	}
	return 0, fmt.Errorf("malformed statfin response: no declared size for dimension %q", name)
}
