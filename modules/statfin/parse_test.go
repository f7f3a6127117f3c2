package statfin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polarsquad/ecoestate/common/model"
)

func TestCellIndex(t *testing.T) {
	tests := []struct {
		name      string
		postalIdx int
		btCount   int
		btIdx     int
		want      int
	}{
		{"first cell", 0, 4, 0, 0},
		{"first row, last type", 0, 4, 3, 3},
		{"second row, first type", 1, 4, 0, 4},
		{"second row, third type", 1, 4, 2, 6},
		{"deep row", 250, 4, 1, 1001},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cellIndex(tt.postalIdx, tt.btCount, tt.btIdx))
		})
	}
}

func TestPriceValue(t *testing.T) {
	tests := []struct {
		name   string
		raw    interface{}
		want   float64
		wantOK bool
	}{
		{"number", 3250.5, 3250.5, true},
		{"numeric string", "3000", 3000, true},
		{"dot sentinel", ".", 0, false},
		{"ellipsis sentinel", "...", 0, false},
		{"non-numeric string", "n/a", 0, false},
		{"null cell", nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := priceValue(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParsePostalLabel(t *testing.T) {
	district, municipality := parsePostalLabel("00100 Helsinki keskusta - Etu-Töölö (Helsinki)")
	assert.Equal(t, "Helsinki keskusta - Etu-Töölö", district)
	assert.Equal(t, "Helsinki", municipality)

	district, municipality = parsePostalLabel("not a postal label")
	assert.Equal(t, model.FieldNotAvailable, district)
	assert.Equal(t, model.FieldNotAvailable, municipality)
}

func priceTableFixture() *TableResponse {
	return &TableResponse{
		ID:   []string{"Vuosi", dimPostalArea, dimBuildingType, "Tiedot"},
		Size: []int{1, 3, 4, 1},
		Dimension: map[string]TableDimension{
			dimPostalArea: {Category: TableCategory{
				Index: map[string]int{"00100": 0, "00120": 1, "99999": 2},
				Label: map[string]string{
					"00100": "00100 Helsinki keskusta - Etu-Töölö (Helsinki)",
					"00120": "broken label",
					"99999": "99999 Nowhere (Nowhere)",
				},
			}},
			dimBuildingType: {Category: TableCategory{
				Index: map[string]int{"1": 0, "2": 1, "3": 2, "4": 3},
			}},
		},
		Value: []interface{}{
			// 00100
			5000.0, 4500.0, ".", "...",
			// 00120
			"3000", nil, ".", "xyz",
			// 99999: every cell unavailable
			".", "...", ".", ".",
		},
	}
}

func TestParsePriceTable(t *testing.T) {
	rows, err := ParsePriceTable(priceTableFixture())
	require.NoError(t, err)
	// 99999 has no available price for any building type and is dropped.
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, "00100", first.PostalCode)
	assert.Equal(t, "Helsinki keskusta - Etu-Töölö", first.District)
	assert.Equal(t, "Helsinki", first.Municipality)
	assert.Equal(t, map[string]float64{"1": 5000, "2": 4500}, first.Prices)

	// Unparsable label: N/A fields, but the row survives because one price
	// is numeric.
	second := rows[1]
	assert.Equal(t, "00120", second.PostalCode)
	assert.Equal(t, model.FieldNotAvailable, second.District)
	assert.Equal(t, model.FieldNotAvailable, second.Municipality)
	assert.Equal(t, map[string]float64{"1": 3000}, second.Prices)
}

func TestParsePriceTable_Malformed(t *testing.T) {
	_, err := ParsePriceTable(nil)
	assert.Error(t, err)

	table := priceTableFixture()
	delete(table.Dimension, dimPostalArea)
	_, err = ParsePriceTable(table)
	assert.Error(t, err)

	table = priceTableFixture()
	table.ID = []string{"Vuosi"}
	_, err = ParsePriceTable(table)
	assert.Error(t, err)
}

func TestParsePriceTable_OffsetOutOfRange(t *testing.T) {
	table := priceTableFixture()
	table.Value = table.Value[:5] // truncated cell array

	rows, err := ParsePriceTable(table)
	require.NoError(t, err)
	// Cells beyond the array are treated as unavailable, not as errors.
	require.Len(t, rows, 2)
	assert.Equal(t, map[string]float64{"1": 3000}, rows[1].Prices)
}
