package structs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorUnmarshalAcceptsAllLegacyShapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Color
	}{
		{
			name:  "object",
			input: `{"name":"noir","hex":"#000000"}`,
			want:  Color{Name: "noir", Hex: "#000000"},
		},
		{
			name:  "double encoded object",
			input: `"{\"name\":\"rouge\",\"hex\":\"#ff0000\"}"`,
			want:  Color{Name: "rouge", Hex: "#ff0000"},
		},
		{
			name:  "bare name",
			input: `"beige"`,
			want:  Color{Name: "beige"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Color
			require.NoError(t, json.Unmarshal([]byte(tt.input), &c))
			assert.Equal(t, tt.want, c)
		})
	}
}

func TestColorListScanDropsMalformedEntries(t *testing.T) {
	var cl ColorList
	err := cl.Scan([]byte(`[{"name":"noir","hex":"#000"},123,"blanc"]`))
	require.NoError(t, err)

	require.Len(t, cl, 2)
	assert.Equal(t, "noir", cl[0].Name)
	assert.Equal(t, "blanc", cl[1].Name)
}

func TestColorListScanEmpty(t *testing.T) {
	var cl ColorList
	require.NoError(t, cl.Scan(nil))
	assert.Nil(t, cl)
}

func TestColorListValueNilIsEmptyArray(t *testing.T) {
	var cl ColorList
	val, err := cl.Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), val)
}

func TestColorListNames(t *testing.T) {
	cl := ColorList{{Name: "noir", Hex: "#000"}, {Name: "blanc", Hex: "#fff"}}
	assert.Equal(t, []string{"noir", "blanc"}, cl.Names())
}

func TestStockVariantUnmarshalLegacyDoubleEncoding(t *testing.T) {
	var v StockVariant
	err := json.Unmarshal([]byte(`"{\"color\":\"noir\",\"colorHex\":\"#000\",\"size\":\"M\",\"quantity\":4}"`), &v)
	require.NoError(t, err)

	assert.Equal(t, "noir", v.Color)
	assert.Equal(t, "#000", v.ColorHex)
	assert.Equal(t, "M", v.Size)
	assert.Equal(t, 4, v.Quantity)
}

func TestStockVariantListScan(t *testing.T) {
	var vl StockVariantList
	err := vl.Scan(`[{"color":"noir","colorHex":"#000","size":"M","quantity":2},{"color":"noir","colorHex":"#000","size":"L","quantity":0}]`)
	require.NoError(t, err)

	require.Len(t, vl, 2)
	assert.Equal(t, 2, vl[0].Quantity)
	assert.Equal(t, "L", vl[1].Size)
}
