package erp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"plain number", `12.5`, 12.5},
		{"integer", `42`, 42},
		{"quoted number", `"8.125"`, 8.125},
		{"null", `null`, 0},
		{"string null", `"null"`, 0},
		{"empty string", `""`, 0},
		{"NaN literal", `"NaN"`, 0},
		{"garbage", `"abc"`, 0},
		{"negative", `-3.25`, -3.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n Number
			require.NoError(t, json.Unmarshal([]byte(tt.in), &n))
			assert.Equal(t, tt.want, n.Float())
		})
	}
}

func TestNumberUnmarshalInStruct(t *testing.T) {
	var row struct {
		NetWt   Number `json:"NETWT"`
		Wastage Number `json:"WASTAGE"`
		Rate    Number `json:"RATE"`
	}
	payload := `{"NETWT":"8.5","WASTAGE":null,"RATE":6200}`
	require.NoError(t, json.Unmarshal([]byte(payload), &row))

	assert.Equal(t, 8.5, row.NetWt.Float())
	assert.Equal(t, 0.0, row.Wastage.Float())
	assert.Equal(t, 6200.0, row.Rate.Float())
}

func TestNumberMarshal(t *testing.T) {
	b, err := json.Marshal(Number(52700))
	require.NoError(t, err)
	assert.Equal(t, "52700", string(b))

	b, err = json.Marshal(Number(1581.5))
	require.NoError(t, err)
	assert.Equal(t, "1581.5", string(b))
}
