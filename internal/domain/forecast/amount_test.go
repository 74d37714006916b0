package forecast

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in    string
		want  float64
		valid bool
	}{
		{"$5,000.00", 5000, true},
		{"10000", 10000, true},
		{"  $1,234.56 ", 1234.56, true},
		{"0", 0, true},
		{"USD 750", 750, true},
		{"-100", -100, false}, // parses, but negative fails validation
		{"not a number", 0, false},
		{"", 0, false},
		{"$", 0, false},
		{"1.2.3", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			a := ParseAmount(tt.in)
			assert.Equal(t, tt.valid, a.Valid())
			if v, ok := a.Value(); ok {
				assert.Equal(t, tt.want, v)
			}
		})
	}
}

func TestAmountOfRejectsNonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, ok := AmountOf(v).Value()
		assert.False(t, ok)
	}
}

func TestAmountJSONNumberOrString(t *testing.T) {
	var payload struct {
		Budget Amount `json:"budget"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"budget": 2500.5}`), &payload))
	v, ok := payload.Budget.Value()
	require.True(t, ok)
	assert.Equal(t, 2500.5, v)

	require.NoError(t, json.Unmarshal([]byte(`{"budget": "$2,500.50"}`), &payload))
	v, ok = payload.Budget.Value()
	require.True(t, ok)
	assert.Equal(t, 2500.5, v)

	assert.Error(t, json.Unmarshal([]byte(`{"budget": true}`), &payload))
}

func TestAmountMarshalInvalidAsZero(t *testing.T) {
	out, err := json.Marshal(ParseAmount("garbage"))
	require.NoError(t, err)
	assert.Equal(t, "0", string(out))
}

func TestRoundCents(t *testing.T) {
	assert.Equal(t, 3333.33, roundCents(10000.0/3))
	assert.Equal(t, 0.0, roundCents(0))
	assert.Equal(t, -2.5, roundCents(-2.499999999))
	assert.Equal(t, 0.13, roundCents(0.125))
}
