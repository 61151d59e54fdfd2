package bidding

import (
	"testing"
	
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestDecodeBidMessage(t *testing.T) {
	testCases := []struct {
		name    string
		frame   string
		want    string
		wantErr error
	}{
		{name: "number", frame: `{"amount": 110}`, want: "110"},
		{name: "fractional number", frame: `{"amount": 110.50}`, want: "110.50"},
		{name: "string", frame: `{"amount": " 99.9 "}`, want: "99.9"},
		{name: "missing", frame: `{}`, wantErr: ErrMissingAmount},
		{name: "null", frame: `{"amount": null}`, wantErr: ErrMissingAmount},
	}
	
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeBidMessage([]byte(tc.frame))
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
	
	_, err := DecodeBidMessage([]byte(`not json`))
	require.Error(t, err)
}

func TestParseAmount(t *testing.T) {
	valid := map[string]string{
		"110":         "110",
		"110.5":       "110.5",
		"0.01":        "0.01",
		"99999999.99": "99999999.99",
		"1e2":         "100",
	}
	for raw, want := range valid {
		got, ok := ParseAmount(raw)
		require.True(t, ok, raw)
		require.True(t, got.Equal(decimal.RequireFromString(want)), raw)
	}
	
	invalid := []string{"", "abc", "0", "-5", "10.001", "100000000", "true", "NaN"}
	for _, raw := range invalid {
		_, ok := ParseAmount(raw)
		require.False(t, ok, raw)
	}
}
