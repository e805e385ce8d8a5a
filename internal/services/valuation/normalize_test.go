package valuation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_SharesResolution(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*RawFacts)
		wantShares float64
	}{
		{
			name:       "outstanding in thousands",
			mutate:     func(r *RawFacts) {},
			wantShares: 33_794_000,
		},
		{
			name: "ex-treasury takes priority",
			mutate: func(r *RawFacts) {
				r.SharesOutstandingExTreasury = Float(30000)
				r.TreasuryShares = Float(1000)
			},
			wantShares: 30_000_000,
		},
		{
			name: "outstanding minus treasury",
			mutate: func(r *RawFacts) {
				r.SharesOutstanding = Float(35000)
				r.TreasuryShares = Float(1206)
			},
			wantShares: (35000 - 1206) * 1000,
		},
		{
			name: "absent unit leaves count unchanged",
			mutate: func(r *RawFacts) {
				r.SharesOutstanding = Float(33_794_000)
				r.SharesUnit = ""
			},
			wantShares: 33_794_000,
		},
		{
			name: "unknown unit leaves count unchanged",
			mutate: func(r *RawFacts) {
				r.SharesUnit = "shares"
			},
			wantShares: 33794,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := jecosFacts()
			tt.mutate(&raw)
			in, err := Normalize(raw)
			require.NoError(t, err)
			assert.Equal(t, tt.wantShares, in.Shares)
		})
	}
}

func TestNormalize_MissingShares(t *testing.T) {
	raw := jecosFacts()
	raw.SharesOutstanding = nil

	_, err := Normalize(raw)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingRequiredField))
	assert.Contains(t, err.Error(), "shares_outstanding_ex_treasury")
	assert.Contains(t, err.Error(), "shares_outstanding")
}

func TestNormalize_MissingRequiredFields(t *testing.T) {
	raw := jecosFacts()
	raw.StockPrice = nil
	raw.Revenue = nil
	raw.NetAssets = nil

	_, err := Normalize(raw)
	require.ErrorIs(t, err, ErrMissingRequiredField)
	assert.Contains(t, err.Error(), "stock_price")
	assert.Contains(t, err.Error(), "revenue")
	assert.Contains(t, err.Error(), "net_assets")
}

func TestNormalize_NonPositiveShares(t *testing.T) {
	raw := jecosFacts()
	raw.TreasuryShares = Float(33794)

	_, err := Normalize(raw)
	assert.ErrorIs(t, err, ErrInvalidDivisor)
}

func TestNormalize_NegativeYears(t *testing.T) {
	raw := jecosFacts()
	raw.DCFYears = Int(-1)

	_, err := Normalize(raw)
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestNormalize_RescalesAggregatesPerField(t *testing.T) {
	raw := jecosFacts()
	raw.NetCash = Float(5_486_000)
	raw.EBITDA = Float(-12_000_000)

	in, err := Normalize(raw)
	require.NoError(t, err)

	assert.Equal(t, 5486.0, in.NetCash)
	assert.Equal(t, -12000.0, in.EBITDA)
	// untouched fields keep their unit
	assert.Equal(t, 8781.0, in.OperatingCF)
	assert.Equal(t, 5800.0, in.FCF)
	assert.Equal(t, 62918.0, in.NetAssets)
	// revenue is not subject to the heuristic
	assert.Equal(t, 130000.0, in.Revenue)
}

func TestNormalize_Defaults(t *testing.T) {
	raw := jecosFacts()
	raw.EffectiveTaxRate = nil
	raw.DiscountRate = nil
	raw.DCFGrowthMiddle = nil
	raw.DCFGrowthStrong = nil
	raw.DCFYears = nil

	in, err := Normalize(raw)
	require.NoError(t, err)

	assert.Equal(t, 0.30, in.EffectiveTaxRate)
	assert.Equal(t, 0.10, in.DiscountRate)
	assert.Equal(t, 0.05, in.DCFGrowthMiddle)
	assert.Equal(t, 0.10, in.DCFGrowthStrong)
	assert.Equal(t, 5, in.DCFYears)
}

func TestNormalize_OptionalFieldsStayAbsent(t *testing.T) {
	raw := jecosFacts()
	raw.EPSActual = nil
	raw.EPSForecast = nil
	raw.DividendAnnual = nil
	raw.LiquidationValuePerShare = nil

	in, err := Normalize(raw)
	require.NoError(t, err)

	assert.Nil(t, in.EPSActual)
	assert.Nil(t, in.EPSForecast)
	assert.Nil(t, in.DividendAnnual)
	assert.Nil(t, in.LiquidationValuePerShare)
}

func TestNormalize_DoesNotAliasRawFacts(t *testing.T) {
	raw := jecosFacts()
	in, err := Normalize(raw)
	require.NoError(t, err)

	*raw.EPSActual = 999
	require.NotNil(t, in.EPSActual)
	assert.Equal(t, 134.8, *in.EPSActual)
}
