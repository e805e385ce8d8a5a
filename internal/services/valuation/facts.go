// Package valuation provides pure calculation functions for equity valuation:
// input normalization, market ratios, return on invested capital and a
// three-scenario DCF model.
// All functions are stateless and perform no I/O, except LoadInput and FormatOutput.
//
// Units after normalization:
//   - share counts: shares (not thousands)
//   - aggregates: millions of currency
//   - per-share values: currency
//   - rates: fractions (0.10 = 10%)
package valuation

// SharesUnitThousands marks share counts supplied in thousands of shares.
const SharesUnitThousands = "thousands"

// RawFacts is the loosely typed financial fact record supplied by a loader.
// A nil pointer means the fact is absent, which is distinct from zero.
type RawFacts struct {
	StockPrice                  *float64 `json:"stock_price,omitempty"`
	SharesOutstandingExTreasury *float64 `json:"shares_outstanding_ex_treasury,omitempty"`
	SharesOutstanding           *float64 `json:"shares_outstanding,omitempty"`
	TreasuryShares              *float64 `json:"treasury_shares,omitempty"`
	SharesUnit                  string   `json:"shares_unit,omitempty"` // "thousands" or "shares"

	BPS            *float64 `json:"bps,omitempty"`
	EPSActual      *float64 `json:"eps_actual,omitempty"`
	EPSForecast    *float64 `json:"eps_forecast,omitempty"`
	DividendAnnual *float64 `json:"dividend_annual,omitempty"`

	Revenue         *float64 `json:"revenue,omitempty"`
	OperatingProfit *float64 `json:"operating_profit,omitempty"`
	NetIncome       *float64 `json:"net_income,omitempty"`
	OperatingCF     *float64 `json:"operating_cf,omitempty"`
	FCF             *float64 `json:"fcf,omitempty"`
	NetCash         *float64 `json:"net_cash,omitempty"`
	EBITDA          *float64 `json:"ebitda,omitempty"`
	NetAssets       *float64 `json:"net_assets,omitempty"`

	EffectiveTaxRate         *float64 `json:"effective_tax_rate,omitempty"`
	DiscountRate             *float64 `json:"discount_rate,omitempty"`
	LiquidationValuePerShare *float64 `json:"liquidation_value_per_share,omitempty"`
	DCFGrowthMiddle          *float64 `json:"dcf_growth_middle,omitempty"`
	DCFGrowthStrong          *float64 `json:"dcf_growth_strong,omitempty"`
	DCFYears                 *int     `json:"dcf_years,omitempty"`
}

// Input is the normalized, unit-consistent valuation input produced by Normalize.
// It is a value type; the engine never modifies it.
type Input struct {
	StockPrice float64 // currency
	Shares     float64 // shares, ex-treasury

	BPS            float64
	EPSActual      *float64
	EPSForecast    *float64
	DividendAnnual *float64

	Revenue         float64 // millions
	OperatingProfit float64
	NetIncome       float64
	OperatingCF     float64
	FCF             float64
	NetCash         float64 // negative for net debt
	EBITDA          float64
	NetAssets       float64

	EffectiveTaxRate         float64
	DiscountRate             float64
	LiquidationValuePerShare *float64
	DCFGrowthMiddle          float64
	DCFGrowthStrong          float64
	DCFYears                 int
}

// Float returns a pointer to v, for building RawFacts literals.
func Float(v float64) *float64 {
	return &v
}

// Int returns a pointer to v.
func Int(v int) *int {
	return &v
}
