package valuation

import (
	"fmt"
	"math"
	"strings"
)

// Defaults applied when the corresponding fact is absent.
const (
	DefaultEffectiveTaxRate = 0.30
	DefaultDiscountRate     = 0.10
	DefaultGrowthMiddle     = 0.05
	DefaultGrowthStrong     = 0.10
	DefaultDCFYears         = 5
)

// rescaleThreshold is the magnitude above which an aggregate is assumed to be
// denominated in thousands rather than millions.
const rescaleThreshold = 1_000_000

// Normalize converts raw facts into an Input.
//
// Share count resolution:
//   - shares_outstanding_ex_treasury when present
//   - otherwise shares_outstanding - treasury_shares (treasury defaults to 0)
//   - otherwise ErrMissingRequiredField naming both fields
//
// A shares_unit of "thousands" multiplies the resolved count by 1000.
//
// Operating CF, FCF, net cash, EBITDA and net assets are rescaled per field:
// any value with magnitude above 1,000,000 is divided by 1000. This is a
// heuristic, it cannot tell a large aggregate from one in the wrong unit.
func Normalize(raw RawFacts) (Input, error) {
	shares, err := resolveShares(raw)
	if err != nil {
		return Input{}, err
	}
	if raw.SharesUnit == SharesUnitThousands {
		shares *= 1000
	}

	var missing []string
	required := func(name string, v *float64) float64 {
		if v == nil {
			missing = append(missing, name)
			return 0
		}
		return *v
	}
	aggregate := func(name string, v *float64) float64 {
		return rescaleAggregate(required(name, v))
	}

	in := Input{
		StockPrice:      required("stock_price", raw.StockPrice),
		Shares:          shares,
		BPS:             required("bps", raw.BPS),
		EPSActual:       copyFloat(raw.EPSActual),
		EPSForecast:     copyFloat(raw.EPSForecast),
		DividendAnnual:  copyFloat(raw.DividendAnnual),
		Revenue:         required("revenue", raw.Revenue),
		OperatingProfit: required("operating_profit", raw.OperatingProfit),
		NetIncome:       required("net_income", raw.NetIncome),
		OperatingCF:     aggregate("operating_cf", raw.OperatingCF),
		FCF:             aggregate("fcf", raw.FCF),
		NetCash:         aggregate("net_cash", raw.NetCash),
		EBITDA:          aggregate("ebitda", raw.EBITDA),
		NetAssets:       aggregate("net_assets", raw.NetAssets),

		EffectiveTaxRate:         valueOr(raw.EffectiveTaxRate, DefaultEffectiveTaxRate),
		DiscountRate:             valueOr(raw.DiscountRate, DefaultDiscountRate),
		LiquidationValuePerShare: copyFloat(raw.LiquidationValuePerShare),
		DCFGrowthMiddle:          valueOr(raw.DCFGrowthMiddle, DefaultGrowthMiddle),
		DCFGrowthStrong:          valueOr(raw.DCFGrowthStrong, DefaultGrowthStrong),
		DCFYears:                 DefaultDCFYears,
	}

	if len(missing) > 0 {
		return Input{}, fmt.Errorf("%w: %s", ErrMissingRequiredField, strings.Join(missing, ", "))
	}

	if raw.DCFYears != nil {
		if *raw.DCFYears < 0 {
			return Input{}, fmt.Errorf("%w: dcf_years must not be negative, got %d", ErrMalformedInput, *raw.DCFYears)
		}
		in.DCFYears = *raw.DCFYears
	}

	if in.Shares <= 0 {
		return Input{}, fmt.Errorf("%w: share count must be positive, got %v", ErrInvalidDivisor, in.Shares)
	}

	return in, nil
}

func resolveShares(raw RawFacts) (float64, error) {
	if raw.SharesOutstandingExTreasury != nil {
		return *raw.SharesOutstandingExTreasury, nil
	}
	if raw.SharesOutstanding == nil {
		return 0, fmt.Errorf("%w: shares_outstanding_ex_treasury or shares_outstanding is required", ErrMissingRequiredField)
	}
	return *raw.SharesOutstanding - valueOr(raw.TreasuryShares, 0), nil
}

// rescaleAggregate converts a thousands-denominated aggregate to millions.
func rescaleAggregate(v float64) float64 {
	if math.Abs(v) > rescaleThreshold {
		return v / 1000
	}
	return v
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
