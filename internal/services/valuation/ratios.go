package valuation

import "fmt"

// Ratio functions return nil when the ratio is undefined for the inputs.
// nil is never coerced to zero.

// MarketCap returns price × shares expressed in millions.
func MarketCap(price, shares float64) float64 {
	return price * shares / 1_000_000
}

// PriceEarnings returns price / EPS. Undefined when EPS is absent or zero.
func PriceEarnings(price float64, eps *float64) *float64 {
	if eps == nil || *eps == 0 {
		return nil
	}
	return ptr(price / *eps)
}

// PriceBook returns price / BPS. Every equity has a book value, so a zero BPS
// is an error rather than an undefined ratio.
func PriceBook(price, bps float64) (float64, error) {
	if bps == 0 {
		return 0, fmt.Errorf("%w: bps is zero", ErrInvalidDivisor)
	}
	return price / bps, nil
}

// PriceCashFlow returns market cap / operating cash flow.
// Undefined when operating cash flow is zero or negative.
func PriceCashFlow(marketCap, operatingCF float64) *float64 {
	if operatingCF <= 0 {
		return nil
	}
	return ptr(marketCap / operatingCF)
}

// PriceSales returns market cap / revenue. Undefined when revenue is zero or negative.
func PriceSales(marketCap, revenue float64) *float64 {
	if revenue <= 0 {
		return nil
	}
	return ptr(marketCap / revenue)
}

// DividendYield returns annual dividend / price. Undefined when the dividend is absent.
// A zero price also yields nil; callers are expected to pass a quoted price.
func DividendYield(dividend *float64, price float64) *float64 {
	if dividend == nil || price == 0 {
		return nil
	}
	return ptr(*dividend / price)
}

// EVToEBITDA returns (market cap - net cash) / EBITDA.
// Negative net cash (net debt) increases enterprise value.
// Undefined when EBITDA is zero or negative.
func EVToEBITDA(marketCap, netCash, ebitda float64) *float64 {
	if ebitda <= 0 {
		return nil
	}
	return ptr((marketCap - netCash) / ebitda)
}

// NOPAT returns operating profit × (1 - tax rate).
func NOPAT(operatingProfit, taxRate float64) float64 {
	return operatingProfit * (1 - taxRate)
}

// InvestedCapital returns net assets - net cash.
func InvestedCapital(netAssets, netCash float64) float64 {
	return netAssets - netCash
}

// ROIC returns NOPAT / invested capital.
// Undefined when invested capital is zero or negative.
func ROIC(nopat, investedCapital float64) *float64 {
	if investedCapital <= 0 {
		return nil
	}
	return ptr(nopat / investedCapital)
}

// LiquidationDiscount returns (liquidation value - price) / liquidation value.
// Positive means the price is below liquidation value, negative a premium.
// Undefined when liquidation value is absent or zero.
func LiquidationDiscount(liquidationValue *float64, price float64) *float64 {
	if liquidationValue == nil || *liquidationValue == 0 {
		return nil
	}
	lv := *liquidationValue
	return ptr((lv - price) / lv)
}

// PriceEarningsTimesBook returns forecast P/E × P/B.
// Undefined when the forecast P/E is undefined; actual P/E is never substituted.
func PriceEarningsTimesBook(perForecast *float64, pbr float64) *float64 {
	if perForecast == nil {
		return nil
	}
	return ptr(*perForecast * pbr)
}

func ptr(v float64) *float64 {
	return &v
}
