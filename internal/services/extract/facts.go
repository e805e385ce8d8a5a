package extract

import "github.com/ternarybob/corporate-reports/internal/services/valuation"

const yenPerMillion = 1_000_000

// PrefillFacts maps one year of extracted metrics into a partial valuation.RawFacts.
// Aggregates are converted from yen to millions; per-share values and the issued
// share count are copied. Market inputs (price, treasury shares) stay unset.
func PrefillFacts(year map[string]Value) valuation.RawFacts {
	var facts valuation.RawFacts

	facts.Revenue = millions(year, "net_sales")
	facts.NetIncome = millions(year, "net_income")
	facts.OperatingCF = millions(year, "operating_cf")
	facts.NetAssets = millions(year, "net_assets")

	if ocf, icf := number(year, "operating_cf"), number(year, "investing_cf"); ocf != nil && icf != nil {
		facts.FCF = valuation.Float((*ocf + *icf) / yenPerMillion)
	}

	facts.BPS = number(year, "bps")
	facts.EPSActual = number(year, "eps")
	facts.DividendAnnual = number(year, "dividend_per_share")
	facts.SharesOutstanding = number(year, "shares_issued")

	return facts
}

func number(year map[string]Value, metric string) *float64 {
	v, ok := year[metric]
	if !ok || v.Number == nil {
		return nil
	}
	return valuation.Float(*v.Number)
}

func millions(year map[string]Value, metric string) *float64 {
	n := number(year, metric)
	if n == nil {
		return nil
	}
	return valuation.Float(*n / yenPerMillion)
}
