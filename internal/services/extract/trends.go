package extract

import "math"

// TrendMetrics are the metrics Trends computes growth rates for.
var TrendMetrics = []string{"net_sales", "ordinary_income", "net_income", "operating_cf", "eps", "bps", "dividend_per_share"}

// Trend is the compound annual growth of one metric from the oldest prior
// year with a value to the current year.
type Trend struct {
	From  string   `json:"from"`
	Years int      `json:"years"`
	Start float64  `json:"start"`
	End   float64  `json:"end"`
	CAGR  *float64 `json:"cagr"`
}

// Trends returns the CAGR of each TrendMetric present in the current year and
// at least one prior year. CAGR is nil when the starting value is not positive
// or the ending value is negative.
func Trends(summary Summary) map[string]Trend {
	trends := map[string]Trend{}
	current := summary[YearCurrent]

	for _, metric := range TrendMetrics {
		end := number(current, metric)
		if end == nil {
			continue
		}

		// Oldest year first
		for i := len(yearContexts) - 1; i >= 1; i-- {
			label := yearContexts[i].label
			start := number(summary[label], metric)
			if start == nil {
				continue
			}
			trends[metric] = Trend{
				From:  label,
				Years: i,
				Start: *start,
				End:   *end,
				CAGR:  CAGR(*start, *end, float64(i)),
			}
			break
		}
	}

	return trends
}

// CAGR calculates Compound Annual Growth Rate
func CAGR(start, end float64, years float64) *float64 {
	if start <= 0 || end < 0 || years <= 0 {
		return nil
	}
	v := math.Pow(end/start, 1/years) - 1
	return &v
}
