package valuation

import (
	"fmt"
	"math"
)

// Scenario labels a DCF scenario. The label does not select the formula;
// the growth rate does.
type Scenario string

const (
	ScenarioBear   Scenario = "bear"
	ScenarioMiddle Scenario = "middle"
	ScenarioStrong Scenario = "strong"
)

// DCFParams holds the inputs of a single DCF scenario.
type DCFParams struct {
	FCF          float64 // millions
	GrowthRate   float64
	DiscountRate float64
	Years        int
	NetCash      float64 // millions
	Shares       float64
	Price        float64
	Label        Scenario
}

// DCFScenarioResult is the outcome of one DCF scenario.
type DCFScenarioResult struct {
	Label         Scenario `json:"label"`
	GrowthRate    float64  `json:"growth_rate"`
	TerminalValue float64  `json:"terminal_value"` // millions
	EquityValue   float64  `json:"equity_value"`   // millions
	PerShare      float64  `json:"per_share"`      // currency, whole units
	Upside        float64  `json:"upside"`         // fraction of current price, 4 places
}

// CalculateDCFScenario values equity from free cash flow.
//
// Zero growth:
//
//	TV = FCF / r
//	Equity = TV + net cash
//
// Nonzero growth, for t = 1..Years:
//
//	FCF_t = FCF_{t-1} × (1 + g)
//	PV += FCF_t / (1 + r)^t
//	TV = FCF_Years / r
//	Equity = PV + TV / (1 + r)^Years + net cash
//
// Per share = Equity × 1,000,000 / shares, rounded to whole units.
// Upside = (per share - price) / price, rounded to 4 places.
func CalculateDCFScenario(p DCFParams) (DCFScenarioResult, error) {
	if p.DiscountRate == 0 {
		return DCFScenarioResult{}, fmt.Errorf("%w: discount rate is zero", ErrInvalidDivisor)
	}
	if p.Shares == 0 {
		return DCFScenarioResult{}, fmt.Errorf("%w: share count is zero", ErrInvalidDivisor)
	}
	if p.Price == 0 {
		return DCFScenarioResult{}, fmt.Errorf("%w: stock price is zero", ErrInvalidDivisor)
	}

	var terminalValue, equityValue float64

	if p.GrowthRate == 0 {
		terminalValue = p.FCF / p.DiscountRate
		equityValue = terminalValue + p.NetCash
	} else {
		var pvFCF float64
		projected := p.FCF
		for year := 1; year <= p.Years; year++ {
			projected *= 1 + p.GrowthRate
			pvFCF += projected / math.Pow(1+p.DiscountRate, float64(year))
		}

		terminalValue = projected / p.DiscountRate
		pvTerminal := terminalValue / math.Pow(1+p.DiscountRate, float64(p.Years))

		equityValue = pvFCF + pvTerminal + p.NetCash
	}

	perShare := equityValue * 1_000_000 / p.Shares
	upside := (perShare - p.Price) / p.Price

	return DCFScenarioResult{
		Label:         p.Label,
		GrowthRate:    p.GrowthRate,
		TerminalValue: terminalValue,
		EquityValue:   equityValue,
		PerShare:      round(perShare, 0),
		Upside:        round(upside, 4),
	}, nil
}
