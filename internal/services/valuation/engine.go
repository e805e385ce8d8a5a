package valuation

// Result holds every computed metric. Undefined ratios are nil and encode as
// JSON null; no field is ever omitted.
type Result struct {
	StockPrice          float64  `json:"stock_price"`
	Shares              float64  `json:"shares"`
	MarketCap           float64  `json:"market_cap"`
	PERActual           *float64 `json:"per_actual"`
	PERForecast         *float64 `json:"per_forecast"`
	PBR                 float64  `json:"pbr"`
	PCR                 *float64 `json:"pcr"`
	PSR                 *float64 `json:"psr"`
	DividendYield       *float64 `json:"dividend_yield"`
	PERxPBR             *float64 `json:"per_x_pbr"`
	EVEBITDA            *float64 `json:"ev_ebitda"`
	NOPAT               float64  `json:"nopat"`
	InvestedCapital     float64  `json:"invested_capital"`
	ROIC                *float64 `json:"roic"`
	LiquidationDiscount *float64 `json:"liquidation_discount"`

	// DCF is always bear, middle, strong in that order.
	DCF [3]DCFScenarioResult `json:"dcf"`
}

// Calculate computes all ratios and the three DCF scenarios for in.
//
// Internal computation keeps full precision. Rounding is applied only here:
// ratios and aggregates to 2 places; dividend yield, ROIC, liquidation
// discount and upside to 4 places; DCF per-share values to whole units.
// Price and share count pass through unrounded.
func Calculate(in Input) (Result, error) {
	mcap := MarketCap(in.StockPrice, in.Shares)
	perActual := PriceEarnings(in.StockPrice, in.EPSActual)
	perForecast := PriceEarnings(in.StockPrice, in.EPSForecast)

	pbr, err := PriceBook(in.StockPrice, in.BPS)
	if err != nil {
		return Result{}, err
	}

	pcr := PriceCashFlow(mcap, in.OperatingCF)
	psr := PriceSales(mcap, in.Revenue)
	divYield := DividendYield(in.DividendAnnual, in.StockPrice)
	evEBITDA := EVToEBITDA(mcap, in.NetCash, in.EBITDA)

	nopat := NOPAT(in.OperatingProfit, in.EffectiveTaxRate)
	ic := InvestedCapital(in.NetAssets, in.NetCash)
	roic := ROIC(nopat, ic)

	liqDiscount := LiquidationDiscount(in.LiquidationValuePerShare, in.StockPrice)
	perPBR := PriceEarningsTimesBook(perForecast, pbr)

	scenarios := [3]struct {
		label  Scenario
		growth float64
	}{
		{ScenarioBear, 0},
		{ScenarioMiddle, in.DCFGrowthMiddle},
		{ScenarioStrong, in.DCFGrowthStrong},
	}

	var dcf [3]DCFScenarioResult
	for i, s := range scenarios {
		r, err := CalculateDCFScenario(DCFParams{
			FCF:          in.FCF,
			GrowthRate:   s.growth,
			DiscountRate: in.DiscountRate,
			Years:        in.DCFYears,
			NetCash:      in.NetCash,
			Shares:       in.Shares,
			Price:        in.StockPrice,
			Label:        s.label,
		})
		if err != nil {
			return Result{}, err
		}
		r.TerminalValue = round(r.TerminalValue, 2)
		r.EquityValue = round(r.EquityValue, 2)
		dcf[i] = r
	}

	return Result{
		StockPrice:          in.StockPrice,
		Shares:              in.Shares,
		MarketCap:           round(mcap, 2),
		PERActual:           roundPtr(perActual, 2),
		PERForecast:         roundPtr(perForecast, 2),
		PBR:                 round(pbr, 2),
		PCR:                 roundPtr(pcr, 2),
		PSR:                 roundPtr(psr, 2),
		DividendYield:       roundPtr(divYield, 4),
		PERxPBR:             roundPtr(perPBR, 2),
		EVEBITDA:            roundPtr(evEBITDA, 2),
		NOPAT:               round(nopat, 2),
		InvestedCapital:     round(ic, 2),
		ROIC:                roundPtr(roic, 4),
		LiquidationDiscount: roundPtr(liqDiscount, 4),
		DCF:                 dcf,
	}, nil
}
