package valuation

// jecosFacts is a construction-sector filer reporting shares in thousands.
func jecosFacts() RawFacts {
	return RawFacts{
		StockPrice:               Float(1668),
		SharesOutstanding:        Float(33794),
		SharesUnit:               SharesUnitThousands,
		BPS:                      Float(1861.66),
		EPSActual:                Float(134.8),
		EPSForecast:              Float(163),
		DividendAnnual:           Float(65),
		Revenue:                  Float(130000),
		OperatingProfit:          Float(7800),
		NetIncome:                Float(5500),
		OperatingCF:              Float(8781),
		FCF:                      Float(5800),
		NetCash:                  Float(5486),
		EBITDA:                   Float(12000),
		NetAssets:                Float(62918),
		EffectiveTaxRate:         Float(0.30),
		DiscountRate:             Float(0.10),
		LiquidationValuePerShare: Float(1035),
		DCFGrowthMiddle:          Float(0.10),
		DCFGrowthStrong:          Float(0.20),
		DCFYears:                 Int(5),
	}
}

// canareFacts is an electronics filer supplying ex-treasury shares directly.
func canareFacts() RawFacts {
	return RawFacts{
		StockPrice:                  Float(2527),
		SharesOutstandingExTreasury: Float(6841),
		SharesUnit:                  SharesUnitThousands,
		BPS:                         Float(2635.79),
		EPSActual:                   Float(152.64),
		EPSForecast:                 Float(160),
		DividendAnnual:              Float(55),
		Revenue:                     Float(12383),
		OperatingProfit:             Float(1200),
		NetIncome:                   Float(1040),
		OperatingCF:                 Float(1634),
		FCF:                         Float(1666),
		NetCash:                     Float(13692),
		EBITDA:                      Float(1800),
		NetAssets:                   Float(17965),
		EffectiveTaxRate:            Float(0.30),
		DiscountRate:                Float(0.10),
		LiquidationValuePerShare:    Float(3200),
		DCFGrowthMiddle:             Float(0.05),
		DCFGrowthStrong:             Float(0.10),
		DCFYears:                    Int(5),
	}
}
