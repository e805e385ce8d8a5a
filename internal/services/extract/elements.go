package extract

import "strings"

// summaryElements maps element IDs of the "summary of business results" section
// (主要な経営指標等の推移) to metric names. Japanese GAAP and IFRS variants share a name.
var summaryElements = map[string]string{
	"jpcrp_cor:NetSalesSummaryOfBusinessResults":                                       "net_sales",
	"jpcrp_cor:OperatingRevenue1SummaryOfBusinessResults":                              "net_sales",
	"jpcrp_cor:RevenueIFRSSummaryOfBusinessResults":                                    "net_sales",
	"jpcrp_cor:OrdinaryIncomeLossSummaryOfBusinessResults":                             "ordinary_income",
	"jpcrp_cor:ProfitLossBeforeTaxIFRSSummaryOfBusinessResults":                        "profit_before_tax",
	"jpcrp_cor:ProfitLossAttributableToOwnersOfParentSummaryOfBusinessResults":         "net_income",
	"jpcrp_cor:NetIncomeLossSummaryOfBusinessResults":                                  "net_income",
	"jpcrp_cor:ProfitLossAttributableToOwnersOfParentIFRSSummaryOfBusinessResults":     "net_income",
	"jpcrp_cor:ComprehensiveIncomeSummaryOfBusinessResults":                            "comprehensive_income",
	"jpcrp_cor:NetAssetsSummaryOfBusinessResults":                                      "net_assets",
	"jpcrp_cor:EquityAttributableToOwnersOfParentIFRSSummaryOfBusinessResults":         "net_assets",
	"jpcrp_cor:TotalAssetsSummaryOfBusinessResults":                                    "total_assets",
	"jpcrp_cor:TotalAssetsIFRSSummaryOfBusinessResults":                                "total_assets",
	"jpcrp_cor:NetAssetsPerShareSummaryOfBusinessResults":                              "bps",
	"jpcrp_cor:EquityAttributableToOwnersOfParentPerShareIFRSSummaryOfBusinessResults": "bps",
	"jpcrp_cor:BasicEarningsLossPerShareSummaryOfBusinessResults":                      "eps",
	"jpcrp_cor:BasicEarningsLossPerShareIFRSSummaryOfBusinessResults":                  "eps",
	"jpcrp_cor:DilutedEarningsPerShareSummaryOfBusinessResults":                        "diluted_eps",
	"jpcrp_cor:DilutedEarningsLossPerShareIFRSSummaryOfBusinessResults":                "diluted_eps",
	"jpcrp_cor:EquityToAssetRatioSummaryOfBusinessResults":                             "equity_ratio",
	"jpcrp_cor:RatioOfOwnersEquityToGrossAssetsIFRSSummaryOfBusinessResults":           "equity_ratio",
	"jpcrp_cor:RateOfReturnOnEquitySummaryOfBusinessResults":                           "roe",
	"jpcrp_cor:RateOfReturnOnEquityIFRSSummaryOfBusinessResults":                       "roe",
	"jpcrp_cor:PriceEarningsRatioSummaryOfBusinessResults":                             "per",
	"jpcrp_cor:PriceEarningsRatioIFRSSummaryOfBusinessResults":                         "per",
	"jpcrp_cor:NetCashProvidedByUsedInOperatingActivitiesSummaryOfBusinessResults":     "operating_cf",
	"jpcrp_cor:CashFlowsFromUsedInOperatingActivitiesIFRSSummaryOfBusinessResults":     "operating_cf",
	"jpcrp_cor:NetCashProvidedByUsedInInvestingActivitiesSummaryOfBusinessResults":     "investing_cf",
	"jpcrp_cor:CashFlowsFromUsedInInvestingActivitiesIFRSSummaryOfBusinessResults":     "investing_cf",
	"jpcrp_cor:NetCashProvidedByUsedInFinancingActivitiesSummaryOfBusinessResults":     "financing_cf",
	"jpcrp_cor:CashFlowsFromUsedInFinancingActivitiesIFRSSummaryOfBusinessResults":     "financing_cf",
	"jpcrp_cor:CashAndCashEquivalentsSummaryOfBusinessResults":                         "cash_and_equivalents",
	"jpcrp_cor:CashAndCashEquivalentsIFRSSummaryOfBusinessResults":                     "cash_and_equivalents",
	"jpcrp_cor:NumberOfEmployees":                                                      "employees",
	"jpcrp_cor:DividendPaidPerShareSummaryOfBusinessResults":                           "dividend_per_share",
	"jpcrp_cor:PayoutRatioSummaryOfBusinessResults":                                    "payout_ratio",
	"jpcrp_cor:TotalNumberOfIssuedSharesSummaryOfBusinessResults":                      "shares_issued",
}

// yearContexts maps context ID prefixes to fiscal-year labels.
var yearContexts = []struct {
	prefix string
	label  string
}{
	{"CurrentYear", YearCurrent},
	{"Prior1Year", "prior1"},
	{"Prior2Year", "prior2"},
	{"Prior3Year", "prior3"},
	{"Prior4Year", "prior4"},
}

const nonConsolidatedSuffix = "_NonConsolidatedMember"

// parseContext classifies a context ID such as "Prior1YearDuration_NonConsolidatedMember".
// Contexts with other dimension members (segments, components) are rejected.
func parseContext(id string) (label string, consolidated bool, ok bool) {
	for _, yc := range yearContexts {
		rest, found := strings.CutPrefix(id, yc.prefix)
		if !found {
			continue
		}
		switch rest {
		case "Duration", "Instant":
			return yc.label, true, true
		case "Duration" + nonConsolidatedSuffix, "Instant" + nonConsolidatedSuffix:
			return yc.label, false, true
		}
		return "", false, false
	}
	return "", false, false
}
