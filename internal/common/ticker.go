package common

import (
	"strings"
)

// Ticker represents a parsed Japanese listed-company ticker.
// Format: EXCHANGE:CODE (e.g., "TSE:5819"); CODE is the 4-character
// securities code, which may contain letters (e.g., "130A").
type Ticker struct {
	// Exchange is the exchange code (e.g., "TSE", "NSE")
	Exchange string
	// Code is the 4-character securities code
	Code string
	// Raw is the original ticker string
	Raw string
}

// SuffixToExchange maps market-data suffixes (e.g., "5819.T") to exchange codes.
var SuffixToExchange = map[string]string{
	"T": "TSE",
	"N": "NSE",
	"F": "FSE",
	"S": "SSE",
}

// DefaultExchange is used when parsing tickers without an exchange.
const DefaultExchange = "TSE"

// ParseTicker parses a ticker string.
// Supports formats:
//   - "TSE:5819" -> Exchange="TSE", Code="5819"
//   - "5819.T"   -> Exchange="TSE", Code="5819"
//   - "58190"    -> Exchange=DefaultExchange, Code="5819" (EDINET 5-digit code)
//   - "130a"     -> Exchange=DefaultExchange, Code="130A"
func ParseTicker(ticker string) Ticker {
	raw := ticker
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return Ticker{}
	}

	exchange := DefaultExchange
	if idx := strings.Index(ticker, ":"); idx > 0 {
		exchange = ticker[:idx]
		ticker = ticker[idx+1:]
	} else if idx := strings.LastIndex(ticker, "."); idx > 0 {
		if ex, ok := SuffixToExchange[ticker[idx+1:]]; ok {
			exchange = ex
			ticker = ticker[:idx]
		}
	}

	// EDINET appends a check digit "0" to the 4-character code
	if len(ticker) == 5 && strings.HasSuffix(ticker, "0") {
		ticker = ticker[:4]
	}

	return Ticker{
		Exchange: exchange,
		Code:     ticker,
		Raw:      raw,
	}
}

// String returns the full exchange-qualified ticker string.
func (t Ticker) String() string {
	if t.Exchange == "" || t.Code == "" {
		return t.Code
	}
	return t.Exchange + ":" + t.Code
}

// SecCode returns the 5-character code used by EDINET document metadata.
func (t Ticker) SecCode() string {
	if len(t.Code) != 4 {
		return t.Code
	}
	return t.Code + "0"
}
