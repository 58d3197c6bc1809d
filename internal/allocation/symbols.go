package allocation

import "strings"

// IsStandardSymbol reports whether a ticker is a plain listed equity symbol.
// Index (^GSPC) and exchange-suffixed (BRK.B, BBCA.JK) symbols are not.
func IsStandardSymbol(symbol string) bool {
	return symbol != "" && !strings.ContainsAny(symbol, ".^")
}

// FilterSymbols returns a new slice holding only observations on standard symbols.
func FilterSymbols(list []Observation) []Observation {
	out := make([]Observation, 0, len(list))
	for _, obs := range list {
		if IsStandardSymbol(obs.Symbol) {
			out = append(out, obs)
		}
	}
	return out
}

// UniqueSymbols removes repeated symbols, keeping first-occurrence order.
func UniqueSymbols(symbols []string) []string {
	seen := make(map[string]struct{}, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// NormalizeSymbols upper-cases and trims user supplied tickers, dropping blanks
// and duplicates.
func NormalizeSymbols(symbols []string) []string {
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return UniqueSymbols(out)
}
