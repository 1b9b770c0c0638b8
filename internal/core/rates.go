package core

import "github.com/shopspring/decimal"

// RateCatalog is an ordered list of legally allowed rates, in percent.
// Order matters: it breaks ties in Snap.
type RateCatalog []decimal.Decimal

// Allowed rates per AGIP Resolución 352/2022, Anexo I.
var (
	RetencionRates = mustRates(
		"0", "0.1", "0.2", "0.5", "0.75", "1", "1.25", "1.5",
		"1.75", "2", "2.5", "2.75", "3", "3.5", "4", "4.5",
	)
	PercepcionRates = mustRates(
		"0", "0.01", "0.1", "0.2", "0.5", "0.75", "1", "1.5",
		"2", "2.5", "3", "3.5", "4", "4.5", "5", "6",
	)

	// AgipRates accepts either kind of row; used when the source does not
	// say whether a row is a withholding or a perception.
	AgipRates = mergeRates(RetencionRates, PercepcionRates)
)

// Snap returns the catalog value nearest to v. On equal distance the value
// listed first wins. An empty catalog returns v unchanged.
func (c RateCatalog) Snap(v decimal.Decimal) decimal.Decimal {
	if len(c) == 0 {
		return v
	}
	best := c[0]
	bestDiff := v.Sub(best).Abs()
	for _, r := range c[1:] {
		if d := v.Sub(r).Abs(); d.LessThan(bestDiff) {
			best, bestDiff = r, d
		}
	}
	return best
}

// Contains reports whether v is exactly one of the catalog values.
func (c RateCatalog) Contains(v decimal.Decimal) bool {
	for _, r := range c {
		if r.Equal(v) {
			return true
		}
	}
	return false
}

func mustRates(values ...string) RateCatalog {
	c := make(RateCatalog, len(values))
	for i, s := range values {
		c[i] = decimal.RequireFromString(s)
	}
	return c
}

func mergeRates(catalogs ...RateCatalog) RateCatalog {
	var out RateCatalog
	for _, c := range catalogs {
		for _, r := range c {
			if !out.Contains(r) {
				out = append(out, r)
			}
		}
	}
	return out
}
