package core

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRateCatalog_SnapIdempotent(t *testing.T) {
	for _, catalog := range []RateCatalog{RetencionRates, PercepcionRates, AgipRates} {
		for _, r := range catalog {
			assert.Truef(t, catalog.Snap(r).Equal(r), "Snap(%s) should return itself", r)
		}
	}
}

func TestRateCatalog_SnapMembership(t *testing.T) {
	inputs := []string{"-5", "0", "0.04", "0.98", "1.1", "2.6", "3.74", "7", "100"}
	for _, catalog := range []RateCatalog{RetencionRates, PercepcionRates, AgipRates} {
		for _, in := range inputs {
			got := catalog.Snap(dec(in))
			assert.Truef(t, catalog.Contains(got), "Snap(%s) = %s is not in catalog", in, got)
		}
	}
}

func TestRateCatalog_Snap(t *testing.T) {
	tests := []struct {
		name    string
		catalog RateCatalog
		in      string
		want    string
	}{
		{name: "nearest", catalog: RetencionRates, in: "0.98", want: "1"},
		{name: "above top", catalog: RetencionRates, in: "9", want: "4.5"},
		{name: "below bottom", catalog: PercepcionRates, in: "-1", want: "0"},
		{name: "tie keeps first", catalog: RetencionRates, in: "0.05", want: "0"},
		{name: "tie between 1.25 and 1.5", catalog: RetencionRates, in: "1.375", want: "1.25"},
		{name: "perception only value", catalog: PercepcionRates, in: "0.012", want: "0.01"},
		{name: "union has both", catalog: AgipRates, in: "5.9", want: "6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.catalog.Snap(dec(tt.in))
			assert.Truef(t, got.Equal(dec(tt.want)), "Snap(%s) = %s, want %s", tt.in, got, tt.want)
		})
	}
}

func TestRateCatalog_EmptySnap(t *testing.T) {
	var c RateCatalog
	assert.True(t, c.Snap(dec("3.3")).Equal(dec("3.3")))
}

func TestAgipRates_Union(t *testing.T) {
	for _, r := range RetencionRates {
		assert.True(t, AgipRates.Contains(r))
	}
	for _, r := range PercepcionRates {
		assert.True(t, AgipRates.Contains(r))
	}

	seen := map[string]bool{}
	for _, r := range AgipRates {
		key := r.String()
		assert.False(t, seen[key], "duplicate rate %s", key)
		seen[key] = true
	}
	assert.True(t, AgipRates[0].Equal(RetencionRates[0]))
}
