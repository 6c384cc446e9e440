package usecase

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRentalDays(t *testing.T) {
	p := NewPricingEngine()
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		duration time.Duration
		want     int
	}{
		{"one hour bills a full day", time.Hour, 1},
		{"exactly 24 hours is one day", 24 * time.Hour, 1},
		{"25 hours rolls into a second day", 25 * time.Hour, 2},
		{"just under two days", 47 * time.Hour, 2},
		{"exactly 48 hours", 48 * time.Hour, 2},
		{"49 hours", 49 * time.Hour, 3},
		{"zero duration still bills one day", 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.RentalDays(base, base.Add(tt.duration)))
		})
	}
}

func TestBasePrice(t *testing.T) {
	p := NewPricingEngine()

	price := p.BasePrice(decimal.RequireFromString("100"), 1)
	assert.Equal(t, "100.00", price.StringFixed(2))

	price = p.BasePrice(decimal.RequireFromString("49.99"), 3)
	assert.Equal(t, "149.97", price.StringFixed(2))
}

func TestDiscount(t *testing.T) {
	p := NewPricingEngine()

	discounted, amount := p.Discount(decimal.RequireFromString("100"))
	assert.Equal(t, "90.00", discounted.StringFixed(2))
	assert.Equal(t, "10.00", amount.StringFixed(2))

	// Rounding goes half away from zero
	discounted, amount = p.Discount(decimal.RequireFromString("33.35"))
	assert.Equal(t, "3.34", amount.StringFixed(2))
	assert.Equal(t, "30.01", discounted.StringFixed(2))

	// Discounted plus amount always re-adds to the original
	for _, raw := range []string{"1.01", "99.99", "1234.56", "0.05"} {
		total := decimal.RequireFromString(raw)
		discounted, amount = p.Discount(total)
		assert.True(t, discounted.Add(amount).Equal(total), "total %s", raw)
	}
}

func TestIsLate(t *testing.T) {
	p := NewPricingEngine()
	due := time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)

	assert.False(t, p.IsLate(due, due.Add(-time.Hour)), "early return is not late")
	assert.False(t, p.IsLate(due, due), "on the dot is not late")
	assert.False(t, p.IsLate(due, due.Add(30*time.Minute)), "grace boundary is not late")
	assert.True(t, p.IsLate(due, due.Add(31*time.Minute)), "one minute past grace is late")
	assert.True(t, p.IsLate(due, due.Add(45*time.Minute)))
}

func TestLateFee(t *testing.T) {
	p := NewPricingEngine()

	assert.Equal(t, "13.50", p.LateFee(decimal.RequireFromString("90")).StringFixed(2))
	assert.Equal(t, "15.00", p.LateFee(decimal.RequireFromString("100")).StringFixed(2))
}

func TestSecurityDeposit(t *testing.T) {
	p := NewPricingEngine()

	assert.Equal(t, "30.00", p.SecurityDeposit(decimal.RequireFromString("100")).StringFixed(2))
	assert.Equal(t, "27.00", p.SecurityDeposit(decimal.RequireFromString("90")).StringFixed(2))
}

func TestTaxSplit(t *testing.T) {
	p := NewPricingEngine()

	subtotal, tax := p.TaxSplit(decimal.RequireFromString("118"))
	assert.Equal(t, "100.00", subtotal.StringFixed(2))
	assert.Equal(t, "18.00", tax.StringFixed(2))

	subtotal, tax = p.TaxSplit(decimal.RequireFromString("103.50"))
	assert.Equal(t, "87.71", subtotal.StringFixed(2))
	assert.Equal(t, "15.79", tax.StringFixed(2))

	// Subtotal and tax must re-add to the charged amount exactly
	for _, raw := range []string{"0.01", "1", "59.90", "118", "103.50", "9999.99"} {
		amount := decimal.RequireFromString(raw)
		subtotal, tax = p.TaxSplit(amount)
		require.True(t, subtotal.Add(tax).Equal(amount), "amount %s", raw)
	}
}

// Walks a whole booking through the money math: two days at 50/day for
// a discount-eligible renter, returned 45 minutes late.
func TestPricingEndToEnd(t *testing.T) {
	p := NewPricingEngine()

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)

	days := p.RentalDays(start, end)
	require.Equal(t, 2, days)

	total := p.BasePrice(decimal.RequireFromString("50"), days)
	require.Equal(t, "100.00", total.StringFixed(2))

	total, discount := p.Discount(total)
	require.Equal(t, "90.00", total.StringFixed(2))
	require.Equal(t, "10.00", discount.StringFixed(2))

	deposit := p.SecurityDeposit(total)
	assert.Equal(t, "27.00", deposit.StringFixed(2))

	actual := end.Add(45 * time.Minute)
	require.True(t, p.IsLate(end, actual))

	fee := p.LateFee(total)
	require.Equal(t, "13.50", fee.StringFixed(2))

	total = total.Add(fee)
	assert.Equal(t, "103.50", total.StringFixed(2))
}
