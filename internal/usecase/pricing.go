package usecase

import (
	"time"

	"github.com/shopspring/decimal"
)

// Money rates as exact decimals; never float arithmetic on prices.
var (
	discountRate        = decimal.RequireFromString("0.10")
	lateFeeRate         = decimal.RequireFromString("0.15")
	securityDepositRate = decimal.RequireFromString("0.30")
	taxDivisor          = decimal.RequireFromString("1.18")
)

// lateReturnGrace is how long after the due time a return still counts
// as on time.
const lateReturnGrace = 30 * time.Minute

// PricingEngine holds the rental money math. All outputs are rounded to
// 2 decimal places, half away from zero, so repeated calculations over
// the same inputs always agree to the cent.
type PricingEngine struct{}

func NewPricingEngine() PricingEngine {
	return PricingEngine{}
}

// RentalDays counts billable days: any started day bills in full, and a
// rental never bills fewer than one day.
func (PricingEngine) RentalDays(start, end time.Time) int {
	d := end.Sub(start)
	if d <= 0 {
		return 1
	}

	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) > 0 {
		days++
	}
	if days < 1 {
		days = 1
	}

	return days
}

// BasePrice is price-per-day times billable days.
func (p PricingEngine) BasePrice(pricePerDay decimal.Decimal, days int) decimal.Decimal {
	return pricePerDay.Mul(decimal.NewFromInt(int64(days))).Round(2)
}

// Discount splits a total into the discounted price and the discount
// amount (10% of the total).
func (PricingEngine) Discount(total decimal.Decimal) (discounted, amount decimal.Decimal) {
	amount = total.Mul(discountRate).Round(2)
	return total.Sub(amount), amount
}

// IsLate reports whether the actual return falls outside the grace
// window after the due time.
func (PricingEngine) IsLate(due, actual time.Time) bool {
	return actual.Sub(due) > lateReturnGrace
}

// LateFee is 15% of the rental's total price, charged once regardless
// of how late the return was.
func (PricingEngine) LateFee(total decimal.Decimal) decimal.Decimal {
	return total.Mul(lateFeeRate).Round(2)
}

// SecurityDeposit is 30% of the total price, held separately from the
// rental charge.
func (PricingEngine) SecurityDeposit(total decimal.Decimal) decimal.Decimal {
	return total.Mul(securityDepositRate).Round(2)
}

// TaxSplit backs the 18% tax out of a tax-inclusive amount. Subtotal
// and tax always re-add to the exact input amount; the rounding
// remainder lands in the tax share.
func (PricingEngine) TaxSplit(amount decimal.Decimal) (subtotal, tax decimal.Decimal) {
	subtotal = amount.Div(taxDivisor).Round(2)
	return subtotal, amount.Sub(subtotal)
}
