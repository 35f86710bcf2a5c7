package sales

import "github.com/shopspring/decimal"

// Balance derives the outstanding amount on a sale: max(0, total - paid).
// Overpayment is absorbed, never tracked as credit.
func Balance(total, paid decimal.Decimal) decimal.Decimal {
	balance := total.Sub(paid)
	if balance.IsNegative() {
		return decimal.Zero
	}
	return balance
}

// IsSettled reports whether nothing is owed on the sale
func IsSettled(total, paid decimal.Decimal) bool {
	return Balance(total, paid).IsZero()
}
