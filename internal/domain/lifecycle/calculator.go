package lifecycle

import (
	"fieldservice/internal/domain/entities"

	"github.com/shopspring/decimal"
)

const moneyPlaces = 2

func LineTotal(item entities.LineItem) decimal.Decimal {
	return item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// Subtotal is order independent: decimal addition is exact.
func Subtotal(items []entities.LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(LineTotal(it))
	}
	return sum
}

// Tax rounds half away from zero to the cent.
func Tax(subtotal, rate decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(rate).Round(moneyPlaces)
}

func Totals(items []entities.LineItem, rate decimal.Decimal) (subtotal, tax, total decimal.Decimal) {
	subtotal = Subtotal(items)
	tax = Tax(subtotal, rate)
	return subtotal, tax, subtotal.Add(tax)
}

// RemainingBalance is floored at zero for display.
func RemainingBalance(inv entities.Invoice) decimal.Decimal {
	rem := inv.TotalAmount.Sub(inv.PaidAmount)
	if rem.IsNegative() {
		return decimal.Zero
	}
	return rem
}

// CanAcceptPayment is the single "can pay" predicate shared by the ledger
// guard and the API projection.
func CanAcceptPayment(inv entities.Invoice) bool {
	return RemainingBalance(inv).IsPositive()
}

func isWholeCents(d decimal.Decimal) bool {
	return d.Equal(d.Round(moneyPlaces))
}
