package pricing

import (
	"github.com/shopspring/decimal"

	pkgerrors "github.com/marianalima/joalheria-backend/pkg/errors"
)

// FreeShippingThreshold is the subtotal at which shipping is waived.
var FreeShippingThreshold = decimal.NewFromInt(299)

// LineItem is the minimal slice of a cart entry the calculator needs.
type LineItem struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

// Quote holds the derived order amounts. All values are exact decimals;
// rounding to two places happens only when callers persist or present them.
type Quote struct {
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// RoundedSubtotal returns the subtotal at currency precision.
func (q Quote) RoundedSubtotal() decimal.Decimal { return q.Subtotal.Round(2) }

// RoundedShipping returns the effective shipping cost at currency precision.
func (q Quote) RoundedShipping() decimal.Decimal { return q.Shipping.Round(2) }

// RoundedDiscount returns the discount amount at currency precision.
func (q Quote) RoundedDiscount() decimal.Decimal { return q.Discount.Round(2) }

// RoundedTotal returns the total at currency precision.
func (q Quote) RoundedTotal() decimal.Decimal { return q.Total.Round(2) }

// Compute derives subtotal, effective shipping, discount and total from the
// line items, the selected tier's nominal shipping price, and the payment
// instrument's discount fraction. Shipping is forced to zero once the item
// subtotal reaches the free-shipping threshold.
func Compute(items []LineItem, shippingPrice decimal.Decimal, discountRate decimal.Decimal) (Quote, error) {
	if len(items) == 0 {
		return Quote{}, pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one item")
	}
	if shippingPrice.IsNegative() {
		return Quote{}, pkgerrors.New(pkgerrors.CodeValidation, "shipping price cannot be negative")
	}
	if discountRate.IsNegative() || discountRate.GreaterThan(decimal.NewFromInt(1)) {
		return Quote{}, pkgerrors.New(pkgerrors.CodeValidation, "discount rate must be between 0 and 1")
	}

	subtotal := decimal.Zero
	for i, item := range items {
		if !item.UnitPrice.IsPositive() {
			return Quote{}, pkgerrors.New(pkgerrors.CodeValidation, "item price must be positive").
				WithDetails(map[string]any{"index": i})
		}
		if item.Quantity <= 0 {
			return Quote{}, pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be positive").
				WithDetails(map[string]any{"index": i})
		}
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	shipping := shippingPrice
	if subtotal.GreaterThanOrEqual(FreeShippingThreshold) {
		shipping = decimal.Zero
	}

	discount := subtotal.Mul(discountRate)
	total := subtotal.Add(shipping).Sub(discount)

	return Quote{
		Subtotal: subtotal,
		Shipping: shipping,
		Discount: discount,
		Total:    total,
	}, nil
}
