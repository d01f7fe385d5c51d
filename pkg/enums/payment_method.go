package enums

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PaymentMethod is one of the payment instruments accepted at checkout.
type PaymentMethod string

const (
	PaymentMethodPix        PaymentMethod = "pix"
	PaymentMethodCreditCard PaymentMethod = "credit_card"
	PaymentMethodBoleto     PaymentMethod = "boleto"
)

var validPaymentMethods = []PaymentMethod{
	PaymentMethodPix,
	PaymentMethodCreditCard,
	PaymentMethodBoleto,
}

var pixDiscountRate = decimal.NewFromFloat(0.05)

// String implements fmt.Stringer.
func (m PaymentMethod) String() string {
	return string(m)
}

// IsValid reports whether the value is a known PaymentMethod.
func (m PaymentMethod) IsValid() bool {
	for _, candidate := range validPaymentMethods {
		if candidate == m {
			return true
		}
	}
	return false
}

// DiscountRate returns the subtotal fraction discounted for the instrument.
// Pix carries a fixed 5% discount; the other instruments carry zero.
func (m PaymentMethod) DiscountRate() decimal.Decimal {
	if m == PaymentMethodPix {
		return pixDiscountRate
	}
	return decimal.Zero
}

// ParsePaymentMethod converts raw input into a PaymentMethod.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	for _, candidate := range validPaymentMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment method %q", value)
}
