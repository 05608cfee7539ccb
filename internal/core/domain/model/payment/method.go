package payment

import (
	"fmt"
	"strings"

	"steakz/internal/pkg/errs"
)

// Method is how a receipt was paid.
type Method int

const (
	UnknownMethod Method = iota
	Cash
	CreditCard
	DebitCard
	MobilePayment
)

func getMethodStrings() map[Method]string {
	return map[Method]string{
		UnknownMethod: "UNKNOWN",
		Cash:          "CASH",
		CreditCard:    "CREDIT_CARD",
		DebitCard:     "DEBIT_CARD",
		MobilePayment: "MOBILE_PAYMENT",
	}
}

// Methods lists every valid method in display order.
func Methods() []Method {
	return []Method{Cash, CreditCard, DebitCard, MobilePayment}
}

// String returns the wire name, e.g. "CREDIT_CARD".
func (m Method) String() string {
	if s, ok := getMethodStrings()[m]; ok {
		return s
	}
	return "UNKNOWN"
}

// Display returns the wire name with underscores replaced by spaces, e.g. "CREDIT CARD".
func (m Method) Display() string {
	return strings.ReplaceAll(m.String(), "_", " ")
}

func (m Method) Validate() error {
	if _, ok := getMethodStrings()[m]; !ok || m == UnknownMethod {
		return errs.NewValueIsInvalidErrorWithCause("paymentMethod", fmt.Errorf("%d is not a valid payment method", m))
	}
	return nil
}

// ParseMethod parses a wire name case-insensitively. An empty string yields Cash.
func ParseMethod(s string) (Method, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if name == "" {
		return Cash, nil
	}
	for m, str := range getMethodStrings() {
		if m != UnknownMethod && str == name {
			return m, nil
		}
	}
	return UnknownMethod, errs.NewValueIsInvalidErrorWithCause("paymentMethod", fmt.Errorf("%q is not a valid payment method", s))
}
