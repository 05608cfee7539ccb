package payment

import (
	"fmt"
	"strings"

	"steakz/internal/pkg/errs"
)

// Status is the settlement state of a payment.
type Status int

const (
	UnknownStatus Status = iota
	Pending
	Completed
	Failed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus: "UNKNOWN",
		Pending:       "PENDING",
		Completed:     "COMPLETED",
		Failed:        "FAILED",
	}
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Display returns the status with underscores replaced by spaces.
func (s Status) Display() string {
	return strings.ReplaceAll(s.String(), "_", " ")
}

func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == UnknownStatus {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus", fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

// ParseStatus parses a wire name case-insensitively.
func ParseStatus(s string) (Status, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for st, str := range getStatusStrings() {
		if st != UnknownStatus && str == name {
			return st, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("paymentStatus", fmt.Errorf("%q is not a valid payment status", s))
}
