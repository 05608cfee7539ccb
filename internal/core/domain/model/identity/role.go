package identity

import (
	"fmt"
	"strings"

	"steakz/internal/pkg/errs"
)

// Role is the closed set of actor roles known to the terminal. Roles gate which order status
// transitions a caller may request.
type Role int

const (
	// UnknownRole is the zero value and never authorizes anything.
	UnknownRole Role = iota

	// Customer places orders for themselves.
	Customer

	// Cashier is front-of-house staff: places staff-assisted orders, hands orders over and
	// cancels them.
	Cashier

	// Chef is kitchen staff: moves orders through preparation and may cancel them.
	Chef
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		UnknownRole: "UNKNOWN",
		Customer:    "CUSTOMER",
		Cashier:     "CASHIER",
		Chef:        "CHEF",
	}
}

// String returns the wire name of the role ("CUSTOMER", "CASHIER", "CHEF").
func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "UNKNOWN"
}

// Validate rejects UnknownRole and out-of-range values.
func (r Role) Validate() error {
	if _, ok := getRoleStrings()[r]; !ok || r == UnknownRole {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// IsStaff reports whether the role belongs to restaurant staff.
func (r Role) IsStaff() bool {
	return r == Cashier || r == Chef
}

// ParseRole parses a role name case-insensitively.
func ParseRole(s string) (Role, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for role, str := range getRoleStrings() {
		if role != UnknownRole && str == name {
			return role, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%q is not a known role", s))
}

// RoleOf is ParseRole for forwarded sessions: a name the terminal does not know (an ADMIN session,
// say) becomes UnknownRole instead of an error, so the caller can still use the cart and place
// orders but may request no status transition.
func RoleOf(s string) Role {
	role, err := ParseRole(s)
	if err != nil {
		return UnknownRole
	}
	return role
}
