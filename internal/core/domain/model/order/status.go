package order

import (
	"errors"
	"fmt"
	"strings"

	"steakz/internal/core/domain/model/identity"
	"steakz/internal/pkg/errs"
)

// ErrTransitionNotAllowed is wrapped by every rejected status change.
var ErrTransitionNotAllowed = errors.New("status transition is not allowed")

// Status represents the lifecycle state of an order as reported by the server.
//
// State transitions and the role allowed to request each:
//
//	PENDING ──(chef)──> PREPARING ──(chef)──> READY ──(cashier)──> DELIVERED
//	   │                    │                   │
//	   ├──────────────(cashier)─────────────────┘ (PENDING -> DELIVERED)
//	   │                    │                   │
//	   └────────────(chef, cashier)─────────────┴──> CANCELLED
//
// DELIVERED and CANCELLED are terminal. The server remains the authority of record; the table
// here only decides which changes a terminal may offer and request.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the sole initial status: the server has accepted the order.
	Pending

	// Preparing means the kitchen is working on the order.
	Preparing

	// Ready means the order is waiting to be handed over.
	Ready

	// Delivered is terminal: the order was handed to the customer.
	Delivered

	// Cancelled is terminal.
	Cancelled
)

// transition is one row of the lifecycle table.
type transition struct {
	from  Status
	to    Status
	roles []identity.Role
}

func getTransitions() []transition {
	return []transition{
		{from: Pending, to: Preparing, roles: []identity.Role{identity.Chef}},
		{from: Preparing, to: Ready, roles: []identity.Role{identity.Chef}},
		{from: Pending, to: Delivered, roles: []identity.Role{identity.Cashier}},
		{from: Ready, to: Delivered, roles: []identity.Role{identity.Cashier}},
		{from: Pending, to: Cancelled, roles: []identity.Role{identity.Chef, identity.Cashier}},
		{from: Preparing, to: Cancelled, roles: []identity.Role{identity.Chef, identity.Cashier}},
		{from: Ready, to: Cancelled, roles: []identity.Role{identity.Chef, identity.Cashier}},
	}
}

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Pending:   "PENDING",
		Preparing: "PREPARING",
		Ready:     "READY",
		Delivered: "DELIVERED",
		Cancelled: "CANCELLED",
	}
}

// Statuses lists every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{Pending, Preparing, Ready, Delivered, Cancelled}
}

// ParseStatus parses a wire name such as "PREPARING", case-insensitively.
func ParseStatus(s string) (Status, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for _, st := range Statuses() {
		if st.String() == name {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the five lifecycle states.
//
// Unknown (0) and any other values are invalid. Use it on statuses decoded from the remote
// API before trusting them.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, or "UNKNOWN" for invalid values.
// It implements fmt.Stringer and is safe to call on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// ValidateTransition checks whether role may move an order from s to target.
//
// The check is exhaustive against the lifecycle table: a pair that is not listed is rejected,
// including skips (PENDING -> READY), moves out of terminal states and self transitions.
//
// Returns:
//   - nil if the transition is listed for role
//   - *TransitionNotAllowedError wrapping ErrTransitionNotAllowed otherwise
//
// Example:
//
//	if err := current.ValidateTransition(order.Preparing, caller.Role()); err != nil {
//	    return err // do not call the remote API
//	}
func (s Status) ValidateTransition(target Status, role identity.Role) error {
	if err := errors.Join(s.Validate(), target.Validate(), role.Validate()); err != nil {
		return &TransitionNotAllowedError{From: s, To: target, Role: role, Cause: err}
	}

	for _, t := range getTransitions() {
		if t.from != s || t.to != target {
			continue
		}
		for _, r := range t.roles {
			if r == role {
				return nil
			}
		}
		return &TransitionNotAllowedError{From: s, To: target, Role: role,
			Cause: fmt.Errorf("%s may not request it", role)}
	}

	if s.IsTerminal() {
		return &TransitionNotAllowedError{From: s, To: target, Role: role,
			Cause: fmt.Errorf("%s is a terminal status", s)}
	}
	return &TransitionNotAllowedError{From: s, To: target, Role: role}
}

// AvailableTransitions returns the targets role may request from s, in lifecycle order. It is
// what a terminal should offer as actions; terminal statuses and unknown roles yield none.
func (s Status) AvailableTransitions(role identity.Role) []Status {
	var out []Status
	for _, target := range Statuses() {
		if s.ValidateTransition(target, role) == nil {
			out = append(out, target)
		}
	}
	return out
}

// TransitionNotAllowedError describes a rejected status change.
type TransitionNotAllowedError struct {
	From  Status
	To    Status
	Role  identity.Role
	Cause error
}

func (e *TransitionNotAllowedError) Error() string {
	msg := fmt.Sprintf("%s: %s -> %s as %s", ErrTransitionNotAllowed, e.From, e.To, e.Role)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *TransitionNotAllowedError) Unwrap() error {
	return ErrTransitionNotAllowed
}
