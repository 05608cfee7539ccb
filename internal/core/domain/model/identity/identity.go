package identity

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"steakz/internal/pkg/errs"
)

// Identity is the already-resolved caller: who is at the terminal and which branch they belong
// to. It is passed explicitly into commands and queries; absence (nil) means nobody is logged in.
type Identity struct {
	id       int64
	username string
	role     Role
	branchID *int64
}

// NewIdentity validates and builds an Identity. branchID is optional; customers usually have none.
// role may be UnknownRole for a session whose role the terminal does not recognise.
func NewIdentity(id int64, username string, role Role, branchID *int64) (*Identity, error) {
	i := &Identity{}

	if err := errors.Join(
		i.setID(id),
		i.setUsername(username),
		i.setRole(role),
		i.setBranchID(branchID),
	); err != nil {
		return nil, err
	}

	return i, nil
}

func (i *Identity) ID() int64 {
	return i.id
}

func (i *Identity) Username() string {
	return i.username
}

func (i *Identity) Role() Role {
	return i.role
}

// BranchID returns a copy of the assigned branch, or nil.
func (i *Identity) BranchID() *int64 {
	if i.branchID == nil {
		return nil
	}
	b := *i.branchID
	return &b
}

func (i *Identity) setID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsOutOfRangeError("id", id, int64(1), int64(math.MaxInt64))
	}
	i.id = id
	return nil
}

func (i *Identity) setUsername(username string) error {
	i.username = strings.TrimSpace(username)
	return nil
}

func (i *Identity) setRole(role Role) error {
	if _, ok := getRoleStrings()[role]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%d is not a valid role", role))
	}
	i.role = role
	return nil
}

func (i *Identity) setBranchID(branchID *int64) error {
	if branchID == nil {
		return nil
	}
	if *branchID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("branchId", fmt.Errorf("%d is not a valid branch", *branchID))
	}
	b := *branchID
	i.branchID = &b
	return nil
}
