package http

import (
	"strconv"
	"strings"

	"steakz/internal/core/domain/model/identity"
	"steakz/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
	HeaderBranchID = "X-Branch-ID"
	HeaderUsername = "X-Username"
)

// callerFrom reads the identity forwarded by the terminal UI. A request without X-User-ID is
// anonymous and yields nil; its other identity headers are ignored. An unrecognised role is kept
// as identity.UnknownRole.
func callerFrom(c echo.Context) (*identity.Identity, error) {
	h := c.Request().Header

	rawID := strings.TrimSpace(h.Get(HeaderUserID))
	if rawID == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(HeaderUserID, err)
	}

	role := identity.RoleOf(h.Get(HeaderUserRole))

	branchID, err := branchFrom(c)
	if err != nil {
		return nil, err
	}

	return identity.NewIdentity(id, h.Get(HeaderUsername), role, branchID)
}

func branchFrom(c echo.Context) (*int64, error) {
	raw := strings.TrimSpace(c.Request().Header.Get(HeaderBranchID))
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(HeaderBranchID, err)
	}
	return &id, nil
}
