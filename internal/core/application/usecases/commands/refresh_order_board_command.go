package commands

import (
	"errors"

	"steakz/internal/pkg/guard"
)

var ErrRefreshOrderBoardCommandIsNotConstructed = errors.New(
	"RefreshOrderBoardCommand must be created via NewRefreshOrderBoardCommand constructor",
)

// RefreshOrderBoardCommand re-fetches the order list from the server.
//
// Example:
//
//	cmd := NewRefreshOrderBoardCommand()
//	orders, err := handler.Handle(ctx, cmd)
type RefreshOrderBoardCommand struct {
	guard guard.ConstructorGuard
}

func NewRefreshOrderBoardCommand() RefreshOrderBoardCommand {
	return RefreshOrderBoardCommand{
		guard: guard.NewConstructorGuard(),
	}
}

func (c RefreshOrderBoardCommand) Validate() error {
	return c.guard.Validate(ErrRefreshOrderBoardCommandIsNotConstructed)
}
