package queries

import (
	"errors"
	"fmt"

	"steakz/internal/pkg/errs"
	"steakz/internal/pkg/guard"
)

var ErrGetReceiptQueryIsNotConstructed = errors.New(
	"GetReceiptQuery must be created via NewGetReceiptQuery constructor",
)

// ErrReprintWithoutOrder is the cause reported when a receipt's order is no longer listed.
var ErrReprintWithoutOrder = errors.New("order data not found for reprint")

// GetReceiptQuery re-derives the receipt with the given id for reprint.
type GetReceiptQuery struct {
	receiptID int64

	guard guard.ConstructorGuard
}

func NewGetReceiptQuery(receiptID int64) (GetReceiptQuery, error) {
	if receiptID <= 0 {
		return GetReceiptQuery{}, errs.NewValueIsInvalidErrorWithCause("receiptId",
			fmt.Errorf("%d is not a valid receipt id", receiptID))
	}
	return GetReceiptQuery{receiptID: receiptID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetReceiptQuery) Validate() error {
	return q.guard.Validate(ErrGetReceiptQueryIsNotConstructed)
}

func (q GetReceiptQuery) ReceiptID() int64 {
	return q.receiptID
}
