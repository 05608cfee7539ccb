package order_test

import (
	"testing"

	"steakz/internal/core/domain/model/kernel"
	"steakz/internal/core/domain/model/order"
	"steakz/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrder_Validate(t *testing.T) {
	t.Run("should accept server snapshot", func(t *testing.T) {
		o := order.Order{ID: 12, Status: order.Pending}

		assert.NoError(t, o.Validate())
	})

	t.Run("should join id and status errors", func(t *testing.T) {
		err := order.Order{}.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "orderId")
		assert.Contains(t, err.Error(), "status is invalid")
	})
}

func TestOrder_CustomerUsername(t *testing.T) {
	assert.Empty(t, order.Order{}.CustomerUsername())
	assert.Equal(t, "ana", order.Order{Customer: &order.Customer{ID: 1, Username: "ana"}}.CustomerUsername())
}

func TestItem_LineAmount(t *testing.T) {
	t.Run("should prefer server subtotal", func(t *testing.T) {
		item := order.Item{Quantity: 2, UnitPrice: kernel.MustMoney("19"), Subtotal: kernel.MustMoney("40")}

		assert.Equal(t, "40.00", item.LineAmount().Format())
	})

	t.Run("should recompute when subtotal is missing", func(t *testing.T) {
		item := order.Item{Quantity: 3, UnitPrice: kernel.MustMoney("4.5")}

		assert.Equal(t, "13.50", item.LineAmount().Format())
	})
}
