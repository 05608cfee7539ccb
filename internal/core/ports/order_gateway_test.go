package ports_test

import (
	"testing"

	"steakz/internal/core/ports"

	"github.com/stretchr/testify/assert"
)

func TestFallbackMessage(t *testing.T) {
	tests := map[string]string{
		ports.OpCreateOrder:       "Failed to place order",
		ports.OpCreateReceipt:     "Failed to create receipt",
		ports.OpGetOrders:         "Failed to load orders",
		ports.OpUpdateOrderStatus: "Failed to update order status",
		"somethingElse":           "Request failed",
	}
	for op, want := range tests {
		t.Run(op, func(t *testing.T) {
			assert.Equal(t, want, ports.FallbackMessage(op))
		})
	}
}
