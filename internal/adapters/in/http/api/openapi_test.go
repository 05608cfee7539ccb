package api_test

import (
	"testing"

	"steakz/internal/adapters/in/http/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	doc, err := api.Load(t.Context())
	require.NoError(t, err)

	assert.NotNil(t, doc.Paths.Find("/api/v1/cart/items"))
	assert.NotNil(t, doc.Paths.Find("/api/v1/orders/{orderId}/status"))
	assert.NotNil(t, doc.Paths.Find("/api/v1/receipts/{receiptId}/text"))
}

func TestRaw_ReturnsCopy(t *testing.T) {
	a := api.Raw()
	a[0] = 'x'

	assert.NotEqual(t, a[0], api.Raw()[0])
}
