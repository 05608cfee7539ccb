package kernel_test

import (
	"encoding/json"
	"testing"

	"steakz/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID(t *testing.T) {
	t.Run("should create a valid random id", func(t *testing.T) {
		id := kernel.NewUUID()

		assert.NoError(t, id.Validate())
		assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", id.String())
	})

	t.Run("should create distinct ids", func(t *testing.T) {
		assert.False(t, kernel.NewUUID().IsEqual(kernel.NewUUID()))
	})
}

func TestUUIDFromString(t *testing.T) {
	canonical := "550e8400-e29b-41d4-a716-446655440000"

	tests := []struct {
		name  string
		input string
	}{
		{"canonical", canonical},
		{"braces", "{550e8400-e29b-41d4-a716-446655440000}"},
		{"urn prefix", "urn:uuid:550e8400-e29b-41d4-a716-446655440000"},
		{"no hyphens", "550e8400e29b41d4a716446655440000"},
	}
	for _, tt := range tests {
		t.Run("should accept "+tt.name, func(t *testing.T) {
			id, err := kernel.UUIDFromString(tt.input)

			require.NoError(t, err)
			assert.Equal(t, canonical, id.String())
		})
	}

	t.Run("should reject malformed input", func(t *testing.T) {
		_, err := kernel.UUIDFromString("line-1")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid UUID format")
	})

	t.Run("should reject the nil uuid", func(t *testing.T) {
		_, err := kernel.UUIDFromString("00000000-0000-0000-0000-000000000000")

		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestUUID_Validate(t *testing.T) {
	var zero kernel.UUID

	assert.ErrorIs(t, zero.Validate(), kernel.ErrUUIDIsNotConstructed)
}

func TestUUID_JSONRoundTrip(t *testing.T) {
	type line struct {
		ID kernel.UUID `json:"id"`
	}

	t.Run("should survive persistence", func(t *testing.T) {
		original := line{ID: kernel.NewUUID()}

		data, err := json.Marshal(original)
		require.NoError(t, err)

		var decoded line
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.True(t, original.ID.IsEqual(decoded.ID))
	})

	t.Run("should fail on corrupt id", func(t *testing.T) {
		var decoded line

		assert.Error(t, json.Unmarshal([]byte(`{"id":"garbage"}`), &decoded))
	})
}
