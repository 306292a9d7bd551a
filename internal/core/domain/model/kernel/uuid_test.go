package kernel_test

import (
	"testing"

	"oshxona/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const canonicalID = "550e8400-e29b-41d4-a716-446655440000"

func TestNewUUID(t *testing.T) {
	t.Run("should mint a valid identifier", func(t *testing.T) {
		orderID := kernel.NewUUID()

		assert.NoError(t, orderID.Validate())
		assert.Regexp(t, `^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`, orderID.String())
	})

	t.Run("two orders never share an identifier", func(t *testing.T) {
		first := kernel.NewUUID()
		second := kernel.NewUUID()

		assert.False(t, first.IsEqual(second))
		assert.NotEqual(t, first.String(), second.String())
	})
}

func TestUUIDFromString(t *testing.T) {
	t.Run("should accept the standard textual forms", func(t *testing.T) {
		for _, input := range []string{
			canonicalID,
			"{550e8400-e29b-41d4-a716-446655440000}",
			"urn:uuid:550e8400-e29b-41d4-a716-446655440000",
			"550e8400e29b41d4a716446655440000",
		} {
			id, err := kernel.UUIDFromString(input)

			require.NoError(t, err, "input: %s", input)
			assert.Equal(t, canonicalID, id.String())
			assert.NoError(t, id.Validate())
		}
	})

	t.Run("should reject malformed input", func(t *testing.T) {
		for _, input := range []string{
			"",
			"order-42",
			"550e8400-e29b-41d4-a716",
			"550e8400-e29b-41d4-a716-446655440000-extra",
			"zzze8400-e29b-41d4-a716-446655440000",
		} {
			_, err := kernel.UUIDFromString(input)

			require.Error(t, err, "input: %s", input)
			assert.Contains(t, err.Error(), "invalid UUID format")
		}
	})
}

func TestUUIDFromBytes(t *testing.T) {
	canonicalBytes := []byte{
		0x55, 0x0e, 0x84, 0x00, 0xe2, 0x9b, 0x41, 0xd4,
		0xa7, 0x16, 0x44, 0x66, 0x55, 0x44, 0x00, 0x00,
	}

	t.Run("should rebuild the identifier from storage bytes", func(t *testing.T) {
		id, err := kernel.UUIDFromBytes(canonicalBytes)

		require.NoError(t, err)
		assert.Equal(t, canonicalID, id.String())
	})

	t.Run("should reject a short slice", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes(canonicalBytes[:3])

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid UUID format")
	})

	t.Run("should reject the nil UUID", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes(make([]byte, 16))

		require.Error(t, err)
		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, err)
	})
}

func TestUUID_Bytes(t *testing.T) {
	t.Run("round trips through the underlying value", func(t *testing.T) {
		id := kernel.NewUUID()
		underlying := id.Bytes()

		assert.IsType(t, uuid.UUID{}, underlying)
		assert.Equal(t, id.String(), underlying.String())
	})

	t.Run("returned value is a copy", func(t *testing.T) {
		id := kernel.NewUUID()
		before := id.String()

		underlying := id.Bytes()
		for i := range underlying {
			underlying[i] = 0xFF
		}

		assert.Equal(t, before, id.String())
		assert.NoError(t, id.Validate())
	})
}

func TestUUID_IsEqual(t *testing.T) {
	t.Run("same value from different sources is equal", func(t *testing.T) {
		fromPath, err := kernel.UUIDFromString(canonicalID)
		require.NoError(t, err)
		fromBody, err := kernel.UUIDFromString("{" + canonicalID + "}")
		require.NoError(t, err)

		assert.True(t, fromPath.IsEqual(fromBody))
		assert.True(t, fromBody.IsEqual(fromPath))
	})

	t.Run("zero values compare equal to each other only", func(t *testing.T) {
		var left, right kernel.UUID

		assert.True(t, left.IsEqual(right))
		assert.False(t, left.IsEqual(kernel.NewUUID()))
	})
}

func TestUUID_Validate(t *testing.T) {
	t.Run("constructed identifier passes", func(t *testing.T) {
		assert.NoError(t, kernel.NewUUID().Validate())
	})

	t.Run("zero value fails", func(t *testing.T) {
		var id kernel.UUID

		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, id.Validate())
	})

	t.Run("parsed nil UUID fails the same way", func(t *testing.T) {
		id, err := kernel.UUIDFromString("00000000-0000-0000-0000-000000000000")
		require.NoError(t, err)

		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, id.Validate())
	})
}
