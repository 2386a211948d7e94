package stock

import (
	"testing"

	"github.com/PLZ-test/wms/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMovement(t *testing.T) {
	t.Run("creates movement with valid inputs", func(t *testing.T) {
		productID := uuid.New()
		m, err := NewMovement(productID, MovementTypeIn, 25, "restock delivery")
		require.NoError(t, err)

		assert.Equal(t, productID, m.ProductID)
		assert.Equal(t, MovementTypeIn, m.Type)
		assert.Equal(t, 25, m.Quantity)
		assert.Equal(t, "restock delivery", m.Memo)
		assert.False(t, m.MovedAt.IsZero())
	})

	t.Run("rejects empty product", func(t *testing.T) {
		_, err := NewMovement(uuid.Nil, MovementTypeOut, 1, "")
		require.Error(t, err)
	})

	t.Run("rejects unknown movement type", func(t *testing.T) {
		_, err := NewMovement(uuid.New(), MovementType("ADJUST"), 1, "")
		require.Error(t, err)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := NewMovement(uuid.New(), MovementTypeIn, 0, "")
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_QUANTITY", domainErr.Code)
	})
}

func TestMovementType_IsValid(t *testing.T) {
	assert.True(t, MovementTypeIn.IsValid())
	assert.True(t, MovementTypeOut.IsValid())
	assert.False(t, MovementType("ADJUST").IsValid())
}
