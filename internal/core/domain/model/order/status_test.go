package order_test

import (
	"testing"
	"time"

	"oshxona/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusValidate(t *testing.T) {
	t.Run("should accept every vocabulary value", func(t *testing.T) {
		statuses := []order.Status{
			order.StatusPending, order.StatusConfirmed, order.StatusAssigned,
			order.StatusPreparing, order.StatusReady, order.StatusOnDelivery,
			order.StatusPickedUp, order.StatusDelivered, order.StatusCompleted,
			order.StatusCancelled,
		}
		for _, status := range statuses {
			assert.NoError(t, status.Validate(), string(status))
		}
	})

	t.Run("should reject unknown values", func(t *testing.T) {
		err := order.Status("teleported").Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrInvalidStatus)
		assert.Contains(t, err.Error(), "teleported")
	})

	t.Run("should reject the customer arrived event", func(t *testing.T) {
		// customer_arrived is a history marker, never a status
		err := order.EventCustomerArrived.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrInvalidStatus)
	})
}

func TestStatusPredicates(t *testing.T) {
	t.Run("terminal", func(t *testing.T) {
		assert.True(t, order.StatusCompleted.IsTerminal())
		assert.True(t, order.StatusCancelled.IsTerminal())
		assert.False(t, order.StatusDelivered.IsTerminal())
		assert.False(t, order.StatusPending.IsTerminal())
	})

	t.Run("closed includes delivered", func(t *testing.T) {
		assert.True(t, order.StatusDelivered.IsClosed())
		assert.True(t, order.StatusCompleted.IsClosed())
		assert.True(t, order.StatusCancelled.IsClosed())
		assert.False(t, order.StatusOnDelivery.IsClosed())
	})

	t.Run("courier active load", func(t *testing.T) {
		assert.True(t, order.StatusAssigned.IsCourierActive())
		assert.True(t, order.StatusOnDelivery.IsCourierActive())
		assert.False(t, order.StatusPickedUp.IsCourierActive())
		assert.False(t, order.StatusPending.IsCourierActive())
	})
}

func TestTerminalStatusPermitsNoTransitions(t *testing.T) {
	at := time.Date(2024, 5, 12, 10, 0, 0, 0, time.UTC)

	aggregate := newTestOrder(t, order.TypePickup)
	require.NoError(t, aggregate.ChangeStatus(order.StatusCancelled, "branch", "out of stock", at))

	err := aggregate.ChangeStatus(order.StatusConfirmed, "branch", "", at)

	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrInvalidStatus)
	assert.Equal(t, order.StatusCancelled, aggregate.Status())
}
