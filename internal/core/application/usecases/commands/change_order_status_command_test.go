package commands_test

import (
	"testing"

	"oshxona/internal/core/application/usecases/commands"
	"oshxona/internal/core/domain/model/kernel"
	"oshxona/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChangeOrderStatusCommand(t *testing.T) {
	orderID := kernel.NewUUID()

	t.Run("valid", func(t *testing.T) {
		cmd, err := commands.NewChangeOrderStatusCommand(orderID, order.StatusConfirmed, "operator:7", "ok")
		require.NoError(t, err)
		assert.Equal(t, orderID, cmd.OrderID())
		assert.Equal(t, order.StatusConfirmed, cmd.Target())
		assert.Equal(t, "operator:7", cmd.UpdatedBy())
		assert.Equal(t, "ok", cmd.Note())
		assert.NoError(t, cmd.Validate())
	})

	t.Run("empty order id", func(t *testing.T) {
		_, err := commands.NewChangeOrderStatusCommand(kernel.UUID{}, order.StatusConfirmed, "operator:7", "")
		require.Error(t, err)
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := commands.NewChangeOrderStatusCommand(orderID, order.Status("shipped"), "operator:7", "")
		require.ErrorIs(t, err, order.ErrInvalidStatus)
	})

	t.Run("arrival marker is not a status", func(t *testing.T) {
		_, err := commands.NewChangeOrderStatusCommand(orderID, order.EventCustomerArrived, "operator:7", "")
		require.ErrorIs(t, err, order.ErrInvalidStatus)
	})

	t.Run("updated by required", func(t *testing.T) {
		_, err := commands.NewChangeOrderStatusCommand(orderID, order.StatusConfirmed, "", "")
		require.ErrorIs(t, err, commands.ErrUpdatedByIsRequired)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.ChangeOrderStatusCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrChangeOrderStatusCommandIsNotConstructed)
	})
}
