package commands_test

import (
	"testing"

	"oshxona/internal/core/application/usecases/commands"
	"oshxona/internal/core/domain/model/kernel"
	"oshxona/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCourierActionCommand(t *testing.T) {
	orderID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	location := testLocation(t, 41.3111, 69.2797)

	t.Run("valid", func(t *testing.T) {
		cmd, err := commands.NewCourierActionCommand(orderID, courierID, commands.ActionPickedUp, &location, "")
		require.NoError(t, err)
		assert.Equal(t, commands.ActionPickedUp, cmd.Action())
		require.NotNil(t, cmd.Location())
		equal, err := cmd.Location().IsEqual(location)
		require.NoError(t, err)
		assert.True(t, equal)
	})

	t.Run("unknown action", func(t *testing.T) {
		_, err := commands.NewCourierActionCommand(orderID, courierID, commands.CourierAction("teleport"), &location, "")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("location required", func(t *testing.T) {
		_, err := commands.NewCourierActionCommand(orderID, courierID, commands.ActionDelivered, nil, "")
		require.ErrorIs(t, err, commands.ErrLocationIsRequired)
	})

	t.Run("cancel without location", func(t *testing.T) {
		cmd, err := commands.NewCourierActionCommand(orderID, courierID, commands.ActionCancel, nil, "flat tire")
		require.NoError(t, err)
		assert.Nil(t, cmd.Location())
		assert.Equal(t, "flat tire", cmd.Reason())
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.CourierActionCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrCourierActionCommandIsNotConstructed)
	})
}
