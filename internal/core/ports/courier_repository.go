package ports

import (
	"context"

	"oshxona/internal/core/domain/model/courier"
	"oshxona/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for the courier directory.
type CourierRepository interface {
	// Add persists a new courier to the directory.
	Add(ctx context.Context, courier *courier.Courier) error

	// Update persists changes to an existing courier.
	Update(ctx context.Context, courier *courier.Courier) error

	// Get retrieves a courier by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetAvailableByBranch retrieves couriers of the branch that are active,
	// online and available, ordered by id for a stable selection order.
	GetAvailableByBranch(ctx context.Context, branchID kernel.UUID) ([]*courier.Courier, error)
}
