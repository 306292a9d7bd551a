package ports

import (
	"context"

	"oshxona/internal/core/domain/model/branch"
	"oshxona/internal/core/domain/model/kernel"
)

// BranchRepository defines the read contract for branches.
// Branch CRUD belongs to the surrounding application; the dispatch core only reads.
type BranchRepository interface {
	// Get retrieves a branch by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*branch.Branch, error)

	// GetAllActive retrieves all branches currently taking orders.
	GetAllActive(ctx context.Context) ([]*branch.Branch, error)
}
