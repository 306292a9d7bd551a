package ports

import (
	"context"

	"oshxona/internal/core/domain/model/zone"
)

// ZoneRepository defines the read contract for delivery zones.
// Zone CRUD belongs to the surrounding application; the dispatch core only reads.
type ZoneRepository interface {
	// GetAllActive retrieves all enabled zones ordered by priority descending.
	GetAllActive(ctx context.Context) ([]*zone.DeliveryZone, error)
}
