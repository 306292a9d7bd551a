package zonerepo

import (
	"context"

	"oshxona/internal/core/domain/model/zone"

	"gorm.io/gorm"
)

// GormZoneRepository implements ports.ZoneRepository using GORM.
// Zones are reference data; the dispatch path only ever reads them.
type GormZoneRepository struct {
	db *gorm.DB
}

// NewGormZoneRepository creates a new GORM delivery zone repository.
func NewGormZoneRepository(db *gorm.DB) *GormZoneRepository {
	return &GormZoneRepository{db: db}
}

// Add saves a new zone to the database. Used by provisioning and fixtures.
func (r *GormZoneRepository) Add(ctx context.Context, aggregate *zone.DeliveryZone) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetAllActive retrieves every enabled zone. Hour windows are evaluated by the
// resolver, not here, so a zone outside its hours still comes back.
func (r *GormZoneRepository) GetAllActive(ctx context.Context) ([]*zone.DeliveryZone, error) {
	var dtos []ZoneDTO
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("priority DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	zones := make([]*zone.DeliveryZone, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		zones = append(zones, aggregate)
	}

	return zones, nil
}
