// Package courierrepo persists courier aggregates.
package courierrepo

import (
	"time"

	"oshxona/internal/core/domain/model/courier"
	"oshxona/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO represents the database structure for persisting courier aggregates.
type CourierDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string
	BranchID    uuid.UUID `gorm:"type:uuid;index"`
	IsActive    bool      `gorm:"index"`
	IsOnline    bool      `gorm:"index"`
	IsAvailable bool      `gorm:"index"`
	Rating      float64
	Latitude    *float64
	Longitude   *float64
	LocationAt  *time.Time
}

// TableName specifies the database table name for courier entities.
func (CourierDTO) TableName() string {
	return "couriers"
}

// fromDomain converts a courier aggregate to its database representation.
func fromDomain(aggregate *courier.Courier) CourierDTO {
	dto := CourierDTO{
		ID:          aggregate.ID().Bytes(),
		Name:        aggregate.Name(),
		BranchID:    aggregate.BranchID().Bytes(),
		IsActive:    aggregate.IsActive(),
		IsOnline:    aggregate.IsOnline(),
		IsAvailable: aggregate.IsAvailable(),
		Rating:      aggregate.Rating(),
		LocationAt:  aggregate.LocationAt(),
	}

	if location := aggregate.Location(); location != nil {
		lat := location.Latitude()
		lon := location.Longitude()
		dto.Latitude = &lat
		dto.Longitude = &lon
	}

	return dto
}

// toDomain reconstructs the courier aggregate using RestoreCourier.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	branchID, err := kernel.UUIDFromBytes(dto.BranchID[:])
	if err != nil {
		return nil, err
	}

	var location *kernel.Location
	if dto.Latitude != nil && dto.Longitude != nil {
		restored, locErr := kernel.NewLocation(*dto.Latitude, *dto.Longitude)
		if locErr != nil {
			return nil, locErr
		}
		location = &restored
	}

	return courier.RestoreCourier(
		id,
		dto.Name,
		branchID,
		dto.IsActive,
		dto.IsOnline,
		dto.IsAvailable,
		dto.Rating,
		location,
		dto.LocationAt,
	)
}
