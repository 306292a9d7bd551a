// Package branchrepo persists branch reference data.
package branchrepo

import (
	"oshxona/internal/core/domain/model/branch"
	"oshxona/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// BranchDTO represents the database structure for persisting branches.
type BranchDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string
	Latitude  *float64
	Longitude *float64
	ChannelID int64
	IsActive  bool `gorm:"index"`
	OpenHour  int
	CloseHour int
}

// TableName specifies the database table name for branch entities.
func (BranchDTO) TableName() string {
	return "branches"
}

func fromDomain(aggregate *branch.Branch) BranchDTO {
	dto := BranchDTO{
		ID:        aggregate.ID().Bytes(),
		Name:      aggregate.Name(),
		ChannelID: aggregate.ChannelID(),
		IsActive:  aggregate.IsActive(),
		OpenHour:  aggregate.OpenHour(),
		CloseHour: aggregate.CloseHour(),
	}

	if location := aggregate.Location(); location != nil {
		lat := location.Latitude()
		lon := location.Longitude()
		dto.Latitude = &lat
		dto.Longitude = &lon
	}

	return dto
}

func toDomain(dto BranchDTO) (*branch.Branch, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
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

	return branch.RestoreBranch(
		id,
		dto.Name,
		location,
		dto.ChannelID,
		dto.IsActive,
		dto.OpenHour,
		dto.CloseHour,
	)
}
