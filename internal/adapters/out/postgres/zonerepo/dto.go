// Package zonerepo persists delivery zone definitions. A zone row carries one
// of two geometries: a center plus radius, or a polygon stored as a JSONB
// vertex list.
package zonerepo

import (
	"encoding/json"

	"oshxona/internal/core/domain/model/kernel"
	"oshxona/internal/core/domain/model/zone"

	"github.com/google/uuid"
)

// ZoneDTO represents the database structure for persisting delivery zones.
type ZoneDTO struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name                  string
	BranchID              uuid.UUID `gorm:"type:uuid;index"`
	Geometry              string    `gorm:"type:varchar(10)"`
	CenterLat             *float64
	CenterLon             *float64
	RadiusKm              float64
	Polygon               []byte `gorm:"type:jsonb"`
	DeliveryFee           int64
	FreeDeliveryThreshold int64
	Priority              int
	IsActive              bool `gorm:"index"`
	OpenHour              int
	CloseHour             int
}

// TableName specifies the database table name for zone entities.
func (ZoneDTO) TableName() string {
	return "delivery_zones"
}

type vertexDTO struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func fromDomain(aggregate *zone.DeliveryZone) (ZoneDTO, error) {
	dto := ZoneDTO{
		ID:                    aggregate.ID().Bytes(),
		Name:                  aggregate.Name(),
		BranchID:              aggregate.BranchID().Bytes(),
		Geometry:              string(aggregate.Geometry()),
		DeliveryFee:           aggregate.DeliveryFee(),
		FreeDeliveryThreshold: aggregate.FreeDeliveryThreshold(),
		Priority:              aggregate.Priority(),
		IsActive:              aggregate.IsActive(),
		OpenHour:              aggregate.OpenHour(),
		CloseHour:             aggregate.CloseHour(),
	}

	switch aggregate.Geometry() {
	case zone.GeometryRadius:
		center := aggregate.Center()
		lat := center.Latitude()
		lon := center.Longitude()
		dto.CenterLat = &lat
		dto.CenterLon = &lon
		dto.RadiusKm = aggregate.RadiusKm()
	case zone.GeometryPolygon:
		vertices := make([]vertexDTO, 0, len(aggregate.Polygon()))
		for _, vertex := range aggregate.Polygon() {
			vertices = append(vertices, vertexDTO{Lat: vertex.Latitude(), Lon: vertex.Longitude()})
		}
		raw, err := json.Marshal(vertices)
		if err != nil {
			return ZoneDTO{}, err
		}
		dto.Polygon = raw
	}

	return dto, nil
}

func toDomain(dto ZoneDTO) (*zone.DeliveryZone, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	branchID, err := kernel.UUIDFromBytes(dto.BranchID[:])
	if err != nil {
		return nil, err
	}

	var center kernel.Location
	if dto.CenterLat != nil && dto.CenterLon != nil {
		center, err = kernel.NewLocation(*dto.CenterLat, *dto.CenterLon)
		if err != nil {
			return nil, err
		}
	}

	var polygon []kernel.Location
	if len(dto.Polygon) > 0 {
		var vertices []vertexDTO
		if err = json.Unmarshal(dto.Polygon, &vertices); err != nil {
			return nil, err
		}
		polygon = make([]kernel.Location, 0, len(vertices))
		for _, vertex := range vertices {
			point, vertexErr := kernel.NewLocation(vertex.Lat, vertex.Lon)
			if vertexErr != nil {
				return nil, vertexErr
			}
			polygon = append(polygon, point)
		}
	}

	return zone.RestoreZone(
		id,
		dto.Name,
		branchID,
		zone.Geometry(dto.Geometry),
		center,
		dto.RadiusKm,
		polygon,
		dto.DeliveryFee,
		dto.FreeDeliveryThreshold,
		dto.Priority,
		dto.IsActive,
		dto.OpenHour,
		dto.CloseHour,
	)
}
