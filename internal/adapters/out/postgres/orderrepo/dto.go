// Package orderrepo persists order aggregates. The aggregate flattens into one
// row: scalar columns for the queryable fields (status, type, branch, courier),
// JSONB documents for the history log and the order lines. A whole aggregate
// lands in a single write, which keeps the status/history pair atomic.
package orderrepo

import (
	"encoding/json"
	"time"

	"oshxona/internal/core/domain/model/kernel"
	"oshxona/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderType      string     `gorm:"type:varchar(16);index"`
	CustomerID     uuid.UUID  `gorm:"type:uuid;index"`
	CustomerChatID int64      `gorm:"index"`
	BranchID       *uuid.UUID `gorm:"type:uuid;index"`
	Status         string     `gorm:"type:varchar(20);index"`
	History        []byte     `gorm:"type:jsonb"`
	Items          []byte     `gorm:"type:jsonb"`

	// delivery details, null for non-delivery orders
	CourierID    *uuid.UUID `gorm:"type:uuid;index"`
	Address      *string
	Latitude     *float64
	Longitude    *float64
	Instructions *string

	// courier flow milestones
	AcceptedAt        *time.Time
	OnWayAt           *time.Time
	PickedUpAt        *time.Time
	PickedUpLat       *float64
	PickedUpLon       *float64
	DeliveredAt       *time.Time
	DeliveredLat      *float64
	DeliveredLon      *float64
	CancelledAt       *time.Time
	CancelReason      string
	CurrentLat        *float64
	CurrentLon        *float64
	CurrentLocationAt *time.Time

	// dine-in details
	ArrivalTime *time.Time
	TableNumber *string

	CreatedAt time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

type historyEntryDTO struct {
	Status    string    `json:"status"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	UpdatedBy string    `json:"updated_by"`
}

type itemDTO struct {
	ProductID          uuid.UUID `json:"product_id"`
	Name               string    `json:"name"`
	Quantity           int       `json:"quantity"`
	UnitPrice          int64     `json:"unit_price"`
	PreparationMinutes int       `json:"preparation_minutes,omitempty"`
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	historyDTOs := make([]historyEntryDTO, 0, len(aggregate.History()))
	for _, entry := range aggregate.History() {
		historyDTOs = append(historyDTOs, historyEntryDTO{
			Status:    entry.Status.String(),
			Message:   entry.Message,
			Timestamp: entry.Timestamp,
			UpdatedBy: entry.UpdatedBy,
		})
	}
	historyRaw, err := json.Marshal(historyDTOs)
	if err != nil {
		return OrderDTO{}, err
	}

	itemDTOs := make([]itemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		itemDTOs = append(itemDTOs, itemDTO{
			ProductID:          item.ProductID().Bytes(),
			Name:               item.Name(),
			Quantity:           item.Quantity(),
			UnitPrice:          item.UnitPrice(),
			PreparationMinutes: item.PreparationMinutes(),
		})
	}
	itemsRaw, err := json.Marshal(itemDTOs)
	if err != nil {
		return OrderDTO{}, err
	}

	dto := OrderDTO{
		ID:             aggregate.ID().Bytes(),
		OrderType:      string(aggregate.Type()),
		CustomerID:     aggregate.CustomerID().Bytes(),
		CustomerChatID: aggregate.CustomerChatID(),
		Status:         aggregate.Status().String(),
		History:        historyRaw,
		Items:          itemsRaw,
		CreatedAt:      aggregate.CreatedAt(),
	}

	if branchID := aggregate.BranchID(); branchID != nil {
		raw := branchID.Bytes()
		dto.BranchID = &raw
	}

	if info := aggregate.DeliveryInfo(); info != nil {
		address := info.Address
		lat := info.Location.Latitude()
		lon := info.Location.Longitude()
		instructions := info.Instructions
		dto.Address = &address
		dto.Latitude = &lat
		dto.Longitude = &lon
		dto.Instructions = &instructions
		if info.CourierID != nil {
			raw := info.CourierID.Bytes()
			dto.CourierID = &raw
		}
	}

	flow := aggregate.CourierFlow()
	dto.AcceptedAt = flow.AcceptedAt
	dto.OnWayAt = flow.OnWayAt
	dto.PickedUpAt = flow.PickedUpAt
	dto.PickedUpLat, dto.PickedUpLon = splitLocation(flow.PickedUpLocation)
	dto.DeliveredAt = flow.DeliveredAt
	dto.DeliveredLat, dto.DeliveredLon = splitLocation(flow.DeliveredLocation)
	dto.CancelledAt = flow.CancelledAt
	dto.CancelReason = flow.CancelReason
	dto.CurrentLat, dto.CurrentLon = splitLocation(flow.CurrentLocation)
	dto.CurrentLocationAt = flow.CurrentLocationAt

	if info := aggregate.DineInInfo(); info != nil {
		table := info.TableNumber
		dto.ArrivalTime = info.ArrivalTime
		dto.TableNumber = &table
	}

	return dto, nil
}

// toDomain reconstructs the complete aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var branchID *kernel.UUID
	if dto.BranchID != nil {
		restored, branchErr := kernel.UUIDFromBytes((*dto.BranchID)[:])
		if branchErr != nil {
			return nil, branchErr
		}
		branchID = &restored
	}

	history, err := historyToDomain(dto.History)
	if err != nil {
		return nil, err
	}
	items, err := itemsToDomain(dto.Items)
	if err != nil {
		return nil, err
	}
	deliveryInfo, err := deliveryToDomain(dto)
	if err != nil {
		return nil, err
	}
	flow, err := flowToDomain(dto)
	if err != nil {
		return nil, err
	}

	var dineInInfo *order.DineInInfo
	if dto.TableNumber != nil || dto.ArrivalTime != nil {
		dineInInfo = &order.DineInInfo{ArrivalTime: dto.ArrivalTime}
		if dto.TableNumber != nil {
			dineInInfo.TableNumber = *dto.TableNumber
		}
	}

	return order.RestoreOrder(
		id,
		order.Type(dto.OrderType),
		customerID,
		dto.CustomerChatID,
		branchID,
		order.Status(dto.Status),
		history,
		items,
		deliveryInfo,
		flow,
		dineInInfo,
		dto.CreatedAt,
	)
}

func historyToDomain(raw []byte) ([]order.HistoryEntry, error) {
	var dtos []historyEntryDTO
	if err := json.Unmarshal(raw, &dtos); err != nil {
		return nil, err
	}

	history := make([]order.HistoryEntry, 0, len(dtos))
	for _, dto := range dtos {
		history = append(history, order.HistoryEntry{
			Status:    order.Status(dto.Status),
			Message:   dto.Message,
			Timestamp: dto.Timestamp,
			UpdatedBy: dto.UpdatedBy,
		})
	}
	return history, nil
}

func itemsToDomain(raw []byte) ([]order.Item, error) {
	var dtos []itemDTO
	if err := json.Unmarshal(raw, &dtos); err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dtos))
	for _, dto := range dtos {
		productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
		if err != nil {
			return nil, err
		}
		item, err := order.NewItem(productID, dto.Name, dto.Quantity, dto.UnitPrice, dto.PreparationMinutes)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func deliveryToDomain(dto OrderDTO) (*order.DeliveryInfo, error) {
	if dto.Address == nil || dto.Latitude == nil || dto.Longitude == nil {
		return nil, nil
	}

	location, err := kernel.NewLocation(*dto.Latitude, *dto.Longitude)
	if err != nil {
		return nil, err
	}

	info := &order.DeliveryInfo{
		Address:  *dto.Address,
		Location: location,
	}
	if dto.Instructions != nil {
		info.Instructions = *dto.Instructions
	}
	if dto.CourierID != nil {
		courierID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		info.CourierID = &courierID
	}
	return info, nil
}

func flowToDomain(dto OrderDTO) (order.CourierFlow, error) {
	pickedUp, err := joinLocation(dto.PickedUpLat, dto.PickedUpLon)
	if err != nil {
		return order.CourierFlow{}, err
	}
	delivered, err := joinLocation(dto.DeliveredLat, dto.DeliveredLon)
	if err != nil {
		return order.CourierFlow{}, err
	}
	current, err := joinLocation(dto.CurrentLat, dto.CurrentLon)
	if err != nil {
		return order.CourierFlow{}, err
	}

	return order.CourierFlow{
		AcceptedAt:        dto.AcceptedAt,
		OnWayAt:           dto.OnWayAt,
		PickedUpAt:        dto.PickedUpAt,
		PickedUpLocation:  pickedUp,
		DeliveredAt:       dto.DeliveredAt,
		DeliveredLocation: delivered,
		CancelledAt:       dto.CancelledAt,
		CancelReason:      dto.CancelReason,
		CurrentLocation:   current,
		CurrentLocationAt: dto.CurrentLocationAt,
	}, nil
}

func splitLocation(location *kernel.Location) (*float64, *float64) {
	if location == nil {
		return nil, nil
	}
	lat := location.Latitude()
	lon := location.Longitude()
	return &lat, &lon
}

func joinLocation(lat, lon *float64) (*kernel.Location, error) {
	if lat == nil || lon == nil {
		return nil, nil
	}
	location, err := kernel.NewLocation(*lat, *lon)
	if err != nil {
		return nil, err
	}
	return &location, nil
}
