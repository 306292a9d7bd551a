package queries

import (
	"context"
	"time"

	"oshxona/internal/core/domain/model/kernel"
	"oshxona/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetBranchActiveOrdersQueryHandler reads the in-flight orders of a branch.
// Closed orders (delivered, completed, cancelled) are filtered out; the rest
// come back oldest first, the way the kitchen works through them.
type GetBranchActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetBranchActiveOrdersQueryHandler creates a handler for branch workload queries.
// Requires a GORM database connection for query execution.
func NewGetBranchActiveOrdersQueryHandler(db *gorm.DB) GetBranchActiveOrdersQueryHandler {
	return GetBranchActiveOrdersQueryHandler{db: db}
}

// Handle executes the query and returns the branch's active orders.
func (h GetBranchActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetBranchActiveOrdersQuery,
) ([]GetBranchActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	responses := make([]GetBranchActiveOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_type,
			status,
			courier_id,
			created_at
		FROM orders
		WHERE branch_id = ?
		  AND status NOT IN (?, ?, ?)
		ORDER BY created_at
	`, query.BranchID().String(),
		order.StatusDelivered, order.StatusCompleted, order.StatusCancelled).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id        uuid.UUID
			orderType string
			status    string
			courierID uuid.NullUUID
			createdAt time.Time
		)

		if err = rows.Scan(&id, &orderType, &status, &courierID, &createdAt); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		response := GetBranchActiveOrdersQueryResponse{
			ID:        orderID,
			Type:      order.Type(orderType),
			Status:    order.Status(status),
			CreatedAt: createdAt,
		}

		if courierID.Valid {
			assignedID, courierErr := kernel.UUIDFromBytes(courierID.UUID[:])
			if courierErr != nil {
				return nil, courierErr
			}
			response.CourierID = &assignedID
		}

		responses = append(responses, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}
