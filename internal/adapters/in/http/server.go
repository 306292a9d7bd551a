// Package http is the inbound REST adapter. It maps transport requests onto
// commands and queries 1:1 and translates domain errors into status codes.
// Proximity soft gates are not errors: they come back as a 200 envelope with
// warning set, so courier clients can prompt a retry without special casing.
package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"oshxona/internal/core/application/usecases/commands"
	"oshxona/internal/core/application/usecases/queries"
	"oshxona/internal/core/domain/model/kernel"
	"oshxona/internal/core/domain/model/order"
	"oshxona/internal/core/domain/services"
	"oshxona/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler
	assignCourierHandler     commands.AssignCourierCommandHandler
	courierActionHandler     commands.CourierActionCommandHandler
	confirmArrivalHandler    commands.ConfirmArrivalCommandHandler

	// Query handlers
	getDeliveryEstimateHandler   queries.GetDeliveryEstimateQueryHandler
	getBranchActiveOrdersHandler queries.GetBranchActiveOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	assignCourierHandler commands.AssignCourierCommandHandler,
	courierActionHandler commands.CourierActionCommandHandler,
	confirmArrivalHandler commands.ConfirmArrivalCommandHandler,
	getDeliveryEstimateHandler queries.GetDeliveryEstimateQueryHandler,
	getBranchActiveOrdersHandler queries.GetBranchActiveOrdersQueryHandler,
) *Server {
	return &Server{
		changeOrderStatusHandler:     changeOrderStatusHandler,
		assignCourierHandler:         assignCourierHandler,
		courierActionHandler:         courierActionHandler,
		confirmArrivalHandler:        confirmArrivalHandler,
		getDeliveryEstimateHandler:   getDeliveryEstimateHandler,
		getBranchActiveOrdersHandler: getBranchActiveOrdersHandler,
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/orders/:id/status", s.ChangeOrderStatus)
	api.POST("/orders/:id/assign", s.AssignCourier)
	api.POST("/orders/:id/courier/:action", s.CourierAction)
	api.POST("/orders/:id/arrived", s.ConfirmArrival)
	api.GET("/delivery/estimate", s.GetDeliveryEstimate)
	api.GET("/branches/:id/orders/active", s.GetBranchActiveOrders)

	e.GET("/health", s.Health)
}

// Error is the JSON body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Order is the transport view of an order aggregate after a command.
type Order struct {
	ID        string     `json:"id"`
	Type      string     `json:"type"`
	Status    string     `json:"status"`
	BranchID  *string    `json:"branch_id,omitempty"`
	CourierID *string    `json:"courier_id,omitempty"`
	Total     int64      `json:"total"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// CourierActionResult is the envelope of a courier action. When the proximity
// gate refuses the action, Warning is set and the order comes back unchanged.
type CourierActionResult struct {
	Warning     bool    `json:"warning"`
	DistanceKm  float64 `json:"distance_km,omitempty"`
	ThresholdKm float64 `json:"threshold_km,omitempty"`
	Message     string  `json:"message,omitempty"`
	Order       Order   `json:"order"`
}

// DeliveryEstimate is the combined ETA and fee quote.
type DeliveryEstimate struct {
	BranchID           *string `json:"branch_id,omitempty"`
	Source             string  `json:"source"`
	DistanceKm         float64 `json:"distance_km"`
	PreparationMinutes int     `json:"preparation_minutes"`
	TravelMinutes      int     `json:"travel_minutes"`
	TotalMinutes       int     `json:"total_minutes"`
	Fee                int64   `json:"fee"`
	IsFreeDelivery     bool    `json:"is_free_delivery"`
	Message            string  `json:"message,omitempty"`
}

// BranchOrder is one row of the branch dashboard.
type BranchOrder struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	CourierID *string   `json:"courier_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type changeStatusRequest struct {
	Status    string `json:"status"`
	UpdatedBy string `json:"updated_by"`
	Note      string `json:"note"`
}

type assignCourierRequest struct {
	CourierID *string `json:"courier_id"`
}

type courierActionRequest struct {
	CourierID string   `json:"courier_id"`
	Lat       *float64 `json:"lat"`
	Lon       *float64 `json:"lon"`
	Reason    string   `json:"reason"`
}

type confirmArrivalRequest struct {
	UpdatedBy string `json:"updated_by"`
}

// ChangeOrderStatus handles POST /api/v1/orders/:id/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var request changeStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewChangeOrderStatusCommand(
		orderID, order.Status(request.Status), request.UpdatedBy, request.Note)
	if err != nil {
		return badRequest(ctx, "Invalid status change: "+err.Error())
	}

	aggregate, err := s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrder(aggregate))
}

// AssignCourier handles POST /api/v1/orders/:id/assign. A body without a
// courier_id requests automatic selection.
func (s *Server) AssignCourier(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var request assignCourierRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var courierID *kernel.UUID
	if request.CourierID != nil {
		parsed, parseErr := kernel.UUIDFromString(*request.CourierID)
		if parseErr != nil {
			return badRequest(ctx, "Invalid courier id")
		}
		courierID = &parsed
	}

	cmd, err := commands.NewAssignCourierCommand(orderID, courierID)
	if err != nil {
		return badRequest(ctx, "Invalid assignment: "+err.Error())
	}

	aggregate, err := s.assignCourierHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrder(aggregate))
}

// CourierAction handles POST /api/v1/orders/:id/courier/:action.
func (s *Server) CourierAction(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var request courierActionRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	courierID, err := kernel.UUIDFromString(request.CourierID)
	if err != nil {
		return badRequest(ctx, "Invalid courier id")
	}

	var location *kernel.Location
	if request.Lat != nil && request.Lon != nil {
		parsed, locationErr := kernel.NewLocation(*request.Lat, *request.Lon)
		if locationErr != nil {
			return badRequest(ctx, "Invalid location")
		}
		location = &parsed
	}

	cmd, err := commands.NewCourierActionCommand(
		orderID, courierID, commands.CourierAction(ctx.Param("action")), location, request.Reason)
	if err != nil {
		return badRequest(ctx, "Invalid courier action: "+err.Error())
	}

	result, err := s.courierActionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := CourierActionResult{Order: toOrder(result.Order)}
	if result.Warning != nil {
		response.Warning = true
		response.DistanceKm = result.Warning.DistanceKm
		response.ThresholdKm = result.Warning.ThresholdKm
		response.Message = "too far from the required point, move closer and retry"
	}

	return ctx.JSON(http.StatusOK, response)
}

// ConfirmArrival handles POST /api/v1/orders/:id/arrived - records the
// customer-arrived event on a dine-in or table order.
func (s *Server) ConfirmArrival(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var request confirmArrivalRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewConfirmArrivalCommand(orderID, request.UpdatedBy)
	if err != nil {
		return badRequest(ctx, "Invalid arrival confirmation: "+err.Error())
	}

	aggregate, err := s.confirmArrivalHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrder(aggregate))
}

// GetDeliveryEstimate handles GET /api/v1/delivery/estimate?lat=&lon=&amount=&prep=.
// prep is an optional comma-separated list of per-line preparation minutes for
// the prospective basket; without it the default preparation time applies.
func (s *Server) GetDeliveryEstimate(ctx echo.Context) error {
	lat, err := strconv.ParseFloat(ctx.QueryParam("lat"), 64)
	if err != nil {
		return badRequest(ctx, "Invalid lat")
	}
	lon, err := strconv.ParseFloat(ctx.QueryParam("lon"), 64)
	if err != nil {
		return badRequest(ctx, "Invalid lon")
	}
	amount := int64(0)
	if raw := ctx.QueryParam("amount"); raw != "" {
		amount, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return badRequest(ctx, "Invalid amount")
		}
	}
	var prepMinutes []int
	if raw := ctx.QueryParam("prep"); raw != "" {
		for _, field := range strings.Split(raw, ",") {
			minutes, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return badRequest(ctx, "Invalid prep")
			}
			prepMinutes = append(prepMinutes, minutes)
		}
	}

	destination, err := kernel.NewLocation(lat, lon)
	if err != nil {
		return badRequest(ctx, "Invalid location")
	}

	query, err := queries.NewGetDeliveryEstimateQuery(destination, amount, prepMinutes)
	if err != nil {
		return badRequest(ctx, "Invalid estimate request: "+err.Error())
	}

	estimate, err := s.getDeliveryEstimateHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := DeliveryEstimate{
		Source:             string(estimate.Source),
		DistanceKm:         estimate.DistanceKm,
		PreparationMinutes: estimate.PreparationMinutes,
		TravelMinutes:      estimate.TravelMinutes,
		TotalMinutes:       estimate.TotalMinutes,
		Fee:                estimate.Fee,
		IsFreeDelivery:     estimate.IsFreeDelivery,
		Message:            estimate.Message,
	}
	if estimate.BranchID != nil {
		id := estimate.BranchID.String()
		response.BranchID = &id
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetBranchActiveOrders handles GET /api/v1/branches/:id/orders/active.
func (s *Server) GetBranchActiveOrders(ctx echo.Context) error {
	branchID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid branch id")
	}

	query, err := queries.NewGetBranchActiveOrdersQuery(branchID)
	if err != nil {
		return badRequest(ctx, "Invalid branch query: "+err.Error())
	}

	active, err := s.getBranchActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]BranchOrder, len(active))
	for i, row := range active {
		response[i] = BranchOrder{
			ID:        row.ID.String(),
			Type:      string(row.Type),
			Status:    string(row.Status),
			CourierID: optionalUUID(row.CourierID),
			CreatedAt: row.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}

func optionalUUID(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func toOrder(aggregate *order.Order) Order {
	response := Order{
		ID:        aggregate.ID().String(),
		Type:      string(aggregate.Type()),
		Status:    string(aggregate.Status()),
		BranchID:  optionalUUID(aggregate.BranchID()),
		CourierID: optionalUUID(aggregate.CourierID()),
		Total:     aggregate.Total(),
		CreatedAt: aggregate.CreatedAt(),
	}
	if history := aggregate.History(); len(history) > 0 {
		last := history[len(history)-1].Timestamp
		response.UpdatedAt = &last
	}
	return response
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// errorResponse maps use case errors onto transport status codes. Not-found
// keeps 404, state machine refusals come back as 409 so clients can tell a
// retryable conflict from a malformed request.
func errorResponse(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, commands.ErrNotAssignedCourier):
		code = http.StatusForbidden
	case errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, order.ErrCourierRequired),
		errors.Is(err, order.ErrCourierOnlyTransition),
		errors.Is(err, order.ErrPrematureCompletion),
		errors.Is(err, order.ErrArrivalNotConfirmed),
		errors.Is(err, order.ErrOrderTerminal),
		errors.Is(err, order.ErrNotDeliveryOrder),
		errors.Is(err, commands.ErrCourierUnavailable),
		errors.Is(err, services.ErrNoCourierAvailable):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, Error{Code: code, Message: err.Error()})
}
