package order

import (
	"errors"
	"fmt"
	"time"

	"oshxona/internal/core/domain/model/kernel"
	"oshxona/internal/pkg/errs"
	"oshxona/internal/pkg/guard"
)

// Domain errors for order state transitions. All transition failures are
// errors.Is-matchable against exactly one of these kinds.
var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
	// ErrInvalidStatus is returned when a requested status is outside the fixed
	// vocabulary or not reachable from the current status.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrCourierRequired is returned when a delivery order would enter a
	// courier-driven status without an assigned courier.
	ErrCourierRequired = errors.New("courier is not assigned")
	// ErrCourierOnlyTransition is returned when a non-courier caller requests the
	// delivered status on a delivery order.
	ErrCourierOnlyTransition = errors.New("delivered can only be set by the assigned courier")
	// ErrPrematureCompletion is returned when a delivery order is completed
	// before being delivered.
	ErrPrematureCompletion = errors.New("order must be delivered before completion")
	// ErrArrivalNotConfirmed is returned when a dine-in or table order is marked
	// delivered before the customer arrival was confirmed.
	ErrArrivalNotConfirmed = errors.New("customer arrival is not confirmed")
	// ErrOrderTerminal is returned when assigning a courier to an order that is
	// already delivered, completed or cancelled.
	ErrOrderTerminal = errors.New("order is already finished")
	// ErrNotDeliveryOrder is returned when a courier operation is applied to a
	// non-delivery order.
	ErrNotDeliveryOrder = errors.New("operation is valid only for delivery orders")
)

// Type distinguishes how an order is fulfilled.
type Type string

const (
	// TypeDelivery orders are brought to the customer by a courier.
	TypeDelivery Type = "delivery"
	// TypePickup orders are collected by the customer at the branch.
	TypePickup Type = "pickup"
	// TypeDineIn orders are served to a customer eating at the branch.
	TypeDineIn Type = "dine_in"
	// TypeTable orders are placed from a table QR code.
	TypeTable Type = "table"
)

// Validate checks the order type against the fixed vocabulary.
func (t Type) Validate() error {
	switch t {
	case TypeDelivery, TypePickup, TypeDineIn, TypeTable:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"orderType", fmt.Errorf("%q is not a valid order type", string(t)))
	}
}

// IsDineIn reports whether the type requires customer presence at the branch.
func (t Type) IsDineIn() bool {
	return t == TypeDineIn || t == TypeTable
}

// HistoryEntry is one element of the append-only status log. Transition entries
// carry the new status; the customer-arrival marker carries EventCustomerArrived.
type HistoryEntry struct {
	Status    Status
	Message   string
	Timestamp time.Time
	UpdatedBy string
}

// DeliveryInfo holds the destination details of a delivery order.
type DeliveryInfo struct {
	Address      string
	Location     kernel.Location
	CourierID    *kernel.UUID
	Instructions string
}

// CourierFlow records the courier-side milestones of a delivery order.
// Populated incrementally by courier actions only; the *At timestamps grow
// monotonically accepted < pickedUp < delivered (or cancelled ends the flow).
type CourierFlow struct {
	AcceptedAt        *time.Time
	OnWayAt           *time.Time
	PickedUpAt        *time.Time
	PickedUpLocation  *kernel.Location
	DeliveredAt       *time.Time
	DeliveredLocation *kernel.Location
	CancelledAt       *time.Time
	CancelReason      string
	CurrentLocation   *kernel.Location
	CurrentLocationAt *time.Time
}

// DineInInfo holds the table details of a dine-in or table order.
type DineInInfo struct {
	ArrivalTime *time.Time
	TableNumber string
}

// ProximityWarning is the soft-gate result of a courier action attempted too far
// from the relevant point. It is not an error: the action is refused without
// mutating the order, and the caller should prompt the courier to retry closer.
type ProximityWarning struct {
	DistanceKm  float64
	ThresholdKm float64
}

// Order is the aggregate root for a food order. It owns the status state machine,
// the append-only status history, the embedded delivery/courier-flow/dine-in data
// and the derived total. Branch and courier are referenced by ID, never embedded.
//
// Invariants:
//   - history holds at least one entry once created; the latest transition entry
//     mirrors the current status
//   - a delivery order never holds on_delivery or delivered without a courier
//   - courier-flow timestamps grow monotonically
//   - every accepted transition appends exactly one history entry
type Order struct {
	id             kernel.UUID
	orderType      Type
	customerID     kernel.UUID
	customerChatID int64
	branchID       *kernel.UUID
	status         Status
	history        []HistoryEntry
	items          []Item
	deliveryInfo   *DeliveryInfo
	courierFlow    CourierFlow
	dineInInfo     *DineInInfo
	createdAt      time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates a new Order in pending status with the initial history entry.
//
// Parameters:
//   - id: unique order identifier
//   - orderType: one of delivery, pickup, dine_in, table
//   - customerID: the placing customer
//   - customerChatID: the customer's notification channel
//   - items: order lines (at least one)
//   - at: placement time, also the timestamp of the first history entry
func NewOrder(
	id kernel.UUID,
	orderType Type,
	customerID kernel.UUID,
	customerChatID int64,
	items []Item,
	at time.Time,
) (*Order, error) {
	o := &Order{
		status:    StatusPending,
		createdAt: at,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setType(orderType),
		o.setCustomerID(customerID),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	o.customerChatID = customerChatID
	o.history = []HistoryEntry{{
		Status:    StatusPending,
		Message:   "order placed",
		Timestamp: at,
		UpdatedBy: customerID.String(),
	}}

	return o, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage.
// Unlike NewOrder it accepts the full persisted state, including history and
// courier flow, and re-validates the core invariants.
func RestoreOrder(
	id kernel.UUID,
	orderType Type,
	customerID kernel.UUID,
	customerChatID int64,
	branchID *kernel.UUID,
	status Status,
	history []HistoryEntry,
	items []Item,
	deliveryInfo *DeliveryInfo,
	courierFlow CourierFlow,
	dineInInfo *DineInInfo,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setType(orderType),
		o.setCustomerID(customerID),
		o.setItems(items),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if len(history) == 0 {
		return nil, errs.NewValueIsRequiredError("statusHistory")
	}

	o.customerChatID = customerChatID
	o.branchID = branchID
	o.status = status
	o.history = append([]HistoryEntry(nil), history...)
	o.deliveryInfo = deliveryInfo
	o.courierFlow = courierFlow
	o.dineInInfo = dineInInfo

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || o.guard.Validate(ErrOrderIsNotConstructed) != nil {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Type returns the fulfillment type of the order.
func (o *Order) Type() Type {
	return o.orderType
}

// CustomerID returns the placing customer's identifier.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// CustomerChatID returns the customer's notification channel identifier.
func (o *Order) CustomerChatID() int64 {
	return o.customerChatID
}

// BranchID returns the owning branch, or nil before delivery resolution assigned one.
func (o *Order) BranchID() *kernel.UUID {
	return o.branchID
}

// SetBranch assigns the owning branch. Set at creation or at the first
// status-touch once delivery resolution picked a branch.
func (o *Order) SetBranch(branchID kernel.UUID) error {
	if err := branchID.Validate(); err != nil {
		return err
	}
	o.branchID = &branchID
	return nil
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// History returns a copy of the append-only status log.
func (o *Order) History() []HistoryEntry {
	return append([]HistoryEntry(nil), o.history...)
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	return append([]Item(nil), o.items...)
}

// Total returns the derived order total, the sum of all line totals.
func (o *Order) Total() int64 {
	var total int64
	for _, item := range o.items {
		total += item.LineTotal()
	}
	return total
}

// CreatedAt returns the placement time of the order.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// DeliveryInfo returns a copy of the delivery destination details, or nil for
// non-delivery orders.
func (o *Order) DeliveryInfo() *DeliveryInfo {
	if o.deliveryInfo == nil {
		return nil
	}
	info := *o.deliveryInfo
	return &info
}

// CourierFlow returns the courier milestone record.
func (o *Order) CourierFlow() CourierFlow {
	return o.courierFlow
}

// DineInInfo returns a copy of the dine-in details, or nil for other types.
func (o *Order) DineInInfo() *DineInInfo {
	if o.dineInInfo == nil {
		return nil
	}
	info := *o.dineInInfo
	return &info
}

// CourierID returns the assigned courier, or nil when the order has none.
func (o *Order) CourierID() *kernel.UUID {
	if o.deliveryInfo == nil {
		return nil
	}
	return o.deliveryInfo.CourierID
}

// SetDeliveryDetails attaches the destination to a delivery order.
func (o *Order) SetDeliveryDetails(address string, location kernel.Location, instructions string) error {
	if o.orderType != TypeDelivery {
		return ErrNotDeliveryOrder
	}
	if err := location.Validate(); err != nil {
		return err
	}
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}

	o.deliveryInfo = &DeliveryInfo{
		Address:      address,
		Location:     location,
		Instructions: instructions,
	}
	return nil
}

// SetDineInDetails attaches the table details to a dine-in or table order.
func (o *Order) SetDineInDetails(tableNumber string) error {
	if !o.orderType.IsDineIn() {
		return errs.NewValueIsInvalidErrorWithCause(
			"orderType", fmt.Errorf("%q orders have no dine-in details", string(o.orderType)))
	}

	o.dineInInfo = &DineInInfo{TableNumber: tableNumber}
	return nil
}

// ChangeStatus applies an administrative status transition. Courier-driven
// statuses keep their own rules: delivered on a delivery order is rejected here
// with ErrCourierOnlyTransition and must go through the courier actions.
//
// On success the status is set and exactly one history entry is appended.
func (o *Order) ChangeStatus(target Status, updatedBy string, note string, at time.Time) error {
	return o.applyTransition(target, updatedBy, note, at, false)
}

// AssignCourier attaches a courier to a delivery order. Reassignment to a
// different courier overrides the previous one; the status itself is not touched
// here, callers decide whether a transition to assigned should follow.
func (o *Order) AssignCourier(courierID kernel.UUID) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := courierID.Validate(); err != nil {
		return err
	}
	if o.orderType != TypeDelivery || o.deliveryInfo == nil {
		return ErrNotDeliveryOrder
	}
	if o.status.IsClosed() {
		return ErrOrderTerminal
	}

	o.deliveryInfo.CourierID = &courierID
	return nil
}

// Accept records the courier taking the order. Valid only from assigned.
func (o *Order) Accept(courierLocation kernel.Location, by string, at time.Time) error {
	if err := o.validateCourierAction(StatusAssigned); err != nil {
		return err
	}

	o.courierFlow.AcceptedAt = &at
	o.setCourierLocation(courierLocation, at)
	return nil
}

// MarkOnWay records the courier heading out. Valid from assigned or picked_up;
// from assigned the status moves to on_delivery, from picked_up it stays put.
func (o *Order) MarkOnWay(courierLocation kernel.Location, by string, at time.Time) error {
	if err := o.validateCourierAction(StatusAssigned, StatusPickedUp); err != nil {
		return err
	}

	if o.status == StatusAssigned {
		if err := o.applyTransition(StatusOnDelivery, by, "courier is on the way", at, true); err != nil {
			return err
		}
	}

	o.courierFlow.OnWayAt = &at
	o.setCourierLocation(courierLocation, at)
	return nil
}

// PickUp records the courier collecting the order at the branch. Valid only from
// ready, and gated by proximity to the branch: when the courier's reported
// position is farther than thresholdKm the order is left untouched and a
// ProximityWarning is returned instead of an error.
func (o *Order) PickUp(
	courierLocation kernel.Location,
	branchLocation kernel.Location,
	thresholdKm float64,
	by string,
	at time.Time,
) (*ProximityWarning, error) {
	if err := o.validateCourierAction(StatusReady); err != nil {
		return nil, err
	}

	distance, err := courierLocation.DistanceKm(branchLocation)
	if err != nil {
		return nil, err
	}
	if distance > thresholdKm {
		return &ProximityWarning{DistanceKm: distance, ThresholdKm: thresholdKm}, nil
	}

	if err = o.applyTransition(StatusPickedUp, by, "courier picked up the order", at, true); err != nil {
		return nil, err
	}

	o.courierFlow.PickedUpAt = &at
	o.courierFlow.PickedUpLocation = &courierLocation
	o.setCourierLocation(courierLocation, at)
	return nil, nil
}

// Deliver records the hand-over to the customer. Valid from picked_up or
// on_delivery, and gated by proximity to the delivery destination with the same
// soft-warning semantics as PickUp.
func (o *Order) Deliver(
	courierLocation kernel.Location,
	thresholdKm float64,
	by string,
	at time.Time,
) (*ProximityWarning, error) {
	if err := o.validateCourierAction(StatusPickedUp, StatusOnDelivery); err != nil {
		return nil, err
	}

	distance, err := courierLocation.DistanceKm(o.deliveryInfo.Location)
	if err != nil {
		return nil, err
	}
	if distance > thresholdKm {
		return &ProximityWarning{DistanceKm: distance, ThresholdKm: thresholdKm}, nil
	}

	if err = o.applyTransition(StatusDelivered, by, "order delivered to the customer", at, true); err != nil {
		return nil, err
	}

	o.courierFlow.DeliveredAt = &at
	o.courierFlow.DeliveredLocation = &courierLocation
	o.setCourierLocation(courierLocation, at)
	return nil, nil
}

// CancelByCourier aborts the delivery. Valid from assigned, picked_up or
// on_delivery. The courier is detached before the order moves to cancelled, so a
// cancelled order never keeps a courier reference.
func (o *Order) CancelByCourier(reason string, by string, at time.Time) error {
	if err := o.validateCourierAction(StatusAssigned, StatusPickedUp, StatusOnDelivery); err != nil {
		return err
	}

	o.deliveryInfo.CourierID = nil
	o.courierFlow.CancelledAt = &at
	o.courierFlow.CancelReason = reason

	message := "delivery cancelled by courier"
	if reason != "" {
		message = message + ": " + reason
	}
	return o.applyTransition(StatusCancelled, by, message, at, true)
}

// UpdateCourierLocation refreshes the courier's live position. Valid at any time
// while a courier is assigned; never touches the status or the history.
func (o *Order) UpdateCourierLocation(courierLocation kernel.Location, at time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.orderType != TypeDelivery || o.deliveryInfo == nil {
		return ErrNotDeliveryOrder
	}
	if o.deliveryInfo.CourierID == nil {
		return ErrCourierRequired
	}
	if err := courierLocation.Validate(); err != nil {
		return err
	}

	o.setCourierLocation(courierLocation, at)
	return nil
}

// ConfirmArrival records the customer-arrived event for dine-in and table
// orders. The fact lives in the history as an event entry; it does not change
// the order status but unlocks the delivered transition. Confirming twice is a
// no-op.
func (o *Order) ConfirmArrival(by string, at time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if !o.orderType.IsDineIn() {
		return errs.NewValueIsInvalidErrorWithCause(
			"orderType", fmt.Errorf("%q orders have no customer arrival", string(o.orderType)))
	}
	if o.HasCustomerArrived() {
		return nil
	}

	if o.dineInInfo == nil {
		o.dineInInfo = &DineInInfo{}
	}
	o.dineInInfo.ArrivalTime = &at

	o.history = append(o.history, HistoryEntry{
		Status:    EventCustomerArrived,
		Message:   "customer arrived",
		Timestamp: at,
		UpdatedBy: by,
	})
	return nil
}

// HasCustomerArrived reports whether the customer-arrived event is present in
// the status history.
func (o *Order) HasCustomerArrived() bool {
	for _, entry := range o.history {
		if entry.Status == EventCustomerArrived {
			return true
		}
	}
	return false
}

// applyTransition validates and applies one status transition. byCourier marks
// transitions that originate from the courier actions, which are the only path
// allowed to set delivered on delivery orders.
func (o *Order) applyTransition(target Status, updatedBy string, note string, at time.Time, byCourier bool) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return fmt.Errorf("%w: no transitions from %q", ErrInvalidStatus, o.status)
	}
	if o.status == StatusDelivered && target != StatusCompleted {
		return fmt.Errorf("%w: only %q may follow %q", ErrInvalidStatus, StatusCompleted, StatusDelivered)
	}

	if o.orderType == TypeDelivery {
		if (target == StatusOnDelivery || target == StatusDelivered) && o.CourierID() == nil {
			return ErrCourierRequired
		}
		if target == StatusDelivered && !byCourier {
			return ErrCourierOnlyTransition
		}
		if target == StatusCompleted && o.status != StatusDelivered {
			return ErrPrematureCompletion
		}
	}

	if o.orderType.IsDineIn() && target == StatusDelivered && !o.HasCustomerArrived() {
		return ErrArrivalNotConfirmed
	}

	o.status = target
	o.history = append(o.history, HistoryEntry{
		Status:    target,
		Message:   note,
		Timestamp: at,
		UpdatedBy: updatedBy,
	})
	return nil
}

// validateCourierAction checks the shared preconditions of every courier action:
// a constructed delivery order with an assigned courier, currently in one of the
// allowed statuses.
func (o *Order) validateCourierAction(allowed ...Status) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.orderType != TypeDelivery || o.deliveryInfo == nil {
		return ErrNotDeliveryOrder
	}
	if o.deliveryInfo.CourierID == nil {
		return ErrCourierRequired
	}

	for _, status := range allowed {
		if o.status == status {
			return nil
		}
	}
	return fmt.Errorf("%w: action is not allowed from %q", ErrInvalidStatus, o.status)
}

func (o *Order) setCourierLocation(location kernel.Location, at time.Time) {
	o.courierFlow.CurrentLocation = &location
	o.courierFlow.CurrentLocationAt = &at
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setType(orderType Type) error {
	if err := orderType.Validate(); err != nil {
		return err
	}
	o.orderType = orderType
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = append([]Item(nil), items...)
	return nil
}
