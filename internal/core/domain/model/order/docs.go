// Package order provides domain entities and business logic for order lifecycle
// management. It implements the Order aggregate root with a type-specific status
// state machine, an append-only status history and the courier delivery flow.
//
// The package includes:
//   - Order: The aggregate root owning status, history, items and delivery data
//   - Status: The fixed status vocabulary with transition predicates
//   - Item: An order line with derived line total
//
// Key business rules:
//   - Delivery orders cannot enter on_delivery or delivered without a courier
//   - Delivered on a delivery order can only be set through courier actions,
//     which are gated by proximity to the branch (pickup) or customer (deliver)
//   - Delivery orders complete only after delivered
//   - Dine-in and table orders reach delivered only after the customer-arrived
//     event was recorded in the history
//   - Every accepted transition appends exactly one history entry; the history
//     is never mutated or reordered
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
