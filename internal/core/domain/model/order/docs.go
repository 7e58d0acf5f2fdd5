// Package order provides domain entities and business logic for order
// management in the grocery storefront. It implements the Order aggregate
// root with a role-gated lifecycle and a layered return/refund workflow.
//
// The package includes:
//   - Order: the aggregate root holding items, the delivery address snapshot,
//     the computed total, and both lifecycle machines
//   - Status: a state machine enforcing the order status workflow per role
//   - ReturnRequest / ReturnStatus: a secondary state machine attachable only
//     to delivered orders
//
// Key business rules:
//   - Status follows pending -> processing -> shipped -> delivered, with
//     cancelled reachable from pending, processing, or shipped
//   - The owner accepts or rejects pending orders and may override the status
//     of any order that has not reached a terminal state
//   - Customers may only cancel before delivery
//   - Delivered and cancelled are terminal; a delivered order may still
//     acquire a return request, which never changes the primary status
//   - A return request is filed at most once, with a reason from a fixed
//     vocabulary
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are
// enforced.
package order
