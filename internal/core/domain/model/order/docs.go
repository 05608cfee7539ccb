// Package order provides the terminal's view of server-owned orders and the order lifecycle
// state machine.
//
// The package includes:
//   - Order: a read-only snapshot of an order as returned by the remote API
//   - Status: the lifecycle states and the role-gated transition table
//
// Key business rules:
//   - PENDING is the only initial status; DELIVERED and CANCELLED are terminal
//   - kitchen staff (Chef) move orders PENDING -> PREPARING -> READY
//   - front-of-house staff (Cashier) hand over PENDING or READY orders
//   - both may cancel any non-terminal order
//   - a transition that is not in the table is rejected before any remote call
package order
