// Package services provides domain services that work across the order and payment models.
//
// The package includes:
//   - ReceiptDeriver: derives the itemized, render-agnostic receipt of an order and its payment
//   - ComputeReceiptStats: revenue and per-method totals over completed payments
//   - ReceiptFilter and FlattenPayments: receipt list helpers used by the receipt queries
package services
