// Package payment models receipts: the payment record created once per order right after the
// order itself, its method and status enums, and the fixed tax policy used to compute the
// figures sent with it.
package payment
