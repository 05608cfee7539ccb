// Package cart holds the staged, pre-commitment collection of menu items a terminal user is
// about to order.
//
// Adding an item already in the cart increases that line's quantity instead of adding a second
// line. Quantities never drop below one: setting a quantity to zero or less removes the line.
// Totals are recomputed from the lines on every call.
package cart
