// Package kernel provides the value objects shared by the ordering domain model:
//   - UUID: locally generated identifiers (cart lines)
//   - Money: exact decimal amounts for prices, tax and totals
//
// Both are immutable and safe for concurrent use.
package kernel
