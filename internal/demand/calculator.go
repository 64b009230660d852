// Package demand reconciles stock, sales and in-transit datasets into a
// per-offer per-warehouse view and computes the replenishment order
// quantity for every cell.
package demand

// SafetyFactor is the fixed sales multiplier of the order formula.
const SafetyFactor = 2

// OrderQuantity is the recommended restock amount for one cell:
// max(0, SafetyFactor*sales - stock - transit). Pure, no I/O.
func OrderQuantity(stock, sales, transit int) int {
	order := SafetyFactor*sales - stock - transit
	if order < 0 {
		return 0
	}
	return order
}
