package repository

// Ordering names a sort policy for listing queries. Callers pass the
// policy explicitly instead of relying on a sort baked into each
// query, so the chosen order is visible at every call site.
type Ordering int

const (
	// OrderStartDesc sorts bookings by start timestamp, newest first.
	OrderStartDesc Ordering = iota
	// OrderCreatedDesc sorts item requests by creation time, newest first.
	OrderCreatedDesc
	// OrderIDAsc sorts rows by primary key, oldest first.
	OrderIDAsc
)

// clause returns the ORDER BY fragment for the policy. The column
// names are fixed per table family, so the mapping lives here rather
// than in every query constant.
func (o Ordering) clause() string {
	switch o {
	case OrderStartDesc:
		return " ORDER BY start_date DESC"
	case OrderCreatedDesc:
		return " ORDER BY created DESC"
	default:
		return " ORDER BY id ASC"
	}
}
