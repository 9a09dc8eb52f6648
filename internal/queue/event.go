// Package queue defines message payloads exchanged over the message
// broker plus the publisher and consumer for booking events.
package queue

// BookingApprovedEvent is published when an owner approves a
// booking. It carries enough information for downstream consumers to
// log or notify without querying the primary database.
type BookingApprovedEvent struct {
	BookingID  int64  `json:"booking_id"`
	ItemID     int64  `json:"item_id"`
	ItemName   string `json:"item_name"`
	OwnerID    int64  `json:"owner_id"`
	BookerID   int64  `json:"booker_id"`
	Start      string `json:"start"`
	End        string `json:"end"`
	ApprovedAt string `json:"approved_at"`
}
