package model

// Item is a shareable object listed by an owner, as stored in the
// `items` table. RequestID is set when the item was created to
// fulfil an item request and is null otherwise.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – short item name.
//  Description – free-form description.
//  Available   – whether the item can currently be booked.
//  OwnerID     – user who listed the item.
//  RequestID   – item request this item fulfils (nullable).
type Item struct {
	ID          int64  `json:"id"`          // items.id
	Name        string `json:"name"`        // items.name
	Description string `json:"description"` // items.description
	Available   bool   `json:"available"`   // items.available
	OwnerID     int64  `json:"ownerId"`     // items.owner_id
	RequestID   *int64 `json:"requestId,omitempty"` // items.request_id (nullable)
}

// ItemPatch carries a partial item update applied by the owner.
// Only non-nil fields are written.
type ItemPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

// BookingRef is the compact booking reference attached to an item
// when its owner views it: the id of the booking and who booked.
type BookingRef struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

// ItemDetails is an item enriched at query time. LastBooking is the
// most recent past APPROVED booking and NextBooking the nearest
// future one; both are attached only when the viewer owns the item.
type ItemDetails struct {
	Item
	LastBooking *BookingRef `json:"lastBooking,omitempty"`
	NextBooking *BookingRef `json:"nextBooking,omitempty"`
	Comments    []Comment   `json:"comments"`
}
