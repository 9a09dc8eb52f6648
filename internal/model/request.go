package model

import "time"

// ItemRequest is a "wanted item" post, as stored in the
// `item_requests` table. Other users fulfil a request by creating
// an item that references it.
//
// Fields:
//  ID          – primary key identifier.
//  Description – what the requester is looking for.
//  RequesterID – user who posted the request.
//  Created     – creation timestamp.
type ItemRequest struct {
	ID          int64     `json:"id"`          // item_requests.id
	Description string    `json:"description"` // item_requests.description
	RequesterID int64     `json:"requesterId"` // item_requests.requester_id
	Created     time.Time `json:"created"`     // item_requests.created
}

// ItemRequestDetails is a request enriched at query time with the
// items that reference it. Items is never nil; a request nobody has
// fulfilled carries an empty slice.
type ItemRequestDetails struct {
	ItemRequest
	Items []Item `json:"items"`
}
