package model

import "time"

// Comment is feedback left on an item, as stored in the `comments`
// table. Only a user with a finished APPROVED booking of the item
// may comment; the service enforces that rule, the model just holds
// the row. AuthorName is joined in at query time for responses.
type Comment struct {
	ID         int64     `json:"id"`         // comments.id
	Text       string    `json:"text"`       // comments.text
	ItemID     int64     `json:"itemId"`     // comments.item_id
	AuthorID   int64     `json:"authorId"`   // comments.author_id
	AuthorName string    `json:"authorName"` // users.name (joined)
	Created    time.Time `json:"created"`    // comments.created
}
