package model

// User represents a registered account as stored in the `users`
// table. Email is unique at the database level; the repository maps
// the duplicate-key violation to a dedicated error so the service can
// report a conflict instead of a generic failure.
//
// Fields:
//  ID    – primary key identifier.
//  Name  – display name.
//  Email – unique email address.
type User struct {
	ID    int64  `json:"id"`    // users.id
	Name  string `json:"name"`  // users.name
	Email string `json:"email"` // users.email
}

// UserPatch carries a partial user update. Only non-nil fields are
// applied; absent fields leave the stored value untouched.
type UserPatch struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}
