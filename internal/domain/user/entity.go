package user

import "time"

// User represents a user entity in the system.
type User struct {
	ID        string    // ID is assigned by the store on insertion
	Name      string    // Name is the display name of the user
	Email     string    // Email is optional and defaults to ""
	CreatedAt time.Time // CreatedAt is stamped once on creation
	UpdatedAt time.Time // UpdatedAt is re-stamped on every update
}
