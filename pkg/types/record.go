package types

import (
	"errors"
	"time"
)

// Record is one row of an entity directory. Values are keyed by field ID;
// user fields hold the owner's numeric user ID.
type Record struct {
	ID        int64          `json:"id"`
	Entity    EntityKey      `json:"entity"`
	Values    map[string]any `json:"values"`
	Favorite  bool           `json:"favorite,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// User is a teammate records can be assigned to.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// DisplayName returns "First Last", falling back to the email address.
func (u User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	}
	return u.Email
}

// Record errors.
var (
	ErrRecordNotFound = errors.New("record not found")
	ErrInvalidRecord  = errors.New("invalid record")
	ErrUserNotFound   = errors.New("user not found")
)
