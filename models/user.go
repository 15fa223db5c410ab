package models

import (
	"time"
)

// User is the storefront account a JWT identifies. The email doubles as
// the watermark identity burned into the secure viewer overlay.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-" sql:"index"`
}

// TableName returns the database table name for the User model.
func (User) TableName() string {
	return tableName("users")
}
