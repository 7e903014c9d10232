// Package user holds the persisted identity model and its stores.
//
// The store is the only shared resource on the hot authentication path: it
// is read on every authenticated request and must stay cheap and safe for
// concurrent lookups.
package user

import "time"

// DefaultRole is assigned to identities registered without an explicit role.
const DefaultRole = "USER"

// User is a persisted identity capable of authenticating. The password
// digest never serializes outward.
type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Name         string    `gorm:"not null;size:255" json:"name"`
	PasswordHash string    `gorm:"column:password;not null" json:"-"`
	Role         string    `gorm:"not null;default:USER" json:"role"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

// TableName maps the model onto the historical USERS table.
func (User) TableName() string { return "users" }
