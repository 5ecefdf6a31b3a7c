// Package domain defines the persistent data structures of the application.
package domain

import "time"

// User represents a registered account. Usernames are unique at the storage
// layer; accounts are never mutated or deleted after registration.
type User struct {
	ID        uint      `gorm:"primaryKey"`
	Username  string    `gorm:"type:varchar(50);uniqueIndex:idx_username;not null"`
	Password  string    `gorm:"type:varchar(200);not null"` // bcrypt hash, never plaintext
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
