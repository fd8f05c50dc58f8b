package main

import "time"

// Task statuses. The set is fixed; anything else is rejected at the handler.
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

func validStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// User is the persisted auth user record. The password hash is never
// serialized; auth.go only ever returns messages and tokens to the client.
type User struct {
	ID           string    `gorm:"primaryKey;type:text" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:64;not null" json:"username"`
	PasswordHash string    `gorm:"size:72;not null" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// Todo is both the persisted record and the wire shape. IDs are app-generated
// 24-hex-char strings (see newID), so route params can be shape-checked before
// the store is touched.
type Todo struct {
	ID          string    `gorm:"primaryKey;type:text" json:"id"`
	Title       string    `gorm:"type:text;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Status      string    `gorm:"type:text;not null;default:pending" json:"status"`
	UserID      string    `gorm:"index;type:text;not null" json:"user"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Todo) TableName() string { return "todos" }
