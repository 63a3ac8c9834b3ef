package models

import "time"

// AdminRole distinguishes full admins from assistants.
type AdminRole string

const (
	RoleAdmin     AdminRole = "admin"
	RoleAssistant AdminRole = "assistant"
)

// AdminUser is an account allowed to manage the notice board.
type AdminUser struct {
	ID        int64     `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Password  string    `json:"-" db:"password"`
	FullName  string    `json:"fullName" db:"full_name"`
	Role      AdminRole `json:"role" db:"role"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
