package models

import "time"

// Priority is the ordinal urgency tag of a notification.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Category classifies a notification for filtering and display.
type Category string

const (
	CategoryGeneral     Category = "general"
	CategoryAcademic    Category = "academic"
	CategoryAdmission   Category = "admission"
	CategoryExam        Category = "exam"
	CategoryRecruitment Category = "recruitment"
	CategoryEvent       Category = "event"
)

// Status marks a notification as visible or retired.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// ValidPriorities lists the accepted priority values.
var ValidPriorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// ValidCategories lists the accepted category values.
var ValidCategories = []Category{
	CategoryGeneral, CategoryAcademic, CategoryAdmission,
	CategoryExam, CategoryRecruitment, CategoryEvent,
}

// IsValidPriority reports whether p is an accepted priority value.
func IsValidPriority(p Priority) bool {
	for _, v := range ValidPriorities {
		if v == p {
			return true
		}
	}
	return false
}

// IsValidCategory reports whether c is an accepted category value.
func IsValidCategory(c Category) bool {
	for _, v := range ValidCategories {
		if v == c {
			return true
		}
	}
	return false
}

// PriorityColor returns the display color tag for a priority.
func PriorityColor(p Priority) string {
	switch p {
	case PriorityLow:
		return "secondary"
	case PriorityHigh:
		return "warning"
	case PriorityUrgent:
		return "danger"
	default:
		return "primary"
	}
}

// PriorityRank orders priorities for public listings (urgent first).
func PriorityRank(p Priority) int {
	switch p {
	case PriorityUrgent:
		return 1
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 3
	default:
		return 4
	}
}

// Notification is an admin-authored announcement with optional attachments.
type Notification struct {
	ID          int64      `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Priority    Priority   `json:"priority" db:"priority"`
	Category    Category   `json:"category" db:"category"`
	ValidUntil  *time.Time `json:"validUntil,omitempty" db:"valid_until"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	CreatedBy   string     `json:"createdBy" db:"created_by"`
	FolderPath  string     `json:"folderPath" db:"folder_path"`
	Status      Status     `json:"status" db:"status"`
}

// IsExpired reports whether the validity window has passed relative to today.
func (n *Notification) IsExpired(today time.Time) bool {
	if n.ValidUntil == nil {
		return false
	}
	y, m, d := today.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, today.Location())
	return n.ValidUntil.Before(dayStart)
}
