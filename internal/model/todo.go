package model

import "time"

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

type Todo struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Text        string    `gorm:"type:text;not null" json:"text"`
	Priority    string    `gorm:"type:varchar(10);not null;default:'medium';check:priority IN ('low','medium','high')" json:"priority"`
	IsCompleted bool      `gorm:"not null;default:false" json:"is_completed"`
	UserID      string    `gorm:"type:varchar(100);not null;index" json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ValidPriority reports whether p is one of low, medium, high.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// PriorityRank orders priorities high first.
func PriorityRank(p string) int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	}
	return 4
}
