package model

import (
	"time"

	"gorm.io/datatypes"
)

type Task struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	Assignee         string          `gorm:"type:varchar(100);not null;index" json:"assignee"`
	TaskName         string          `gorm:"type:varchar(200);not null" json:"task_name"`
	IsUrgent         bool            `gorm:"not null;default:false" json:"is_urgent"`
	IsCompleted      bool            `gorm:"not null;default:false" json:"is_completed"`
	Deadline         *datatypes.Date `json:"deadline"`
	SubmissionTarget *string         `gorm:"type:varchar(100)" json:"submission_target"`
	Notes            *string         `gorm:"type:text" json:"notes"`
	UserID           string          `gorm:"type:varchar(100);not null" json:"user_id"`
	CreatedDate      time.Time       `gorm:"autoCreateTime" json:"created_date"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// DeadlineTime returns the deadline as a time.Time, or the zero time when unset.
func (t Task) DeadlineTime() time.Time {
	if t.Deadline == nil {
		return time.Time{}
	}
	return time.Time(*t.Deadline)
}

// AssigneeStats is one row of the per-assignee breakdown.
type AssigneeStats struct {
	Assignee       string `json:"assignee"`
	TotalTasks     int64  `json:"total_tasks"`
	CompletedTasks int64  `json:"completed_tasks"`
	UrgentTasks    int64  `json:"urgent_tasks"`
}

// TaskStats summarises the tasks table. Pending is always Total - Completed.
type TaskStats struct {
	Total     int64           `json:"total"`
	Completed int64           `json:"completed"`
	Urgent    int64           `json:"urgent"`
	Pending   int64           `json:"pending"`
	Assignees []AssigneeStats `json:"assignees"`
}
