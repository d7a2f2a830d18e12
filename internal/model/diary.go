package model

import (
	"time"

	"gorm.io/datatypes"
)

// Diary is unique per (user_id, diary_date); saving the same day again updates it.
type Diary struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	UserID            string         `gorm:"type:varchar(255);not null;uniqueIndex:idx_diaries_user_date,priority:1;index:idx_diaries_user_created,priority:1" json:"user_id"`
	UserEmail         string         `gorm:"type:varchar(255);not null" json:"user_email"`
	DiaryDate         datatypes.Date `gorm:"not null;uniqueIndex:idx_diaries_user_date,priority:2" json:"diary_date"`
	ExerciseCompleted bool           `gorm:"not null;default:false" json:"exercise_completed"`
	EmotionDiary      *string        `gorm:"type:text" json:"emotion_diary"`
	GrowthDiary       *string        `gorm:"type:text" json:"growth_diary"`
	CreatedAt         time.Time      `gorm:"index:idx_diaries_user_created,priority:2,sort:desc" json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}
