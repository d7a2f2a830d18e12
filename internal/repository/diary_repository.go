package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskboard/internal/model"
)

const (
	DefaultDiaryLimit = 7
	MaxDiaryLimit     = 100
)

type DiaryRepositoryInterface interface {
	Upsert(ctx context.Context, diary *model.Diary) (*model.Diary, error)
	GetByDate(ctx context.Context, userID string, date time.Time) (*model.Diary, error)
	ListRecent(ctx context.Context, userID string, limit int) ([]model.Diary, error)
}

var _ DiaryRepositoryInterface = (*DiaryRepository)(nil)

type DiaryRepository struct {
	db *gorm.DB
}

func NewDiaryRepository(db *gorm.DB) *DiaryRepository {
	return &DiaryRepository{db: db}
}

// civilDate drops the clock and zone so equal calendar days compare equal.
func civilDate(t time.Time) datatypes.Date {
	y, m, d := t.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// Upsert inserts the diary or, when the user already has one for that day,
// overwrites its content. The stored row is returned.
func (r *DiaryRepository) Upsert(ctx context.Context, diary *model.Diary) (*model.Diary, error) {
	diary.DiaryDate = civilDate(time.Time(diary.DiaryDate))

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "diary_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"user_email", "exercise_completed", "emotion_diary", "growth_diary", "updated_at",
		}),
	}).Create(diary).Error
	if err != nil {
		return nil, err
	}

	stored, err := r.GetByDate(ctx, diary.UserID, time.Time(diary.DiaryDate))
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return stored, nil
}

// GetByDate returns nil, nil when the user has no diary for that day.
func (r *DiaryRepository) GetByDate(ctx context.Context, userID string, date time.Time) (*model.Diary, error) {
	var diary model.Diary
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND diary_date = ?", userID, civilDate(date)).
		First(&diary).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &diary, nil
}

func (r *DiaryRepository) ListRecent(ctx context.Context, userID string, limit int) ([]model.Diary, error) {
	if limit < 1 {
		limit = DefaultDiaryLimit
	}
	if limit > MaxDiaryLimit {
		limit = MaxDiaryLimit
	}

	diaries := []model.Diary{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("diary_date DESC").
		Limit(limit).
		Find(&diaries).Error
	return diaries, err
}
