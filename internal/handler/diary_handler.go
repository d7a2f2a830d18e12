package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"taskboard/internal/metrics"
	"taskboard/internal/model"
	"taskboard/internal/repository"
	"taskboard/internal/response"
)

type DiaryHandler struct {
	repo    repository.DiaryRepositoryInterface
	metrics *metrics.Metrics
}

func NewDiaryHandler(repo repository.DiaryRepositoryInterface, m *metrics.Metrics) *DiaryHandler {
	registerValidation()
	return &DiaryHandler{repo: repo, metrics: m}
}

type DiaryQuery struct {
	UserID string `form:"user_id" binding:"required"`
	Date   string `form:"date" binding:"omitempty,datetime=2006-01-02"`
	Limit  int    `form:"limit" binding:"omitempty,min=1"`
}

type SaveDiaryRequest struct {
	UserID            string  `json:"user_id" binding:"required"`
	UserEmail         string  `json:"user_email" binding:"required"`
	DiaryDate         string  `json:"diary_date" binding:"required,datetime=2006-01-02"`
	ExerciseCompleted bool    `json:"exercise_completed"`
	EmotionDiary      *string `json:"emotion_diary"`
	GrowthDiary       *string `json:"growth_diary"`
}

// Get godoc
// @Summary      Read diaries
// @Description  With date: that day's diary, data is null when none exists. Without: the most recent entries.
// @Tags         diary
// @Produce      json
// @Param        user_id query string true  "Owner"
// @Param        date    query string false "YYYY-MM-DD"
// @Param        limit   query int    false "Number of recent entries (max 100)" default(7)
// @Success      200 {object} response.Envelope
// @Failure      400 {object} response.Envelope
// @Router       /diary [get]
func (h *DiaryHandler) Get(c *gin.Context) {
	var q DiaryQuery
	if !bindQuery(c, &q) {
		return
	}

	if q.Date != "" {
		d, err := parseDate(q.Date)
		if err != nil {
			response.Fail(c, response.Invalid("date", "expected YYYY-MM-DD"))
			return
		}
		diary, err := h.repo.GetByDate(c.Request.Context(), q.UserID, time.Time(d))
		if err != nil {
			response.Fail(c, err)
			return
		}
		if diary == nil {
			response.OK(c, "no diary for this date", nil)
			return
		}
		response.OK(c, "", diary)
		return
	}

	diaries, err := h.repo.ListRecent(c.Request.Context(), q.UserID, q.Limit)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, "", diaries)
}

// Save godoc
// @Summary      Save a diary
// @Description  Inserts the day's diary or overwrites the existing one for the same user and date
// @Tags         diary
// @Accept       json
// @Produce      json
// @Param        request body SaveDiaryRequest true "Diary"
// @Success      200 {object} response.Envelope{data=model.Diary}
// @Failure      400 {object} response.Envelope
// @Router       /diary [post]
func (h *DiaryHandler) Save(c *gin.Context) {
	var req SaveDiaryRequest
	if !bindJSON(c, &req) {
		return
	}

	d, err := parseDate(req.DiaryDate)
	if err != nil {
		response.Fail(c, response.Invalid("diary_date", "expected YYYY-MM-DD"))
		return
	}

	stored, err := h.repo.Upsert(c.Request.Context(), &model.Diary{
		UserID:            req.UserID,
		UserEmail:         req.UserEmail,
		DiaryDate:         d,
		ExerciseCompleted: req.ExerciseCompleted,
		EmotionDiary:      req.EmotionDiary,
		GrowthDiary:       req.GrowthDiary,
	})
	if err != nil {
		response.Fail(c, err)
		return
	}

	h.metrics.IncrementDiarySaved()
	response.OK(c, "diary saved", stored)
}
