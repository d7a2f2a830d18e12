package handler

import (
	"github.com/gin-gonic/gin"

	"taskboard/internal/metrics"
	"taskboard/internal/model"
	"taskboard/internal/repository"
	"taskboard/internal/response"
)

type TodoHandler struct {
	repo    repository.TodoRepositoryInterface
	metrics *metrics.Metrics
}

func NewTodoHandler(repo repository.TodoRepositoryInterface, m *metrics.Metrics) *TodoHandler {
	registerValidation()
	return &TodoHandler{repo: repo, metrics: m}
}

type TodoOwnerQuery struct {
	UserID string `form:"user_id" binding:"required"`
}

type CreateTodoRequest struct {
	Text     string `json:"text" binding:"required"`
	UserID   string `json:"user_id" binding:"required"`
	Priority string `json:"priority" binding:"omitempty,oneof=low medium high"`
}

type UpdateTodoRequest struct {
	UserID      string  `json:"user_id" binding:"required"`
	Text        *string `json:"text" binding:"omitempty,min=1"`
	Priority    *string `json:"priority" binding:"omitempty,oneof=low medium high"`
	IsCompleted *bool   `json:"is_completed"`
}

// List godoc
// @Summary      List a user's todos
// @Tags         todos
// @Produce      json
// @Param        user_id query string true "Owner"
// @Success      200 {object} response.Envelope{data=[]model.Todo}
// @Failure      400 {object} response.Envelope
// @Router       /todos [get]
func (h *TodoHandler) List(c *gin.Context) {
	var q TodoOwnerQuery
	if !bindQuery(c, &q) {
		return
	}

	todos, err := h.repo.ListByUser(c.Request.Context(), q.UserID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, "", todos)
}

func (h *TodoHandler) Create(c *gin.Context) {
	var req CreateTodoRequest
	if !bindJSON(c, &req) {
		return
	}

	todo := &model.Todo{Text: req.Text, UserID: req.UserID, Priority: req.Priority}
	if err := h.repo.Create(c.Request.Context(), todo); err != nil {
		response.Fail(c, err)
		return
	}

	h.metrics.IncrementTodoCreated()
	response.Created(c, "todo created", todo)
}

// Update changes a todo owned by user_id; other callers get 403.
func (h *TodoHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateTodoRequest
	if !bindJSON(c, &req) {
		return
	}

	todo, err := h.repo.Update(c.Request.Context(), id, req.UserID, repository.TodoPatch{
		Text:        req.Text,
		Priority:    req.Priority,
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, "todo updated", todo)
}

func (h *TodoHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var q TodoOwnerQuery
	if !bindQuery(c, &q) {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id, q.UserID); err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, "todo deleted", nil)
}
