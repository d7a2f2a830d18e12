package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"taskboard/internal/metrics"
	"taskboard/internal/model"
	"taskboard/internal/repository"
	"taskboard/internal/response"
	"taskboard/internal/view"
)

type TaskHandler struct {
	repo    repository.TaskRepositoryInterface
	metrics *metrics.Metrics
	loc     *time.Location
	now     func() time.Time
}

func NewTaskHandler(repo repository.TaskRepositoryInterface, m *metrics.Metrics, loc *time.Location) *TaskHandler {
	registerValidation()
	return &TaskHandler{repo: repo, metrics: m, loc: loc, now: time.Now}
}

// CreateTaskRequest is the body of POST /tasks.
type CreateTaskRequest struct {
	Assignee         string  `json:"assignee" binding:"required,max=100"`
	TaskName         string  `json:"task_name" binding:"required,max=200"`
	Deadline         string  `json:"deadline" binding:"required,datetime=2006-01-02"`
	UserID           string  `json:"user_id" binding:"required"`
	IsUrgent         bool    `json:"is_urgent"`
	SubmissionTarget *string `json:"submission_target" binding:"omitempty,max=100"`
	Notes            *string `json:"notes"`
}

// UpdateTaskRequest is the body of PUT /tasks/{id}. Omitted fields are left unchanged.
type UpdateTaskRequest struct {
	Assignee         *string `json:"assignee" binding:"omitempty,min=1,max=100"`
	TaskName         *string `json:"task_name" binding:"omitempty,min=1,max=200"`
	IsUrgent         *bool   `json:"is_urgent"`
	IsCompleted      *bool   `json:"is_completed"`
	Deadline         *string `json:"deadline" binding:"omitempty,datetime=2006-01-02"`
	SubmissionTarget *string `json:"submission_target" binding:"omitempty,max=100"`
	Notes            *string `json:"notes"`
}

type TaskViewQuery struct {
	Tab      string `form:"tab"`
	Assignee string `form:"assignee"`
	Month    string `form:"month" binding:"omitempty,datetime=2006-01"`
	Date     string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

// List godoc
// @Summary      List tasks
// @Description  Returns every task, urgent first, newest first
// @Tags         tasks
// @Produce      json
// @Success      200 {object} response.Envelope{data=[]model.Task}
// @Failure      500 {object} response.Envelope
// @Router       /tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.repo.List(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, "", tasks)
}

// Create godoc
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        request body CreateTaskRequest true "New task"
// @Success      201 {object} response.Envelope{data=model.Task}
// @Failure      400 {object} response.Envelope
// @Failure      500 {object} response.Envelope
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	deadline, err := parseDate(req.Deadline)
	if err != nil {
		response.Fail(c, response.Invalid("deadline", "expected YYYY-MM-DD"))
		return
	}

	task := &model.Task{
		Assignee:         req.Assignee,
		TaskName:         req.TaskName,
		IsUrgent:         req.IsUrgent,
		Deadline:         &deadline,
		SubmissionTarget: req.SubmissionTarget,
		Notes:            req.Notes,
		UserID:           req.UserID,
	}
	if err := h.repo.Create(c.Request.Context(), task); err != nil {
		response.Fail(c, err)
		return
	}

	h.metrics.IncrementTaskCreated()
	response.Created(c, "task created", task)
}

// Update godoc
// @Summary      Update a task
// @Description  Partial update; only the supplied fields change
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id      path int               true "Task ID"
// @Param        request body UpdateTaskRequest true "Fields to change"
// @Success      200 {object} response.Envelope{data=model.Task}
// @Failure      400 {object} response.Envelope
// @Failure      404 {object} response.Envelope
// @Failure      500 {object} response.Envelope
// @Router       /tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	patch := repository.TaskPatch{
		Assignee:         req.Assignee,
		TaskName:         req.TaskName,
		IsUrgent:         req.IsUrgent,
		IsCompleted:      req.IsCompleted,
		SubmissionTarget: req.SubmissionTarget,
		Notes:            req.Notes,
	}
	if req.Deadline != nil {
		d, err := parseDate(*req.Deadline)
		if err != nil {
			response.Fail(c, response.Invalid("deadline", "expected YYYY-MM-DD"))
			return
		}
		patch.Deadline = &d
	}

	task, err := h.repo.Update(c.Request.Context(), id, patch)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, "task updated", task)
}

// Delete godoc
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Param        id path int true "Task ID"
// @Success      200 {object} response.Envelope
// @Failure      404 {object} response.Envelope
// @Failure      500 {object} response.Envelope
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, "task deleted", nil)
}

// View godoc
// @Summary      Derived task view
// @Description  Computes one dashboard tab (all, today, past, upcoming, completed, urgent, assignee, calendar) from the current task table
// @Tags         tasks
// @Produce      json
// @Param        tab      query string false "View tab" default(all)
// @Param        assignee query string false "Assignee for the assignee tab"
// @Param        month    query string false "Calendar month, YYYY-MM"
// @Param        date     query string false "Override today, YYYY-MM-DD"
// @Success      200 {object} response.Envelope{data=view.Result}
// @Failure      400 {object} response.Envelope
// @Failure      500 {object} response.Envelope
// @Router       /tasks/view [get]
func (h *TaskHandler) View(c *gin.Context) {
	var q TaskViewQuery
	if !bindQuery(c, &q) {
		return
	}

	tab, err := view.ParseTab(q.Tab)
	if err != nil || !tab.IsTaskView() {
		response.Fail(c, response.Invalid("tab", "not a task view"))
		return
	}

	today := view.CurrentDate(h.now(), h.loc)
	if q.Date != "" {
		d, err := parseDate(q.Date)
		if err != nil {
			response.Fail(c, response.Invalid("date", "expected YYYY-MM-DD"))
			return
		}
		today = view.Day(time.Time(d))
	}

	state := view.NewState(today)
	state.Tab = tab
	state.Assignee = q.Assignee
	if q.Month != "" {
		year, month, err := view.ParseMonth(q.Month)
		if err != nil {
			response.Fail(c, response.Invalid("month", "expected YYYY-MM"))
			return
		}
		state.Year, state.Month = year, month
	}

	tasks, err := h.repo.List(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}

	result, err := view.Derive(tasks, state, today)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, "", result)
}
