package handler

import (
	"github.com/gin-gonic/gin"

	"taskboard/internal/repository"
	"taskboard/internal/response"
)

type StatsHandler struct {
	repo repository.TaskRepositoryInterface
}

func NewStatsHandler(repo repository.TaskRepositoryInterface) *StatsHandler {
	return &StatsHandler{repo: repo}
}

// Get godoc
// @Summary      Task statistics
// @Description  Totals and per-assignee breakdown, recomputed on every call
// @Tags         stats
// @Produce      json
// @Success      200 {object} response.Envelope{data=model.TaskStats}
// @Failure      500 {object} response.Envelope
// @Router       /stats [get]
func (h *StatsHandler) Get(c *gin.Context) {
	stats, err := h.repo.Stats(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, "", stats)
}
