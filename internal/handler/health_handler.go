package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard/internal/response"
)

type HealthHandler struct {
	ping func(ctx context.Context) error
}

func NewHealthHandler(ping func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{ping: ping}
}

func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reports whether the database answers a ping.
func (h *HealthHandler) Ready(c *gin.Context) {
	if err := h.ping(c.Request.Context()); err != nil {
		response.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// MethodNotAllowed answers a known path requested with an unsupported method.
func MethodNotAllowed(c *gin.Context) {
	response.Fail(c, &response.AppError{
		Kind:    response.KindMethodNotAllowed,
		Message: "method " + c.Request.Method + " not allowed",
	})
}

// NotFound answers an unknown path.
func NotFound(c *gin.Context) {
	response.Fail(c, response.NotFound("route"))
}
