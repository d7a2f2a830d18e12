package handler_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"taskboard/internal/handler"
)

func TestHealth(t *testing.T) {
	r := newEngine()
	h := handler.NewHealthHandler(func(context.Context) error { return nil })
	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)

	w, _ := doJSON(t, r, http.MethodGet, "/health", nil)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w, _ = doJSON(t, r, http.MethodGet, "/ready", nil)
	assert.JSONEq(t, `{"status":"ready"}`, w.Body.String())
}

func TestReady_DatabaseDown(t *testing.T) {
	r := newEngine()
	h := handler.NewHealthHandler(func(context.Context) error { return errors.New("dial tcp: refused") })
	r.GET("/ready", h.Ready)

	w, env := doJSON(t, r, http.MethodGet, "/ready", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "BACKEND_UNAVAILABLE", env.Error)
	assert.Equal(t, "dial tcp: refused", env.Details)
}

func TestMethodNotAllowedAndNotFound(t *testing.T) {
	r := newEngine()
	r.HandleMethodNotAllowed = true
	r.NoMethod(handler.MethodNotAllowed)
	r.NoRoute(handler.NotFound)
	r.GET("/tasks", func(c *gin.Context) {})

	w, env := doJSON(t, r, http.MethodPatch, "/tasks", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "UNSUPPORTED_METHOD", env.Error)

	w, env = doJSON(t, r, http.MethodGet, "/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "RESOURCE_NOT_FOUND", env.Error)
}
