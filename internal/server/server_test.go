package server_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"taskboard/internal/metrics"
	"taskboard/internal/model"
	"taskboard/internal/server"
	"taskboard/internal/testutil"
	"taskboard/internal/view"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func setupServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.NewSQLiteDB(t)
	m := metrics.NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())
	return server.NewRouter(db, zap.NewNop(), m, time.UTC)
}

func call(t *testing.T, r http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func TestTaskLifecycle(t *testing.T) {
	r := setupServer(t)

	w, env := call(t, r, http.MethodPost, "/tasks", map[string]interface{}{
		"assignee": "A", "task_name": "T", "deadline": "2024-05-01", "user_id": "u1",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var task model.Task
	require.NoError(t, json.Unmarshal(env.Data, &task))
	assert.False(t, task.IsCompleted)
	assert.Equal(t, "2024-05-01", task.DeadlineTime().Format("2006-01-02"))

	path := fmt.Sprintf("/tasks/%d", task.ID)
	w, env = call(t, r, http.MethodPut, path, map[string]interface{}{"is_completed": true})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &task))
	assert.True(t, task.IsCompleted)
	assert.Equal(t, "T", task.TaskName)

	w, env = call(t, r, http.MethodGet, "/tasks/view?tab=completed&date=2024-05-15", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var result view.Result
	require.NoError(t, json.Unmarshal(env.Data, &result))
	require.Len(t, result.Tasks, 1)
	assert.Equal(t, task.ID, result.Tasks[0].ID)

	w, env = call(t, r, http.MethodGet, "/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats model.TaskStats
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, int64(1), stats.Completed)
	assert.Equal(t, int64(0), stats.Pending)

	w, _ = call(t, r, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = call(t, r, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "RESOURCE_NOT_FOUND", env.Error)

	w, env = call(t, r, http.MethodGet, "/tasks", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestLikeToggleTwice(t *testing.T) {
	r := setupServer(t)

	w, env := call(t, r, http.MethodPost, "/board", map[string]interface{}{
		"title": "hello", "content": "world", "category": "free", "author_name": "kim", "author_id": "u1",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var post model.BoardPost
	require.NoError(t, json.Unmarshal(env.Data, &post))

	type likeBody struct {
		Success    bool `json:"success"`
		Liked      bool `json:"liked"`
		LikesCount int  `json:"likes_count"`
	}
	likePath := fmt.Sprintf("/board/like/%d", post.ID)

	for _, want := range []likeBody{{true, true, 1}, {true, false, 0}} {
		w, _ = call(t, r, http.MethodPost, likePath, map[string]string{"user_id": "u2"})
		require.Equal(t, http.StatusOK, w.Code)
		var got likeBody
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, want, got)
	}

	w, env = call(t, r, http.MethodPut, fmt.Sprintf("/board/view/%d", post.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"views_count":1}`, string(env.Data))

	w, env = call(t, r, http.MethodPost, "/board/like/9999", map[string]string{"user_id": "u2"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "RESOURCE_NOT_FOUND", env.Error)
}

func TestTodoOwnerGuard(t *testing.T) {
	r := setupServer(t)

	w, env := call(t, r, http.MethodPost, "/todos", map[string]string{"text": "mine", "user_id": "owner"})
	require.Equal(t, http.StatusCreated, w.Code)
	var todo model.Todo
	require.NoError(t, json.Unmarshal(env.Data, &todo))
	assert.Equal(t, model.PriorityMedium, todo.Priority)

	w, env = call(t, r, http.MethodPut, fmt.Sprintf("/todos/%d", todo.ID), map[string]interface{}{
		"user_id": "intruder", "is_completed": true,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN_OWNER_MISMATCH", env.Error)

	w, env = call(t, r, http.MethodGet, "/todos?user_id=owner", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var todos []model.Todo
	require.NoError(t, json.Unmarshal(env.Data, &todos))
	require.Len(t, todos, 1)
	assert.False(t, todos[0].IsCompleted)
}

func TestDiarySaveTwiceSameDay(t *testing.T) {
	r := setupServer(t)
	body := map[string]interface{}{
		"user_id": "u1", "user_email": "u1@example.com", "diary_date": "2024-05-15", "growth_diary": "v1",
	}

	w, _ := call(t, r, http.MethodPost, "/diary", body)
	require.Equal(t, http.StatusOK, w.Code)
	body["growth_diary"] = "v2"
	w, _ = call(t, r, http.MethodPost, "/diary", body)
	require.Equal(t, http.StatusOK, w.Code)

	w, env := call(t, r, http.MethodGet, "/diary?user_id=u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var diaries []model.Diary
	require.NoError(t, json.Unmarshal(env.Data, &diaries))
	require.Len(t, diaries, 1)
	require.NotNil(t, diaries[0].GrowthDiary)
	assert.Equal(t, "v2", *diaries[0].GrowthDiary)

	w, env = call(t, r, http.MethodGet, "/diary?user_id=u1&date=2024-05-16", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", string(env.Data))
}

func TestPreflightAndUnsupportedMethod(t *testing.T) {
	r := setupServer(t)

	w, _ := call(t, r, http.MethodOptions, "/tasks", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w, env := call(t, r, http.MethodPatch, "/tasks", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "UNSUPPORTED_METHOD", env.Error)
	assert.Equal(t, "null", string(env.Data))
}

func TestHealthEndpoints(t *testing.T) {
	r := setupServer(t)

	w, _ := call(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w, _ = call(t, r, http.MethodGet, "/ready", nil)
	assert.JSONEq(t, `{"status":"ready"}`, w.Body.String())

	w, _ = call(t, r, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
