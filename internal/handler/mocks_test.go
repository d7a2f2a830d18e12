package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"taskboard/internal/metrics"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) List(ctx context.Context) ([]model.Task, error) {
	args := m.Called(ctx)
	tasks, _ := args.Get(0).([]model.Task)
	return tasks, args.Error(1)
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id uint) (*model.Task, error) {
	args := m.Called(ctx, id)
	task, _ := args.Get(0).(*model.Task)
	return task, args.Error(1)
}

func (m *MockTaskRepository) Create(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Update(ctx context.Context, id uint, patch repository.TaskPatch) (*model.Task, error) {
	args := m.Called(ctx, id, patch)
	task, _ := args.Get(0).(*model.Task)
	return task, args.Error(1)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaskRepository) Stats(ctx context.Context) (*model.TaskStats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(*model.TaskStats)
	return stats, args.Error(1)
}

type MockTodoRepository struct {
	mock.Mock
}

func (m *MockTodoRepository) ListByUser(ctx context.Context, userID string) ([]model.Todo, error) {
	args := m.Called(ctx, userID)
	todos, _ := args.Get(0).([]model.Todo)
	return todos, args.Error(1)
}

func (m *MockTodoRepository) Create(ctx context.Context, todo *model.Todo) error {
	args := m.Called(ctx, todo)
	return args.Error(0)
}

func (m *MockTodoRepository) Update(ctx context.Context, id uint, actorID string, patch repository.TodoPatch) (*model.Todo, error) {
	args := m.Called(ctx, id, actorID, patch)
	todo, _ := args.Get(0).(*model.Todo)
	return todo, args.Error(1)
}

func (m *MockTodoRepository) Delete(ctx context.Context, id uint, actorID string) error {
	args := m.Called(ctx, id, actorID)
	return args.Error(0)
}

type MockBoardRepository struct {
	mock.Mock
}

func (m *MockBoardRepository) List(ctx context.Context, filter repository.BoardFilter) ([]model.BoardPostSummary, int64, error) {
	args := m.Called(ctx, filter)
	posts, _ := args.Get(0).([]model.BoardPostSummary)
	return posts, args.Get(1).(int64), args.Error(2)
}

func (m *MockBoardRepository) GetByID(ctx context.Context, id uint) (*model.BoardPost, error) {
	args := m.Called(ctx, id)
	post, _ := args.Get(0).(*model.BoardPost)
	return post, args.Error(1)
}

func (m *MockBoardRepository) Create(ctx context.Context, post *model.BoardPost) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockBoardRepository) Update(ctx context.Context, id uint, actorID string, patch repository.PostPatch) (*model.BoardPost, error) {
	args := m.Called(ctx, id, actorID, patch)
	post, _ := args.Get(0).(*model.BoardPost)
	return post, args.Error(1)
}

func (m *MockBoardRepository) Delete(ctx context.Context, id uint, actorID string) error {
	args := m.Called(ctx, id, actorID)
	return args.Error(0)
}

func (m *MockBoardRepository) IncrementViews(ctx context.Context, id uint) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *MockBoardRepository) ToggleLike(ctx context.Context, postID uint, userID string) (*repository.LikeResult, error) {
	args := m.Called(ctx, postID, userID)
	res, _ := args.Get(0).(*repository.LikeResult)
	return res, args.Error(1)
}

func (m *MockBoardRepository) ListComments(ctx context.Context, postID uint) ([]model.BoardComment, error) {
	args := m.Called(ctx, postID)
	comments, _ := args.Get(0).([]model.BoardComment)
	return comments, args.Error(1)
}

func (m *MockBoardRepository) AddComment(ctx context.Context, comment *model.BoardComment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockBoardRepository) DeleteComment(ctx context.Context, postID, commentID uint, actorID string) error {
	args := m.Called(ctx, postID, commentID, actorID)
	return args.Error(0)
}

func (m *MockBoardRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockDiaryRepository struct {
	mock.Mock
}

func (m *MockDiaryRepository) Upsert(ctx context.Context, diary *model.Diary) (*model.Diary, error) {
	args := m.Called(ctx, diary)
	d, _ := args.Get(0).(*model.Diary)
	return d, args.Error(1)
}

func (m *MockDiaryRepository) GetByDate(ctx context.Context, userID string, date time.Time) (*model.Diary, error) {
	args := m.Called(ctx, userID, date)
	d, _ := args.Get(0).(*model.Diary)
	return d, args.Error(1)
}

func (m *MockDiaryRepository) ListRecent(ctx context.Context, userID string, limit int) ([]model.Diary, error) {
	args := m.Called(ctx, userID, limit)
	d, _ := args.Get(0).([]model.Diary)
	return d, args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Upsert(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func testMetrics() *metrics.Metrics {
	return metrics.NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())
}

// envelope mirrors the response body for assertions.
type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Pagination *struct {
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		Total      int64 `json:"total"`
		TotalPages int   `json:"totalPages"`
	} `json:"pagination"`
	Error   string `json:"error"`
	Details string `json:"details"`
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func ptr[T any](v T) *T { return &v }
