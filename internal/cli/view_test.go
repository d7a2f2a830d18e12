package cli

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"taskboard/internal/model"
	"taskboard/internal/view"
)

type fakeSource struct {
	tasks []model.Task
	stats *model.TaskStats
	err   error
	calls int
}

func (f *fakeSource) ListTasks(context.Context) ([]model.Task, error) {
	f.calls++
	return f.tasks, f.err
}

func (f *fakeSource) Stats(context.Context) (*model.TaskStats, error) {
	return f.stats, f.err
}

func due(y int, m time.Month, d int) *datatypes.Date {
	v := datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
	return &v
}

func fixture() *fakeSource {
	return &fakeSource{
		tasks: []model.Task{
			{ID: 1, Assignee: "kim", TaskName: "write report", Deadline: due(2024, time.May, 15)},
			{ID: 2, Assignee: "lee", TaskName: "fix login", IsUrgent: true, Deadline: due(2024, time.May, 17)},
			{ID: 3, Assignee: "kim", TaskName: "old invoice", Deadline: due(2024, time.May, 2)},
			{ID: 4, Assignee: "lee", TaskName: "shipped", IsCompleted: true, Deadline: due(2024, time.May, 10)},
		},
		stats: &model.TaskStats{Total: 4, Completed: 1, Urgent: 1, Pending: 3},
	}
}

func TestRunView_Tabs(t *testing.T) {
	tests := []struct {
		name    string
		opts    viewOptions
		want    []string
		notWant []string
	}{
		{
			name:    "today",
			opts:    viewOptions{Tab: "today"},
			want:    []string{"Taskboard · today", "write report", "total 4"},
			notWant: []string{"fix login", "old invoice"},
		},
		{
			name:    "upcoming",
			opts:    viewOptions{Tab: "upcoming"},
			want:    []string{"fix login", "write report"},
			notWant: []string{"old invoice", "shipped"},
		},
		{
			name: "assignee groups",
			opts: viewOptions{Tab: "assignee"},
			want: []string{"kim", "lee", "2 tasks · 1 done · 1 urgent"},
		},
		{
			name: "calendar",
			opts: viewOptions{Tab: "calendar", Month: "2024-05"},
			want: []string{"May 2024", "Sun", "[15 (1)]", "due-today", "overdue", "completed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			tt.opts.Date = "2024-05-15"

			err := runView(context.Background(), &out, fixture(), tt.opts, time.UTC, zap.NewNop())

			require.NoError(t, err)
			for _, s := range tt.want {
				assert.Contains(t, out.String(), s)
			}
			for _, s := range tt.notWant {
				assert.NotContains(t, out.String(), s)
			}
		})
	}
}

func TestRunView_RejectsNonTaskTabs(t *testing.T) {
	for _, tab := range []string{"board", "todo"} {
		src := fixture()
		err := runView(context.Background(), &bytes.Buffer{}, src, viewOptions{Tab: tab}, time.UTC, zap.NewNop())
		assert.ErrorIs(t, err, view.ErrNotTaskView)
		assert.Zero(t, src.calls)
	}

	err := runView(context.Background(), &bytes.Buffer{}, fixture(), viewOptions{Tab: "weekly"}, time.UTC, zap.NewNop())
	assert.ErrorIs(t, err, view.ErrUnknownTab)
}

func TestRunView_LoadFailure(t *testing.T) {
	src := &fakeSource{err: errors.New("connection refused")}

	err := runView(context.Background(), &bytes.Buffer{}, src, viewOptions{}, time.UTC, zap.NewNop())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "load tasks")
}

func TestRunView_WatchReloadsUntilCancelled(t *testing.T) {
	src := fixture()
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Millisecond)
	defer cancel()

	err := runView(ctx, &bytes.Buffer{}, src, viewOptions{Date: "2024-05-15", Watch: true, Interval: 20 * time.Millisecond}, time.UTC, zap.NewNop())

	require.NoError(t, err)
	assert.GreaterOrEqual(t, src.calls, 2)
}

func TestViewCommand_AgainstServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/tasks":
			_, _ = w.Write([]byte(`{"success":true,"data":[{"id":1,"assignee":"kim","task_name":"prepare demo","is_urgent":true,"deadline":"2024-05-16T00:00:00Z"}]}`))
		case "/stats":
			_, _ = w.Write([]byte(`{"success":true,"data":{"total":1,"completed":0,"urgent":1,"pending":1,"assignees":[]}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", "", "view", "--api", srv.URL, "--tab", "urgent", "--date", "2024-05-15"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "prepare demo")
	assert.Contains(t, out.String(), "Taskboard · urgent")
}

func TestRootCommandTree(t *testing.T) {
	cmd := NewRootCmd()

	for _, name := range []string{"serve", "migrate", "view"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}
}
