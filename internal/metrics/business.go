package metrics

import "taskboard/internal/model"

func (m *Metrics) IncrementTaskCreated() {
	m.safeExecute("IncrementTaskCreated", func() { m.TasksCreatedTotal.Inc() })
}

func (m *Metrics) IncrementTodoCreated() {
	m.safeExecute("IncrementTodoCreated", func() { m.TodosCreatedTotal.Inc() })
}

func (m *Metrics) IncrementPostCreated() {
	m.safeExecute("IncrementPostCreated", func() { m.PostsCreatedTotal.Inc() })
}

func (m *Metrics) IncrementDiarySaved() {
	m.safeExecute("IncrementDiarySaved", func() { m.DiarySavesTotal.Inc() })
}

// RecordLikeToggle counts a toggle as "like" or "unlike" by its outcome.
func (m *Metrics) RecordLikeToggle(liked bool) {
	action := "unlike"
	if liked {
		action = "like"
	}
	m.safeExecute("RecordLikeToggle", func() {
		m.LikeTogglesTotal.WithLabelValues(action).Inc()
	})
}

// SetTaskGauges publishes the open and urgent counts from a stats snapshot.
func (m *Metrics) SetTaskGauges(stats *model.TaskStats) {
	if stats == nil {
		return
	}
	m.safeExecute("SetTaskGauges", func() {
		m.OpenTasks.Set(float64(stats.Pending))
		m.UrgentTasks.Set(float64(stats.Urgent))
	})
}

func (m *Metrics) SetPostsTotal(count int64) {
	m.safeExecute("SetPostsTotal", func() { m.PostsTotal.Set(float64(count)) })
}
