package view

import (
	"sort"
	"time"

	"taskboard/internal/model"
)

const upcomingWindowDays = 7

// lessFunc orders two tasks for a given view.
type lessFunc func(a, b model.Task) bool

func urgentFirst(then lessFunc) lessFunc {
	return func(a, b model.Task) bool {
		if a.IsUrgent != b.IsUrgent {
			return a.IsUrgent
		}
		return then(a, b)
	}
}

var (
	byCreatedDesc = urgentFirst(func(a, b model.Task) bool {
		if !a.CreatedDate.Equal(b.CreatedDate) {
			return a.CreatedDate.After(b.CreatedDate)
		}
		return a.ID > b.ID
	})
	byDeadlineDesc = urgentFirst(func(a, b model.Task) bool {
		da, db := a.DeadlineTime(), b.DeadlineTime()
		if !da.Equal(db) {
			return da.After(db)
		}
		return a.ID > b.ID
	})
	byDeadlineAsc = urgentFirst(func(a, b model.Task) bool {
		da, db := a.DeadlineTime(), b.DeadlineTime()
		if !da.Equal(db) {
			return da.Before(db)
		}
		return a.ID > b.ID
	})
)

func filterSorted(tasks []model.Task, keep func(model.Task) bool, less lessFunc) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// All returns every task still open. Completed tasks live on their own tab.
func All(tasks []model.Task) []model.Task {
	return filterSorted(tasks, func(t model.Task) bool { return !t.IsCompleted }, byCreatedDesc)
}

// Today returns tasks due on today, completed or not.
func Today(tasks []model.Task, today time.Time) []model.Task {
	today = Day(today)
	return filterSorted(tasks, func(t model.Task) bool {
		d, ok := deadlineDay(t)
		return ok && d.Equal(today)
	}, byCreatedDesc)
}

// Past returns open tasks whose deadline is strictly before today.
func Past(tasks []model.Task, today time.Time) []model.Task {
	today = Day(today)
	return filterSorted(tasks, func(t model.Task) bool {
		d, ok := deadlineDay(t)
		return ok && !t.IsCompleted && d.Before(today)
	}, byDeadlineDesc)
}

// Upcoming returns open tasks due within [today, today+7 days].
func Upcoming(tasks []model.Task, today time.Time) []model.Task {
	today = Day(today)
	end := today.AddDate(0, 0, upcomingWindowDays)
	return filterSorted(tasks, func(t model.Task) bool {
		d, ok := deadlineDay(t)
		return ok && !t.IsCompleted && !d.Before(today) && !d.After(end)
	}, byDeadlineAsc)
}

func Completed(tasks []model.Task) []model.Task {
	return filterSorted(tasks, func(t model.Task) bool { return t.IsCompleted }, byCreatedDesc)
}

// Urgent returns urgent tasks that are not yet completed.
func Urgent(tasks []model.Task) []model.Task {
	return filterSorted(tasks, func(t model.Task) bool { return t.IsUrgent && !t.IsCompleted }, byDeadlineAsc)
}

// ByAssignee filters on an exact, case-sensitive assignee match.
func ByAssignee(tasks []model.Task, assignee string) []model.Task {
	return filterSorted(tasks, func(t model.Task) bool { return t.Assignee == assignee }, byCreatedDesc)
}

// Group is one assignee's slice of the collection.
type Group struct {
	Assignee  string       `json:"assignee"`
	Total     int          `json:"total"`
	Completed int          `json:"completed"`
	Urgent    int          `json:"urgent"`
	Tasks     []model.Task `json:"tasks"`
}

// GroupByAssignee groups all tasks by assignee, ordered by name. Urgent counts
// only open urgent tasks, the same rule the stats endpoint applies.
func GroupByAssignee(tasks []model.Task) []Group {
	idx := map[string]int{}
	var groups []Group
	for _, t := range tasks {
		i, ok := idx[t.Assignee]
		if !ok {
			i = len(groups)
			idx[t.Assignee] = i
			groups = append(groups, Group{Assignee: t.Assignee})
		}
		g := &groups[i]
		g.Total++
		if t.IsCompleted {
			g.Completed++
		}
		if t.IsUrgent && !t.IsCompleted {
			g.Urgent++
		}
	}

	sort.Slice(groups, func(i, j int) bool { return groups[i].Assignee < groups[j].Assignee })
	for i := range groups {
		groups[i].Tasks = ByAssignee(tasks, groups[i].Assignee)
	}
	return groups
}
