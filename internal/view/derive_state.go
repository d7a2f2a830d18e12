package view

import (
	"fmt"
	"time"

	"taskboard/internal/model"
)

// Result is the output of deriving one tab. Exactly one of Tasks, Groups or
// Calendar is set, depending on the tab.
type Result struct {
	Tab      Tab          `json:"tab"`
	Assignee string       `json:"assignee,omitempty"`
	Tasks    []model.Task `json:"tasks,omitempty"`
	Groups   []Group      `json:"groups,omitempty"`
	Calendar *Month       `json:"calendar,omitempty"`
}

// Derive computes the view selected by state. The assignee tab lists the
// groups when no assignee is selected and that assignee's tasks otherwise.
func Derive(tasks []model.Task, state State, today time.Time) (Result, error) {
	res := Result{Tab: state.Tab}

	switch state.Tab {
	case TabAll, "":
		res.Tab = TabAll
		res.Tasks = All(tasks)
	case TabToday:
		res.Tasks = Today(tasks, today)
	case TabPast:
		res.Tasks = Past(tasks, today)
	case TabUpcoming:
		res.Tasks = Upcoming(tasks, today)
	case TabCompleted:
		res.Tasks = Completed(tasks)
	case TabUrgent:
		res.Tasks = Urgent(tasks)
	case TabAssignee:
		if state.Assignee == "" {
			res.Groups = GroupByAssignee(tasks)
		} else {
			res.Assignee = state.Assignee
			res.Tasks = ByAssignee(tasks, state.Assignee)
		}
	case TabCalendar:
		year, month := state.Year, state.Month
		if year == 0 || month == 0 {
			year, month = today.Year(), today.Month()
		}
		m := Calendar(tasks, year, month, today)
		res.Calendar = &m
	case TabBoard, TabTodo:
		return res, fmt.Errorf("%w: %s", ErrNotTaskView, state.Tab)
	default:
		return res, fmt.Errorf("%w: %q", ErrUnknownTab, state.Tab)
	}

	return res, nil
}
