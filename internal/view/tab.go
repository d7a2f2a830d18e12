// Package view derives the dashboard's task views from one task collection.
// Every function here is pure: it reads the slice it is given and returns a
// new one, never reordering or editing the caller's tasks.
package view

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Tab string

const (
	TabAll       Tab = "all"
	TabToday     Tab = "today"
	TabPast      Tab = "past"
	TabUpcoming  Tab = "upcoming"
	TabCompleted Tab = "completed"
	TabUrgent    Tab = "urgent"
	TabAssignee  Tab = "assignee"
	TabCalendar  Tab = "calendar"
	TabBoard     Tab = "board"
	TabTodo      Tab = "todo"
)

var tabs = []Tab{TabAll, TabToday, TabPast, TabUpcoming, TabCompleted, TabUrgent, TabAssignee, TabCalendar, TabBoard, TabTodo}

var (
	ErrUnknownTab  = errors.New("unknown view tab")
	ErrNotTaskView = errors.New("tab does not show tasks")
)

// ParseTab accepts a tab name case-insensitively. An empty name selects TabAll.
func ParseTab(s string) (Tab, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return TabAll, nil
	}
	for _, t := range tabs {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTab, s)
}

// IsTaskView reports whether the tab is derived from the task collection.
func (t Tab) IsTaskView() bool {
	return t != TabBoard && t != TabTodo
}

// State is the dashboard's selection: the active tab plus the secondary
// selectors used by the assignee and calendar tabs.
type State struct {
	Tab      Tab
	Assignee string
	Year     int
	Month    time.Month
}

// NewState starts on the all tab with the calendar showing today's month.
func NewState(today time.Time) State {
	return State{Tab: TabAll, Year: today.Year(), Month: today.Month()}
}

// ParseMonth reads a YYYY-MM value.
func ParseMonth(s string) (int, time.Month, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return 0, 0, err
	}
	return t.Year(), t.Month(), nil
}
