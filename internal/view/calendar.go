package view

import (
	"time"

	"taskboard/internal/model"
)

const (
	calendarWeeks = 6
	calendarCells = calendarWeeks * 7
)

// Class is the color class of a task inside a calendar cell.
type Class string

const (
	ClassCompleted Class = "completed"
	ClassUrgent    Class = "urgent"
	ClassOverdue   Class = "overdue"
	ClassDueToday  Class = "due-today"
	ClassUpcoming  Class = "upcoming"
)

// Classify picks the class of a task shown on cellDay. Completion beats
// urgency; otherwise the cell's position relative to today decides.
func Classify(t model.Task, cellDay, today time.Time) Class {
	switch {
	case t.IsCompleted:
		return ClassCompleted
	case t.IsUrgent:
		return ClassUrgent
	}
	cellDay, today = Day(cellDay), Day(today)
	switch {
	case cellDay.Before(today):
		return ClassOverdue
	case cellDay.Equal(today):
		return ClassDueToday
	default:
		return ClassUpcoming
	}
}

type CalendarTask struct {
	model.Task
	Class Class `json:"class"`
}

type Cell struct {
	Date    time.Time      `json:"date"`
	InMonth bool           `json:"in_month"`
	IsToday bool           `json:"is_today"`
	Tasks   []CalendarTask `json:"tasks"`
}

// Month is a 6x7 grid starting on the Sunday on or before the 1st.
type Month struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Cells []Cell     `json:"cells"`
}

// GridStart returns the Sunday on or before the first day of the month.
func GridStart(year int, month time.Month) time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 0, -int(first.Weekday()))
}

// Calendar lays the tasks out on the month grid by deadline date.
func Calendar(tasks []model.Task, year int, month time.Month, today time.Time) Month {
	today = Day(today)
	start := GridStart(year, month)

	byDay := map[string][]model.Task{}
	for _, t := range tasks {
		if d, ok := deadlineDay(t); ok {
			key := d.Format(time.DateOnly)
			byDay[key] = append(byDay[key], t)
		}
	}

	cells := make([]Cell, calendarCells)
	for i := range cells {
		day := start.AddDate(0, 0, i)
		cell := Cell{
			Date:    day,
			InMonth: day.Month() == month && day.Year() == year,
			IsToday: day.Equal(today),
			Tasks:   []CalendarTask{},
		}
		for _, t := range filterSorted(byDay[day.Format(time.DateOnly)], func(model.Task) bool { return true }, byCreatedDesc) {
			cell.Tasks = append(cell.Tasks, CalendarTask{Task: t, Class: Classify(t, day, today)})
		}
		cells[i] = cell
	}

	return Month{Year: year, Month: month, Cells: cells}
}
