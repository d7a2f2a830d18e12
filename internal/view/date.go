package view

import (
	"time"

	"taskboard/internal/model"
)

// Day truncates t to its calendar date, expressed as midnight UTC so that
// dates compare with == and Before regardless of the zone they came from.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CurrentDate is the calendar date of now in loc.
func CurrentDate(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return Day(now.In(loc))
}

func deadlineDay(t model.Task) (time.Time, bool) {
	if t.Deadline == nil {
		return time.Time{}, false
	}
	return Day(time.Time(*t.Deadline)), true
}
