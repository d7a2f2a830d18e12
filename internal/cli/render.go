package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"taskboard/internal/model"
	"taskboard/internal/view"
)

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorAccent = ac("27", "62")
	colorMuted  = ac("240", "243")
	colorUrgent = ac("160", "203")
	colorDone   = ac("28", "114")
	colorDue    = ac("130", "214")
)

type renderer struct {
	title    lipgloss.Style
	muted    lipgloss.Style
	urgent   lipgloss.Style
	done     lipgloss.Style
	due      lipgloss.Style
	heading  lipgloss.Style
	cell     lipgloss.Style
	outMonth lipgloss.Style
	todayBox lipgloss.Style
}

func newRenderer(w io.Writer) *renderer {
	r := lipgloss.NewRenderer(w)
	return &renderer{
		title:    r.NewStyle().Bold(true).Foreground(colorAccent),
		muted:    r.NewStyle().Foreground(colorMuted),
		urgent:   r.NewStyle().Bold(true).Foreground(colorUrgent),
		done:     r.NewStyle().Strikethrough(true).Foreground(colorDone),
		due:      r.NewStyle().Foreground(colorDue),
		heading:  r.NewStyle().Bold(true).Underline(true),
		cell:     r.NewStyle().Width(10),
		outMonth: r.NewStyle().Width(10).Foreground(colorMuted),
		todayBox: r.NewStyle().Width(10).Bold(true).Foreground(colorAccent),
	}
}

func (r *renderer) render(res view.Result, stats *model.TaskStats, today, loadedAt time.Time) string {
	var b strings.Builder

	b.WriteString(r.title.Render("Taskboard · " + string(res.Tab)))
	b.WriteString(r.muted.Render(fmt.Sprintf("  today %s · loaded %s", today.Format("2006-01-02"), loadedAt.Format("15:04:05"))))
	b.WriteString("\n")
	if stats != nil {
		b.WriteString(r.muted.Render(fmt.Sprintf("total %d  completed %d  urgent %d  pending %d",
			stats.Total, stats.Completed, stats.Urgent, stats.Pending)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case res.Calendar != nil:
		b.WriteString(r.calendar(*res.Calendar))
	case res.Tab == view.TabAssignee && res.Assignee == "":
		b.WriteString(r.groups(res.Groups, today))
	default:
		if res.Assignee != "" {
			b.WriteString(r.heading.Render(res.Assignee))
			b.WriteString("\n")
		}
		b.WriteString(r.taskList(res.Tasks, today))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *renderer) taskList(tasks []model.Task, today time.Time) string {
	if len(tasks) == 0 {
		return r.muted.Render("no tasks") + "\n"
	}
	var b strings.Builder
	for _, t := range tasks {
		b.WriteString(r.taskLine(t, today))
		b.WriteString("\n")
	}
	return b.String()
}

func (r *renderer) taskLine(t model.Task, today time.Time) string {
	mark := "○"
	name := t.TaskName
	switch {
	case t.IsCompleted:
		mark = "●"
		name = r.done.Render(name)
	case t.IsUrgent:
		mark = "!"
		name = r.urgent.Render(name)
	}

	due := "no deadline"
	if t.Deadline != nil {
		d := view.Day(t.DeadlineTime())
		due = "due " + d.Format("2006-01-02")
		if !t.IsCompleted {
			switch {
			case d.Before(today):
				due = r.urgent.Render(due + " (overdue)")
			case d.Equal(today):
				due = r.due.Render(due + " (today)")
			}
		}
	}

	line := fmt.Sprintf("%s %s  %s  %s", mark, name, r.muted.Render(t.Assignee), due)
	if t.SubmissionTarget != nil && *t.SubmissionTarget != "" {
		line += r.muted.Render("  → " + *t.SubmissionTarget)
	}
	return line
}

func (r *renderer) groups(groups []view.Group, today time.Time) string {
	if len(groups) == 0 {
		return r.muted.Render("no assignees") + "\n"
	}
	var b strings.Builder
	for _, g := range groups {
		b.WriteString(r.heading.Render(g.Assignee))
		b.WriteString(r.muted.Render(fmt.Sprintf("  %d tasks · %d done · %d urgent", g.Total, g.Completed, g.Urgent)))
		b.WriteString("\n")
		b.WriteString(r.taskList(g.Tasks, today))
		b.WriteString("\n")
	}
	return b.String()
}

var weekdays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

func (r *renderer) calendar(m view.Month) string {
	var b strings.Builder
	b.WriteString(r.heading.Render(fmt.Sprintf("%s %d", m.Month, m.Year)))
	b.WriteString("\n")

	header := make([]string, len(weekdays))
	for i, d := range weekdays {
		header[i] = r.cell.Render(d)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, header...))
	b.WriteString("\n")

	for week := 0; week < len(m.Cells)/7; week++ {
		row := make([]string, 7)
		for i, c := range m.Cells[week*7 : week*7+7] {
			row[i] = r.dayCell(c)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...))
		b.WriteString("\n")
	}

	var listed bool
	for _, c := range m.Cells {
		if !c.InMonth || len(c.Tasks) == 0 {
			continue
		}
		if !listed {
			b.WriteString("\n")
			listed = true
		}
		for _, ct := range c.Tasks {
			b.WriteString(fmt.Sprintf("%s  %s  %s  %s\n",
				c.Date.Format("01-02"), r.classLabel(ct.Class), ct.TaskName, r.muted.Render(ct.Assignee)))
		}
	}
	return b.String()
}

func (r *renderer) dayCell(c view.Cell) string {
	label := fmt.Sprintf("%2d", c.Date.Day())
	if n := len(c.Tasks); n > 0 {
		label += fmt.Sprintf(" (%d)", n)
	}
	switch {
	case c.IsToday:
		return r.todayBox.Render("[" + strings.TrimSpace(label) + "]")
	case !c.InMonth:
		return r.outMonth.Render(label)
	}
	return r.cell.Render(label)
}

func (r *renderer) classLabel(c view.Class) string {
	switch c {
	case view.ClassCompleted:
		return r.done.Render(string(c))
	case view.ClassUrgent, view.ClassOverdue:
		return r.urgent.Render(string(c))
	case view.ClassDueToday:
		return r.due.Render(string(c))
	}
	return r.muted.Render(string(c))
}
