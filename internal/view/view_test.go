package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"taskboard/internal/model"
)

var refToday = time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) *datatypes.Date {
	v := datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
	return &v
}

func dueIn(days int) *datatypes.Date {
	d := refToday.AddDate(0, 0, days)
	return date(d.Year(), d.Month(), d.Day())
}

func created(minutes int) time.Time {
	return refToday.Add(-48 * time.Hour).Add(time.Duration(minutes) * time.Minute)
}

func ids(tasks []model.Task) []uint {
	out := make([]uint, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func fixture() []model.Task {
	return []model.Task{
		{ID: 1, Assignee: "kim", Deadline: dueIn(0), CreatedDate: created(1)},
		{ID: 2, Assignee: "kim", Deadline: dueIn(-3), CreatedDate: created(2)},
		{ID: 3, Assignee: "lee", Deadline: dueIn(7), IsUrgent: true, CreatedDate: created(3)},
		{ID: 4, Assignee: "lee", Deadline: dueIn(8), CreatedDate: created(4)},
		{ID: 5, Assignee: "park", Deadline: dueIn(-1), IsCompleted: true, CreatedDate: created(5)},
		{ID: 6, Assignee: "Kim", Deadline: dueIn(2), IsUrgent: true, CreatedDate: created(6)},
		{ID: 7, Assignee: "park", Deadline: dueIn(0), IsCompleted: true, IsUrgent: true, CreatedDate: created(7)},
	}
}

func TestParseTab(t *testing.T) {
	tab, err := ParseTab("")
	require.NoError(t, err)
	assert.Equal(t, TabAll, tab)

	tab, err = ParseTab(" Upcoming ")
	require.NoError(t, err)
	assert.Equal(t, TabUpcoming, tab)

	_, err = ParseTab("weekly")
	assert.ErrorIs(t, err, ErrUnknownTab)

	assert.False(t, TabBoard.IsTaskView())
	assert.True(t, TabCalendar.IsTaskView())
}

func TestAll_ExcludesCompleted(t *testing.T) {
	got := All(fixture())

	// urgent first, then newest created first
	assert.Equal(t, []uint{6, 3, 4, 2, 1}, ids(got))
}

func TestToday(t *testing.T) {
	got := Today(fixture(), refToday.Add(15*time.Hour))

	assert.Equal(t, []uint{7, 1}, ids(got))
}

func TestPast(t *testing.T) {
	got := Past(fixture(), refToday)

	assert.Equal(t, []uint{2}, ids(got), "completed task 5 is not past")
}

func TestUpcoming_WindowIsInclusive(t *testing.T) {
	got := Upcoming(fixture(), refToday)

	// 3 is due exactly today+7, 4 at today+8 falls outside
	assert.Equal(t, []uint{6, 3, 1}, ids(got))
}

func TestCompletedAndUrgent(t *testing.T) {
	assert.Equal(t, []uint{7, 5}, ids(Completed(fixture())))
	assert.Equal(t, []uint{6, 3}, ids(Urgent(fixture())))
}

func TestByAssignee_CaseSensitive(t *testing.T) {
	assert.Equal(t, []uint{2, 1}, ids(ByAssignee(fixture(), "kim")))
	assert.Equal(t, []uint{6}, ids(ByAssignee(fixture(), "Kim")))
	assert.Empty(t, ByAssignee(fixture(), "nobody"))
}

func TestGroupByAssignee(t *testing.T) {
	groups := GroupByAssignee(fixture())

	require.Len(t, groups, 4)
	names := []string{groups[0].Assignee, groups[1].Assignee, groups[2].Assignee, groups[3].Assignee}
	assert.Equal(t, []string{"Kim", "kim", "lee", "park"}, names)

	park := groups[3]
	assert.Equal(t, 2, park.Total)
	assert.Equal(t, 2, park.Completed)
	assert.Equal(t, 0, park.Urgent, "completed urgent tasks are not counted as urgent")
	assert.Equal(t, []uint{7, 5}, ids(park.Tasks))
}

func TestDerive_DoesNotMutateSource(t *testing.T) {
	tasks := fixture()
	before := ids(tasks)

	for _, tab := range []Tab{TabAll, TabToday, TabPast, TabUpcoming, TabCompleted, TabUrgent, TabAssignee, TabCalendar} {
		_, err := Derive(tasks, State{Tab: tab}, refToday)
		require.NoError(t, err, tab)
	}

	assert.Equal(t, before, ids(tasks))
}

func TestDerive_NonTaskTabs(t *testing.T) {
	_, err := Derive(fixture(), State{Tab: TabBoard}, refToday)
	assert.ErrorIs(t, err, ErrNotTaskView)

	_, err = Derive(fixture(), State{Tab: TabTodo}, refToday)
	assert.ErrorIs(t, err, ErrNotTaskView)

	_, err = Derive(fixture(), State{Tab: "weekly"}, refToday)
	assert.ErrorIs(t, err, ErrUnknownTab)
}

func TestDerive_Assignee(t *testing.T) {
	res, err := Derive(fixture(), State{Tab: TabAssignee}, refToday)
	require.NoError(t, err)
	assert.Len(t, res.Groups, 4)
	assert.Nil(t, res.Tasks)

	res, err = Derive(fixture(), State{Tab: TabAssignee, Assignee: "lee"}, refToday)
	require.NoError(t, err)
	assert.Equal(t, []uint{3, 4}, ids(res.Tasks))
	assert.Nil(t, res.Groups)
}

func TestDeadlineWithoutDateIsIgnored(t *testing.T) {
	tasks := []model.Task{{ID: 1, Assignee: "kim", CreatedDate: created(1)}}

	assert.Empty(t, Today(tasks, refToday))
	assert.Empty(t, Past(tasks, refToday))
	assert.Empty(t, Upcoming(tasks, refToday))
	assert.Len(t, All(tasks), 1)
}

func TestCurrentDate_UsesLocation(t *testing.T) {
	seoul := time.FixedZone("KST", 9*60*60)
	now := time.Date(2024, time.May, 15, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, time.May, 16, 0, 0, 0, 0, time.UTC), CurrentDate(now, seoul))
	assert.Equal(t, time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC), CurrentDate(now, time.UTC))
}
