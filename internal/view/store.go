package view

import (
	"sync"
	"time"

	"taskboard/internal/model"
)

// Store owns the loaded task collection and the selection state. Reloads
// replace the whole collection; whichever Replace runs last wins.
type Store struct {
	mu       sync.RWMutex
	tasks    []model.Task
	stats    *model.TaskStats
	state    State
	loadedAt time.Time
}

func NewStore(state State) *Store {
	return &Store{state: state}
}

// Replace swaps in a freshly loaded collection.
func (s *Store) Replace(tasks []model.Task, stats *model.TaskStats, at time.Time) {
	cp := make([]model.Task, len(tasks))
	copy(cp, tasks)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = cp
	s.stats = stats
	s.loadedAt = at
}

func (s *Store) SetTab(tab Tab) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Tab = tab
	if tab != TabAssignee {
		s.state.Assignee = ""
	}
}

// SelectAssignee switches to the assignee tab filtered to one assignee.
func (s *Store) SelectAssignee(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Tab = TabAssignee
	s.state.Assignee = name
}

func (s *Store) SetMonth(year int, month time.Month) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Year, s.state.Month = year, month
}

// ShiftMonth moves the displayed calendar month by delta months.
func (s *Store) ShiftMonth(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := time.Date(s.state.Year, s.state.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, delta, 0)
	s.state.Year, s.state.Month = t.Year(), t.Month()
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Store) Stats() *model.TaskStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// Current re-derives the active view from the stored collection.
func (s *Store) Current(today time.Time) (Result, error) {
	s.mu.RLock()
	tasks, state := s.tasks, s.state
	s.mu.RUnlock()
	return Derive(tasks, state, today)
}
