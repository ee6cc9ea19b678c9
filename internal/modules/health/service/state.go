package service

import (
	"sync"
	"sync/atomic"
	"time"
)

// TaskStatus — итог последнего тика задачи.
type TaskStatus struct {
	LastRun   time.Time
	LastError string
	Runs      int64
	Failures  int64
}

type State struct {
	ready     atomic.Bool
	startedAt time.Time

	mu    sync.RWMutex
	tasks map[string]TaskStatus
}

func NewState() *State {
	s := &State{startedAt: time.Now(), tasks: make(map[string]TaskStatus)}
	s.ready.Store(false)
	return s
}

func (s *State) SetReady(v bool) { s.ready.Store(v) }
func (s *State) Ready() bool     { return s.ready.Load() }

// TickDone вызывается планировщиком после каждого тика.
func (s *State) TickDone(task string, at time.Time, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.tasks[task]
	st.LastRun = at
	st.Runs++
	st.LastError = ""
	if err != nil {
		st.Failures++
		st.LastError = err.Error()
	}
	s.tasks[task] = st
}

func (s *State) Tasks() map[string]TaskStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]TaskStatus, len(s.tasks))
	for k, v := range s.tasks {
		out[k] = v
	}
	return out
}

// Stale — задачи, которые не отработали дольше limit (или ни разу, если процесс старше limit).
func (s *State) Stale(now time.Time, limit map[string]time.Duration) []string {
	tasks := s.Tasks()
	var out []string
	for name, d := range limit {
		last := tasks[name].LastRun
		if last.IsZero() {
			last = s.startedAt
		}
		if now.Sub(last) > d {
			out = append(out, name)
		}
	}
	return out
}

func (s *State) Uptime() time.Duration { return time.Since(s.startedAt) }
