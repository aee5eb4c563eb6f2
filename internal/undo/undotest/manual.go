// Package undotest — планировщик для тестов, в котором время двигают вручную.
package undotest

import (
	"DietTracker/internal/undo"
	"sync"
	"time"
)

// Manual реализует undo.Scheduler через метод Schedule
type Manual struct {
	mu    sync.Mutex
	now   time.Duration
	tasks []*manualTask
}

type manualTask struct {
	at   time.Duration
	f    func()
	done bool
}

func (m *Manual) Schedule(d time.Duration, f func()) *undo.Deferred {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTask{at: m.now + d, f: f}
	m.tasks = append(m.tasks, t)
	return undo.NewDeferred(func() bool {
		m.mu.Lock()
		defer m.mu.Unlock()
		if t.done {
			return false
		}
		t.done = true
		return true
	})
}

// Advance сдвигает время и выполняет наступившие действия
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now += d
	var due []func()
	for _, t := range m.tasks {
		if !t.done && t.at <= m.now {
			t.done = true
			due = append(due, t.f)
		}
	}
	m.mu.Unlock()
	for _, f := range due {
		f()
	}
}

// Pending — число запланированных и ещё не выполненных действий
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.tasks {
		if !t.done {
			n++
		}
	}
	return n
}
