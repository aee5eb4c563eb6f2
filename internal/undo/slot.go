// Package undo хранит снимки удалённых записей в течение окна отмены.
package undo

import (
	"DietTracker/internal/models"
	"sync"
	"time"
)

// Slot держит не больше одного снимка. Новый Hold вытесняет предыдущий.
type Slot[T any] struct {
	mu       sync.Mutex
	window   time.Duration
	schedule Scheduler
	onExpire func(T)

	gen   uint64
	value T
	held  bool
	timer *Deferred
}

func NewSlot[T any](window time.Duration, schedule Scheduler) *Slot[T] {
	if schedule == nil {
		schedule = AfterFunc
	}
	return &Slot[T]{window: window, schedule: schedule}
}

// OnExpire задаёт обработчик истечения окна
func (s *Slot[T]) OnExpire(f func(T)) {
	s.mu.Lock()
	s.onExpire = f
	s.mu.Unlock()
}

func (s *Slot[T]) Hold(snapshot T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timer.Cancel()
	s.gen++
	gen := s.gen
	s.value, s.held = snapshot, true
	s.timer = s.schedule(s.window, func() { s.expire(gen) })
}

// Take забирает снимок и останавливает таймер. Второй вызов вернёт false.
func (s *Slot[T]) Take() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	if !s.held {
		return zero, false
	}
	s.timer.Cancel()
	v := s.value
	s.value, s.held, s.timer = zero, false, nil
	return v, true
}

func (s *Slot[T]) Peek() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.held
}

// expire очищает слот, если за это время не появился новый снимок
func (s *Slot[T]) expire(gen uint64) {
	s.mu.Lock()
	if !s.held || s.gen != gen {
		s.mu.Unlock()
		return
	}
	var zero T
	v := s.value
	s.value, s.held, s.timer = zero, false, nil
	cb := s.onExpire
	s.mu.Unlock()
	if cb != nil {
		cb(v)
	}
}

// Buffer — по одному слоту на вид записи
type Buffer struct {
	Foods *Slot[models.Food]
	Meals *Slot[models.Meal]
}

func NewBuffer(window time.Duration, schedule Scheduler) *Buffer {
	return &Buffer{
		Foods: NewSlot[models.Food](window, schedule),
		Meals: NewSlot[models.Meal](window, schedule),
	}
}
