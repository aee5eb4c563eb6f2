package undo

import "time"

// Deferred — отложенное действие, которое можно отменить до срабатывания
type Deferred struct {
	cancel func() bool
}

func NewDeferred(cancel func() bool) *Deferred {
	return &Deferred{cancel: cancel}
}

// Cancel отменяет действие. false — уже сработало или уже отменено.
func (d *Deferred) Cancel() bool {
	if d == nil || d.cancel == nil {
		return false
	}
	return d.cancel()
}

// Scheduler запускает f через d
type Scheduler func(d time.Duration, f func()) *Deferred

// AfterFunc — планировщик на time.AfterFunc
func AfterFunc(d time.Duration, f func()) *Deferred {
	t := time.AfterFunc(d, f)
	return NewDeferred(t.Stop)
}
