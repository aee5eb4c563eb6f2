package undo_test

import (
	"DietTracker/internal/models"
	"DietTracker/internal/undo"
	"DietTracker/internal/undo/undotest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const window = 8 * time.Second

func TestSlotTakeWithinWindow(t *testing.T) {
	clock := &undotest.Manual{}
	slot := undo.NewSlot[models.Food](window, clock.Schedule)
	apple := models.Food{ID: "a", Name: "Apple"}

	slot.Hold(apple)
	clock.Advance(window - time.Second)

	got, ok := slot.Take()
	require.True(t, ok)
	assert.Equal(t, apple, got)
	assert.Zero(t, clock.Pending(), "timer is cancelled")

	_, ok = slot.Take()
	assert.False(t, ok, "second take is a no-op")
}

func TestSlotExpires(t *testing.T) {
	clock := &undotest.Manual{}
	slot := undo.NewSlot[models.Meal](window, clock.Schedule)
	var expired []models.Meal
	slot.OnExpire(func(m models.Meal) { expired = append(expired, m) })

	slot.Hold(models.Meal{ID: "m1"})
	clock.Advance(window)

	_, ok := slot.Peek()
	assert.False(t, ok)
	_, ok = slot.Take()
	assert.False(t, ok)
	require.Len(t, expired, 1)
	assert.Equal(t, "m1", expired[0].ID)
}

func TestSlotHoldReplacesPending(t *testing.T) {
	clock := &undotest.Manual{}
	slot := undo.NewSlot[models.Food](window, clock.Schedule)
	expiredCount := 0
	slot.OnExpire(func(models.Food) { expiredCount++ })

	slot.Hold(models.Food{ID: "first"})
	clock.Advance(5 * time.Second)
	slot.Hold(models.Food{ID: "second"})
	assert.Equal(t, 1, clock.Pending(), "previous timer cancelled")

	clock.Advance(5 * time.Second)
	got, ok := slot.Peek()
	require.True(t, ok, "new window started at the second hold")
	assert.Equal(t, "second", got.ID)

	clock.Advance(3 * time.Second)
	_, ok = slot.Peek()
	assert.False(t, ok)
	assert.Equal(t, 1, expiredCount, "replaced snapshot never reaches the expiry callback")
}

func TestSlotLateTimerDoesNotClearNewerEntry(t *testing.T) {
	var fired []func()
	schedule := func(_ time.Duration, f func()) *undo.Deferred {
		fired = append(fired, f)
		// таймер уже сработал, отменить нельзя
		return undo.NewDeferred(func() bool { return false })
	}
	slot := undo.NewSlot[models.Food](window, schedule)

	slot.Hold(models.Food{ID: "old"})
	slot.Hold(models.Food{ID: "new"})
	fired[0]()

	got, ok := slot.Peek()
	require.True(t, ok)
	assert.Equal(t, "new", got.ID)

	fired[1]()
	_, ok = slot.Peek()
	assert.False(t, ok)
}

func TestBufferKindsAreIndependent(t *testing.T) {
	clock := &undotest.Manual{}
	buf := undo.NewBuffer(window, clock.Schedule)

	buf.Foods.Hold(models.Food{ID: "f"})
	buf.Meals.Hold(models.Meal{ID: "m"})

	_, ok := buf.Foods.Take()
	assert.True(t, ok)
	m, ok := buf.Meals.Peek()
	assert.True(t, ok)
	assert.Equal(t, "m", m.ID)
}

func TestAfterFuncCancel(t *testing.T) {
	called := make(chan struct{}, 1)
	d := undo.AfterFunc(time.Hour, func() { called <- struct{}{} })
	assert.True(t, d.Cancel())
	assert.False(t, d.Cancel())
	var nilDeferred *undo.Deferred
	assert.False(t, nilDeferred.Cancel())
}
