package schedule

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimer_FiresAfterDelay(t *testing.T) {
	var calls atomic.Int32
	task := Timer{}.After(10*time.Millisecond, func(ctx context.Context) {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		calls.Add(1)
	})

	select {
	case <-task.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("task did not fire")
	}
	assert.Equal(t, int32(1), calls.Load())
	assert.False(t, task.Cancel(), "cancel after fire must be a no-op")
}

func TestTimer_CancelPreventsRun(t *testing.T) {
	var calls atomic.Int32
	task := Timer{}.After(50*time.Millisecond, func(context.Context) { calls.Add(1) })

	require.True(t, task.Cancel())
	assert.True(t, task.Canceled())
	assert.False(t, task.Cancel())

	time.Sleep(120 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
	<-task.Done()
}

func TestManual_FireAllSkipsCanceled(t *testing.T) {
	m := &Manual{}
	var ran []string

	a := m.After(time.Second, func(context.Context) { ran = append(ran, "a") })
	m.After(2*time.Second, func(context.Context) { ran = append(ran, "b") })
	assert.Equal(t, 2, m.Pending())
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, m.Delays())

	a.Cancel()
	assert.Equal(t, 1, m.Pending())

	assert.Equal(t, 1, m.FireAll(context.Background()))
	assert.Equal(t, []string{"b"}, ran)
	assert.Equal(t, 0, m.FireAll(context.Background()))
	assert.Equal(t, 0, m.Pending())
}

func TestTask_NilCancel(t *testing.T) {
	var task *Task
	assert.False(t, task.Cancel())
}
