package schedule

import (
	"context"
	"sync"
	"time"
)

// Scheduler programa fn para dentro de d. El Task devuelto permite cancelarla.
type Scheduler interface {
	After(d time.Duration, fn func(ctx context.Context)) *Task
}

// Task es una ejecución diferida cancelable. Cancel después de disparar es no-op.
type Task struct {
	mu       sync.Mutex
	stop     func() bool
	done     chan struct{}
	fired    bool
	canceled bool
}

func (t *Task) Cancel() bool {
	if t == nil {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.fired || t.canceled {
		return false
	}
	t.canceled = true
	if t.stop != nil {
		t.stop()
	}
	close(t.done)
	return true
}

// Done se cierra cuando la tarea terminó de ejecutar o fue cancelada.
func (t *Task) Done() <-chan struct{} { return t.done }

func (t *Task) Canceled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.canceled
}

// begin marca la tarea como disparada; false si ya disparó o fue cancelada.
func (t *Task) begin() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.canceled || t.fired {
		return false
	}
	t.fired = true
	return true
}

// Timer usa time.AfterFunc. Cada tarea corre con un contexto propio
// (desacoplado del request) acotado por Timeout.
type Timer struct {
	Timeout time.Duration
}

func (s Timer) After(d time.Duration, fn func(ctx context.Context)) *Task {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	t := &Task{done: make(chan struct{})}
	t.mu.Lock()
	defer t.mu.Unlock()

	timer := time.AfterFunc(d, func() {
		if !t.begin() {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		defer close(t.done)
		fn(ctx)
	})
	t.stop = timer.Stop
	return t
}

// Manual no dispara nada solo: los tests llaman Fire/FireAll.
type Manual struct {
	mu    sync.Mutex
	tasks []manualTask
}

type manualTask struct {
	task  *Task
	delay time.Duration
	fn    func(ctx context.Context)
}

func (m *Manual) After(d time.Duration, fn func(ctx context.Context)) *Task {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := &Task{done: make(chan struct{})}
	m.tasks = append(m.tasks, manualTask{task: t, delay: d, fn: fn})
	return t
}

// Pending cuenta tareas ni disparadas ni canceladas.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, mt := range m.tasks {
		mt.task.mu.Lock()
		if !mt.task.fired && !mt.task.canceled {
			n++
		}
		mt.task.mu.Unlock()
	}
	return n
}

// Delays devuelve los delays pedidos, en orden.
func (m *Manual) Delays() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]time.Duration, 0, len(m.tasks))
	for _, mt := range m.tasks {
		out = append(out, mt.delay)
	}
	return out
}

// FireAll ejecuta sincrónicamente las tareas pendientes. Devuelve cuántas corrió.
func (m *Manual) FireAll(ctx context.Context) int {
	m.mu.Lock()
	tasks := append([]manualTask(nil), m.tasks...)
	m.mu.Unlock()

	n := 0
	for _, mt := range tasks {
		if !mt.task.begin() {
			continue
		}
		mt.fn(ctx)
		close(mt.task.done)
		n++
	}
	return n
}
