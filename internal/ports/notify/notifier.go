package notify

import (
	"context"
	"sync"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notice es una notificación transitoria (toast) para el usuario.
type Notice struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Notifier es fire-and-forget: no devuelve error ni garantiza orden de entrega.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Collector acumula las notificaciones de un request.
// El handler decide si las renderiza directo o las guarda como flash antes de redirigir.
type Collector struct {
	mu      sync.Mutex
	notices []Notice
}

func (c *Collector) Success(message string) { c.add(KindSuccess, message) }
func (c *Collector) Error(message string)   { c.add(KindError, message) }

func (c *Collector) add(kind Kind, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notices = append(c.notices, Notice{Kind: kind, Message: message})
}

func (c *Collector) Notices() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Notice(nil), c.notices...)
}

// Last devuelve la última notificación, si hay.
func (c *Collector) Last() (Notice, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.notices) == 0 {
		return Notice{}, false
	}
	return c.notices[len(c.notices)-1], true
}

// Store persiste notificaciones entre redirects (flash), indexadas por una key de cliente.
type Store interface {
	Push(ctx context.Context, key string, notices []Notice) error
	// Pop devuelve y borra. Key desconocida => slice vacío, sin error.
	Pop(ctx context.Context, key string) ([]Notice, error)
}
