package services

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
)

// toastTTL is how long a toast stays visible before it dismisses itself.
const toastTTL = 3 * time.Second

// Notifier is the feedback sink for user-facing operation results.
// Fire-and-forget: callers never wait on it.
type Notifier interface {
	Notify(message string, kind ToastKind)
}

// Toast is one active notification.
type Toast struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Kind      ToastKind `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

// ToastCenter holds active toasts for one user. Each toast is dismissed
// individually after toastTTL; multiple toasts may coexist.
type ToastCenter struct {
	mu     sync.Mutex
	toasts map[string]Toast
	ttl    time.Duration
}

func NewToastCenter() *ToastCenter {
	return &ToastCenter{
		toasts: make(map[string]Toast),
		ttl:    toastTTL,
	}
}

func (c *ToastCenter) Notify(message string, kind ToastKind) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := uuid.New().String()
	c.toasts[id] = Toast{
		ID:        id,
		Message:   message,
		Kind:      kind,
		CreatedAt: time.Now(),
	}

	time.AfterFunc(c.ttl, func() { c.Dismiss(id) })
}

func (c *ToastCenter) Dismiss(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.toasts, id)
}

// List returns active toasts, oldest first.
func (c *ToastCenter) List() []Toast {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Toast, 0, len(c.toasts))
	for _, t := range c.toasts {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}
