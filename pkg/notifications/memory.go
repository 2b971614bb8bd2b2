package notifications

import "sync"

// Toast is one recorded notification.
type Toast struct {
	UserId  string
	Message string
	Kind    Kind
}

// MemoryNotifier records toasts in memory. Used in tests and as a fallback
// sink when Redis is not configured.
type MemoryNotifier struct {
	mu     sync.Mutex
	toasts []Toast
}

func NewMemoryNotifier() *MemoryNotifier {
	return &MemoryNotifier{}
}

func (n *MemoryNotifier) Notify(userId string, message string, kind Kind) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.toasts = append(n.toasts, Toast{UserId: userId, Message: message, Kind: kind})
}

// Toasts returns a copy of everything recorded so far.
func (n *MemoryNotifier) Toasts() []Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Toast, len(n.toasts))
	copy(out, n.toasts)
	return out
}
