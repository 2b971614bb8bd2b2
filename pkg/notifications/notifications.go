package notifications

// Kind separates success toasts from error toasts so the UI can style and
// dismiss them differently.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notifier is the side channel the engagement and composer cores push
// user-facing messages through. Delivery is fire-and-forget; a failed
// notification never affects the operation that emitted it.
type Notifier interface {
	Notify(userId string, message string, kind Kind)
}
