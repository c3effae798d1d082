package sim

// QueueStatus is the transient "what just happened" flag read by listeners
// synchronously after each mutating queue operation.
type QueueStatus int

const (
	// StatusIgnore means no statistically relevant change (initial state,
	// clear, or a removal with statistics suppressed).
	StatusIgnore QueueStatus = iota
	// StatusEnqueued means an item just entered the queue.
	StatusEnqueued
	// StatusDequeued means an item just left the queue with statistics
	// collected.
	StatusDequeued
)

func (s QueueStatus) String() string {
	switch s {
	case StatusEnqueued:
		return "enqueued"
	case StatusDequeued:
		return "dequeued"
	default:
		return "ignore"
	}
}

// QueueListener observes queue changes. Changed is invoked synchronously on
// every enqueue, dequeue, and clear, in registration order. For bulk changes
// (clear) item is the zero value of T. A panic raised by a listener
// propagates to the caller of the mutating operation.
type QueueListener[T Queueable] interface {
	Changed(status QueueStatus, q *Queue[T], item T)
}

// ListenerFunc adapts a plain function to the QueueListener interface.
// The returned value has a stable identity, so it can be deregistered.
func ListenerFunc[T Queueable](f func(status QueueStatus, q *Queue[T], item T)) QueueListener[T] {
	return &listenerFunc[T]{f: f}
}

type listenerFunc[T Queueable] struct {
	f func(status QueueStatus, q *Queue[T], item T)
}

func (l *listenerFunc[T]) Changed(status QueueStatus, q *Queue[T], item T) {
	l.f(status, q, item)
}
