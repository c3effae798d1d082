// Implements the Queue container, the wait list holding entities until they
// are served. Ordering is delegated to a hot-swappable discipline; entity
// state transitions update the length and wait-time accumulators atomically
// and notify registered listeners.

package sim

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Queue holds Queueable items awaiting service. It owns the backing slice,
// exactly one active ordering discipline, the length-over-time and wait-time
// accumulators, and the listener registry.
//
// Queues are single-threaded by design: the surrounding discrete-event model
// guarantees one logical action per simulation instant, so there is no
// internal locking. Sharing a queue across goroutines is unsupported.
type Queue[T Queueable] struct {
	name  string
	clock TimeSource
	items []T

	current discipline[T]
	initial DisciplineKind

	status    QueueStatus
	listeners []QueueListener[T]

	lengthStats TimeWeightedIfc
	waitStats   ObservationIfc
	// waitStatsEnabled is the master switch for wait-time collection.
	// Per-call suppression (balking/reneging) goes through Discard/DiscardIf.
	waitStatsEnabled bool

	rnStream RandIntStream

	replicationRunning bool
}

// NewQueue creates a queue using the given clock source, name, and
// discipline. The discipline also becomes the initial discipline applied at
// the start of each replication. Panics on a nil clock or unknown discipline.
func NewQueue[T Queueable](clock TimeSource, name string, kind DisciplineKind) *Queue[T] {
	if clock == nil {
		logrus.Panicf("NewQueue %q: clock source must not be nil", name)
	}
	if !validDisciplines[kind] {
		logrus.Panicf("NewQueue %q: unknown discipline %q", name, kind)
	}
	return &Queue[T]{
		name:             name,
		clock:            clock,
		current:          newDiscipline[T](kind),
		initial:          kind,
		status:           StatusIgnore,
		lengthStats:      NewTimeWeighted(clock.Time()),
		waitStats:        NewStatistic(),
		waitStatsEnabled: true,
	}
}

// Name returns the queue's name.
func (q *Queue[T]) Name() string { return q.name }

// Len returns the number of items currently in the queue.
func (q *Queue[T]) Len() int { return len(q.items) }

// IsEmpty reports whether the queue holds no items.
func (q *Queue[T]) IsEmpty() bool { return len(q.items) == 0 }

// Status returns the transient flag describing the most recent mutation.
func (q *Queue[T]) Status() QueueStatus { return q.status }

// Discipline returns the kind of the active ordering discipline.
func (q *Queue[T]) Discipline() DisciplineKind { return q.current.kind() }

// InitialDiscipline returns the discipline applied at replication start.
func (q *Queue[T]) InitialDiscipline() DisciplineKind { return q.initial }

// Items returns the queue contents in backing order for iteration.
// The returned slice is the queue's internal storage -- callers may iterate
// over it but MUST NOT append to or reslice it.
func (q *Queue[T]) Items() []T { return q.items }

// Contains reports whether item is currently held by this queue.
func (q *Queue[T]) Contains(item T) bool {
	return q.indexOf(item) >= 0
}

// SetDiscipline hot-swaps the active ordering discipline. A request for the
// currently active kind is a no-op (avoids a redundant normalization). The
// new discipline's switch hook runs before it becomes active, bringing the
// backing slice into the shape the discipline requires.
func (q *Queue[T]) SetDiscipline(kind DisciplineKind) {
	if !validDisciplines[kind] {
		logrus.Panicf("Queue %q: unknown discipline %q", q.name, kind)
	}
	if kind == q.current.kind() {
		return
	}
	next := newDiscipline[T](kind)
	next.switchedTo(q)
	q.current = next
}

// SetInitialDiscipline configures the discipline applied at the start of each
// replication. Changing it while a replication is executing only takes effect
// at the next replication boundary, which is very likely a mistake, so it is
// logged as a warning.
func (q *Queue[T]) SetInitialDiscipline(kind DisciplineKind) {
	if !validDisciplines[kind] {
		logrus.Panicf("Queue %q: unknown discipline %q", q.name, kind)
	}
	if q.replicationRunning {
		logrus.Warnf("Queue %q: initial discipline changed to %q during a replication; it takes effect at the next replication start", q.name, kind)
	}
	q.initial = kind
}

// RandomStream returns the stream used by the random discipline, creating a
// default stream (seeded from the queue name) on first use.
func (q *Queue[T]) RandomStream() RandIntStream { return q.stream() }

// SetRandomStream installs the stream the random discipline draws from.
func (q *Queue[T]) SetRandomStream(s RandIntStream) {
	if s == nil {
		logrus.Panicf("Queue %q: random stream must not be nil", q.name)
	}
	q.rnStream = s
}

// SetLengthStats injects a replacement length-over-time accumulator.
func (q *Queue[T]) SetLengthStats(tw TimeWeightedIfc) {
	if tw == nil {
		logrus.Panicf("Queue %q: length accumulator must not be nil", q.name)
	}
	q.lengthStats = tw
}

// SetWaitStats injects a replacement wait-time accumulator.
func (q *Queue[T]) SetWaitStats(obs ObservationIfc) {
	if obs == nil {
		logrus.Panicf("Queue %q: wait accumulator must not be nil", q.name)
	}
	q.waitStats = obs
}

// LengthStats returns the length-over-time accumulator.
func (q *Queue[T]) LengthStats() TimeWeightedIfc { return q.lengthStats }

// WaitStats returns the wait-time accumulator.
func (q *Queue[T]) WaitStats() ObservationIfc { return q.waitStats }

// SetWaitStatsEnabled toggles wait-time collection for all removals.
func (q *Queue[T]) SetWaitStatsEnabled(enabled bool) { q.waitStatsEnabled = enabled }

// RegisterListener appends a listener; it will see every mutating event.
func (q *Queue[T]) RegisterListener(l QueueListener[T]) {
	if l == nil {
		logrus.Panicf("Queue %q: listener must not be nil", q.name)
	}
	q.listeners = append(q.listeners, l)
}

// DeregisterListener removes a previously registered listener.
// Returns false if the listener was not registered.
func (q *Queue[T]) DeregisterListener(l QueueListener[T]) bool {
	for i, reg := range q.listeners {
		if reg == l {
			q.listeners = append(q.listeners[:i], q.listeners[i+1:]...)
			return true
		}
	}
	return false
}

// Enqueue inserts item using its current priority and attachment.
// The item must not already be in a queue (a programmer error, and a panic).
func (q *Queue[T]) Enqueue(item T) {
	obj := item.QueueObject()
	q.enqueue(item, obj.Priority(), obj.Attachment())
}

// EnqueueWithPriority inserts item with the given priority.
func (q *Queue[T]) EnqueueWithPriority(item T, priority int) {
	q.enqueue(item, priority, item.QueueObject().Attachment())
}

// EnqueueWith inserts item with the given priority and attached payload.
func (q *Queue[T]) EnqueueWith(item T, priority int, attached any) {
	q.enqueue(item, priority, attached)
}

// enqueue performs the five-step enqueue transition: open the queued-state
// interval, insert per the active discipline, flip the status flag, bump the
// length accumulator, notify listeners. Callers observe no intermediate
// state.
func (q *Queue[T]) enqueue(item T, priority int, attached any) {
	now := q.clock.Time()
	item.QueueObject().enterQueue(q, now, priority, attached)
	q.current.add(q, item)
	q.status = StatusEnqueued
	q.lengthStats.Increment(now)
	q.notify(StatusEnqueued, item)
}

// PeekNext returns, without removing, the item the active discipline would
// serve next. Under the random discipline this draws from the queue's stream
// (see the discipline contract); under all others it is side-effect free.
func (q *Queue[T]) PeekNext() (T, bool) {
	return q.current.peekNext(q)
}

// RemoveNext removes and returns the discipline-correct next item, closing
// its queued-state interval and recording its wait time. Returns false on an
// empty queue; empty-queue removal is a normal outcome, not an error.
func (q *Queue[T]) RemoveNext() (T, bool) {
	item, ok := q.current.removeNext(q)
	if !ok {
		var zero T
		return zero, false
	}
	q.finishRemoval(item, true)
	return item, true
}

// Remove removes a specific item wherever it sits in the queue, recording
// its wait time. Returns false if the item is not present (no state change).
func (q *Queue[T]) Remove(item T) bool {
	return q.removeItem(item, true)
}

// Discard removes a specific item without recording wait-time statistics.
// Intended for balking/reneging, where charging the abandoned wait would
// bias the wait-time response. Returns false if the item is not present.
func (q *Queue[T]) Discard(item T) bool {
	return q.removeItem(item, false)
}

// RemoveIf removes every item satisfying pred, in backing order, returning
// the removed items. Each removal follows the single-item Remove contract;
// collectStats controls wait-time recording for all of them.
func (q *Queue[T]) RemoveIf(pred func(T) bool, collectStats bool) []T {
	if pred == nil {
		logrus.Panicf("Queue %q: RemoveIf predicate must not be nil", q.name)
	}
	var removed []T
	for i := 0; i < len(q.items); {
		if pred(q.items[i]) {
			item := q.removeAt(i)
			q.finishRemoval(item, collectStats)
			removed = append(removed, item)
		} else {
			i++
		}
	}
	return removed
}

// Clear force-removes every item at the current time without recording
// wait-time observations (the items are being discarded, not served).
// Listeners are notified once with the zero item to signify a bulk change.
func (q *Queue[T]) Clear() {
	now := q.clock.Time()
	for _, item := range q.items {
		item.QueueObject().exitQueue(now)
		q.lengthStats.Decrement(now)
	}
	q.items = nil
	q.status = StatusIgnore
	var zero T
	q.notify(StatusIgnore, zero)
}

// Initialize is the start-of-replication hook: leftover contents are cleared
// and the discipline resets to the configured initial discipline.
func (q *Queue[T]) Initialize() {
	q.replicationRunning = true
	if len(q.items) > 0 {
		q.Clear()
	}
	if q.current.kind() != q.initial {
		q.current = newDiscipline[T](q.initial)
		q.current.switchedTo(q)
	}
}

// AfterReplication force-clears the queue; entities still waiting when the
// replication ends are discarded, not served.
func (q *Queue[T]) AfterReplication() {
	q.replicationRunning = false
	if len(q.items) > 0 {
		q.Clear()
	}
}

// RemovedFromModel releases all internal state when the queue leaves the
// model entirely.
func (q *Queue[T]) RemovedFromModel() {
	if len(q.items) > 0 {
		q.Clear()
	}
	q.listeners = nil
	q.status = StatusIgnore
	q.replicationRunning = false
}

func (q *Queue[T]) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, item := range q.items {
		sb.WriteString(fmt.Sprint(item.QueueObject().Name()))
		if i < len(q.items)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// === internal ===

// finishRemoval closes the queued-state interval of an item already taken
// out of the backing slice, updates accumulators, and notifies listeners.
func (q *Queue[T]) finishRemoval(item T, collectStats bool) {
	now := q.clock.Time()
	obj := item.QueueObject()
	entered := obj.TimeEnteredQueue()
	obj.exitQueue(now)
	q.lengthStats.Decrement(now)
	if collectStats && q.waitStatsEnabled {
		q.waitStats.Record(now - entered)
		q.status = StatusDequeued
	} else {
		q.status = StatusIgnore
	}
	q.notify(q.status, item)
}

func (q *Queue[T]) removeItem(item T, collectStats bool) bool {
	i := q.indexOf(item)
	if i < 0 {
		return false
	}
	q.removeAt(i)
	q.finishRemoval(item, collectStats)
	return true
}

// indexOf locates item by QObject identity.
func (q *Queue[T]) indexOf(item T) int {
	obj := item.QueueObject()
	for i, held := range q.items {
		if held.QueueObject() == obj {
			return i
		}
	}
	return -1
}

// removeAt removes and returns the element at index i.
func (q *Queue[T]) removeAt(i int) T {
	item := q.items[i]
	q.items = append(q.items[:i], q.items[i+1:]...)
	return item
}

// insertAt inserts item at index i, shifting later elements right.
func (q *Queue[T]) insertAt(i int, item T) {
	var zero T
	q.items = append(q.items, zero)
	copy(q.items[i+1:], q.items[i:])
	q.items[i] = item
}

// stream returns the random-discipline stream, creating a default one seeded
// from the queue name on first use so random selection stays reproducible
// even when no stream was injected.
func (q *Queue[T]) stream() RandIntStream {
	if q.rnStream == nil {
		q.rnStream = NewStream(fnv1a64(q.name))
	}
	return q.rnStream
}

// priorityChanged satisfies QueueContainer: a queued object's priority was
// mutated, so let the active discipline re-evaluate order.
func (q *Queue[T]) priorityChanged() {
	q.current.priorityChanged(q)
}

// notify invokes listeners synchronously in registration order.
func (q *Queue[T]) notify(status QueueStatus, item T) {
	for _, l := range q.listeners {
		l.Changed(status, q, item)
	}
}
