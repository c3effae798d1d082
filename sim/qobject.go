// Defines QObject, the identity-and-time-tracking object for every entity
// that can wait in a Queue. Tracks creation time, priority, and the single
// open queued-state interval used to compute time-in-queue.

package sim

import (
	"fmt"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// qObjectCounter hands out process-wide unique ids. Never reset during a run:
// the id is the tie-break of last resort in the ordering relation, and the
// total-order guarantee depends on ids never repeating.
var qObjectCounter atomic.Uint64

// QueueContainer is the read-only view a queued object keeps of the queue
// holding it. Only Queue satisfies it; the unexported method keeps the
// back-reference within the package.
type QueueContainer interface {
	Name() string
	Len() int
	IsEmpty() bool

	// priorityChanged lets a queued object tell its container that its
	// priority was mutated, so the active discipline can re-evaluate order.
	priorityChanged()
}

// Queueable is anything that can be held in a Queue. Entity types embed a
// *QObject (or QObject) to satisfy it.
type Queueable interface {
	QueueObject() *QObject
}

// queuedState is the single open entry/exit interval of a QObject.
// An object is in at most one queue at a time; queue is nil when not queued.
type queuedState struct {
	queue       QueueContainer
	timeEntered float64
	timeExited  float64
	totalTime   float64 // accumulated across all intervals
}

// QObject carries the identity, ordering keys, and queued-state bookkeeping
// for a simulation entity. Construct with NewQObject; the zero value is not
// usable (it has no id).
type QObject struct {
	id           uint64
	name         string
	creationTime float64
	priority     int
	attached     any
	valueFn      func() float64
	state        queuedState
}

// NewQObject creates a queueable object. creationTime must be >= 0.
// An empty name defaults to "QObject-<id>". Priority defaults to 1;
// lower values sort first.
func NewQObject(creationTime float64, name string) *QObject {
	if creationTime < 0 {
		logrus.Panicf("NewQObject: creation time must be >= 0, got %f", creationTime)
	}
	id := qObjectCounter.Add(1)
	if name == "" {
		name = fmt.Sprintf("QObject-%d", id)
	}
	return &QObject{
		id:           id,
		name:         name,
		creationTime: creationTime,
		priority:     1,
	}
}

// QueueObject satisfies Queueable, so a bare *QObject can be queued directly
// and entity structs can embed QObject to become queueable.
func (o *QObject) QueueObject() *QObject { return o }

// ID returns the process-wide unique sequence number assigned at construction.
func (o *QObject) ID() uint64 { return o.id }

// Name returns the object's name.
func (o *QObject) Name() string { return o.name }

// CreationTime returns the simulation time at which the object was created.
func (o *QObject) CreationTime() float64 { return o.creationTime }

// Priority returns the current priority. Lower values have higher precedence.
func (o *QObject) Priority() int { return o.priority }

// SetPriority mutates the priority. If the object is currently queued, the
// owning queue is notified so its discipline can re-evaluate the object's
// position (only the ranked discipline acts on this).
func (o *QObject) SetPriority(p int) {
	o.priority = p
	if o.state.queue != nil {
		o.state.queue.priorityChanged()
	}
}

// Attachment returns the opaque payload carried by the object, if any.
// The caller retains ownership; the object holds a non-owning reference.
func (o *QObject) Attachment() any { return o.attached }

// SetAttachment replaces the opaque payload.
func (o *QObject) SetAttachment(v any) { o.attached = v }

// SetValueFunc installs a lazily-evaluated scalar provider.
func (o *QObject) SetValueFunc(fn func() float64) { o.valueFn = fn }

// Value evaluates the installed value provider. Returns (0, false) if none
// is installed.
func (o *QObject) Value() (float64, bool) {
	if o.valueFn == nil {
		return 0, false
	}
	return o.valueFn(), true
}

// IsQueued reports whether the object is currently inside a queue.
func (o *QObject) IsQueued() bool { return o.state.queue != nil }

// Queue returns the queue currently holding the object, or nil.
func (o *QObject) Queue() QueueContainer { return o.state.queue }

// InQueue reports whether the object is currently held by q.
func (o *QObject) InQueue(q QueueContainer) bool { return o.state.queue == q }

// TimeEnteredQueue returns the entry time of the current (or most recent)
// queued-state interval.
func (o *QObject) TimeEnteredQueue() float64 { return o.state.timeEntered }

// TimeExitedQueue returns the exit time of the most recently closed interval.
func (o *QObject) TimeExitedQueue() float64 { return o.state.timeExited }

// TotalTimeQueued returns time-in-queue accumulated across all closed
// intervals. Re-queueing is legal; each interval adds to the total.
func (o *QObject) TotalTimeQueued() float64 { return o.state.totalTime }

// enterQueue opens the queued-state interval. Restricted to the Queue
// container. The object must not already be in a queue.
func (o *QObject) enterQueue(q QueueContainer, time float64, priority int, attached any) {
	if q == nil {
		logrus.Panicf("QObject %q: enterQueue with nil queue", o.name)
	}
	if o.state.queue != nil {
		logrus.Panicf("QObject %q: already in queue %q, cannot enter %q",
			o.name, o.state.queue.Name(), q.Name())
	}
	o.state.queue = q
	o.state.timeEntered = time
	o.priority = priority
	o.attached = attached
}

// exitQueue closes the queued-state interval at the given time, accumulating
// the elapsed wait into the total, and clears the back-reference so the
// object is no longer logically queued. Restricted to the Queue container.
func (o *QObject) exitQueue(time float64) {
	if o.state.queue == nil {
		logrus.Panicf("QObject %q: exitQueue while not in a queue", o.name)
	}
	o.state.timeExited = time
	o.state.totalTime += time - o.state.timeEntered
	o.state.queue = nil
}

// Compare defines the total order used by the ranked discipline:
// priority ascending, then time entered queue ascending, then id ascending.
// Returns a negative value if o sorts before other, positive if after.
// Equal ids with distinct references indicate a corrupted id counter; that
// branch is a defensive trap and is unreachable in correct code.
func (o *QObject) Compare(other *QObject) int {
	if o.priority != other.priority {
		if o.priority < other.priority {
			return -1
		}
		return 1
	}
	if o.state.timeEntered != other.state.timeEntered {
		if o.state.timeEntered < other.state.timeEntered {
			return -1
		}
		return 1
	}
	if o.id != other.id {
		if o.id < other.id {
			return -1
		}
		return 1
	}
	if o != other {
		logrus.Panicf("QObject: distinct objects %q and %q share id %d", o.name, other.name, o.id)
	}
	return 0
}

// orderedBefore reports whether a sorts strictly before b.
func orderedBefore(a, b *QObject) bool {
	return a.Compare(b) < 0
}

func (o *QObject) String() string {
	return fmt.Sprintf("QObject: (ID: %d, Name: %s, Priority: %d, Queued: %v)",
		o.id, o.name, o.priority, o.IsQueued())
}
