package sim

import (
	"fmt"
	"sort"
)

// DisciplineKind names an ordering strategy for a Queue.
type DisciplineKind string

const (
	// FIFO serves items in arrival order.
	FIFO DisciplineKind = "fifo"
	// LIFO serves the most recently arrived item first.
	LIFO DisciplineKind = "lifo"
	// Ranked serves items in the QObject total order (priority, entry time, id).
	Ranked DisciplineKind = "ranked"
	// Random serves a uniformly drawn item, using the queue's random stream.
	Random DisciplineKind = "random"
)

// validDisciplines is the set of recognized discipline names.
// Shared by config validation and the discipline factory.
var validDisciplines = map[DisciplineKind]bool{
	FIFO:   true,
	LIFO:   true,
	Ranked: true,
	Random: true,
}

// IsValidDiscipline returns true if name is a recognized discipline.
func IsValidDiscipline(name string) bool {
	return validDisciplines[DisciplineKind(name)]
}

// discipline is the strategy contract shared by the four ordering
// disciplines. A discipline holds no items itself; it operates on the
// queue's backing slice by reference. Exactly one instance is live per
// queue at a time.
type discipline[T Queueable] interface {
	// add inserts item into q's backing slice at the position the
	// discipline dictates.
	add(q *Queue[T], item T)
	// peekNext returns, without removing, the item removeNext would return.
	// The random discipline redraws (and caches) an index on every call, so
	// under it peekNext consumes randomness and is not idempotent.
	peekNext(q *Queue[T]) (T, bool)
	// removeNext removes and returns the discipline-correct item.
	removeNext(q *Queue[T]) (T, bool)
	// switchedTo is invoked exactly once when the discipline becomes active
	// on q, and must bring the existing backing slice into the shape the
	// discipline requires.
	switchedTo(q *Queue[T])
	// priorityChanged is invoked when an already-queued item's priority is
	// mutated. Only the ranked discipline acts.
	priorityChanged(q *Queue[T])
	kind() DisciplineKind
}

// newDiscipline creates the strategy for the given kind.
// Panics on unrecognized kinds.
func newDiscipline[T Queueable](kind DisciplineKind) discipline[T] {
	switch kind {
	case FIFO:
		return &fifoDiscipline[T]{}
	case LIFO:
		return &lifoDiscipline[T]{}
	case Ranked:
		return &rankedDiscipline[T]{}
	case Random:
		return &randomDiscipline[T]{}
	default:
		panic(fmt.Sprintf("unknown queue discipline %q", kind))
	}
}

// === FIFO ===

type fifoDiscipline[T Queueable] struct{}

func (d *fifoDiscipline[T]) add(q *Queue[T], item T) {
	q.items = append(q.items, item)
}

func (d *fifoDiscipline[T]) peekNext(q *Queue[T]) (T, bool) {
	if len(q.items) == 0 {
		var zero T
		return zero, false
	}
	return q.items[0], true
}

func (d *fifoDiscipline[T]) removeNext(q *Queue[T]) (T, bool) {
	if len(q.items) == 0 {
		var zero T
		return zero, false
	}
	return q.removeAt(0), true
}

// switchedTo is a no-op: the existing order is adopted as arrival order.
// Switching into FIFO from a ranked order does not reconstruct true
// historical arrival order.
func (d *fifoDiscipline[T]) switchedTo(_ *Queue[T]) {}

func (d *fifoDiscipline[T]) priorityChanged(_ *Queue[T]) {}

func (d *fifoDiscipline[T]) kind() DisciplineKind { return FIFO }

// === LIFO ===

type lifoDiscipline[T Queueable] struct{}

func (d *lifoDiscipline[T]) add(q *Queue[T], item T) {
	q.items = append(q.items, item)
}

func (d *lifoDiscipline[T]) peekNext(q *Queue[T]) (T, bool) {
	n := len(q.items)
	if n == 0 {
		var zero T
		return zero, false
	}
	return q.items[n-1], true
}

func (d *lifoDiscipline[T]) removeNext(q *Queue[T]) (T, bool) {
	n := len(q.items)
	if n == 0 {
		var zero T
		return zero, false
	}
	return q.removeAt(n - 1), true
}

func (d *lifoDiscipline[T]) switchedTo(_ *Queue[T]) {}

func (d *lifoDiscipline[T]) priorityChanged(_ *Queue[T]) {}

func (d *lifoDiscipline[T]) kind() DisciplineKind { return LIFO }

// === Ranked ===

type rankedDiscipline[T Queueable] struct{}

// add performs an ordered insertion under the QObject total order.
// Appending when the new item is >= the current last element is the fast
// path; otherwise the slice is scanned from the head and the item is
// inserted before the first element it sorts strictly below.
func (d *rankedDiscipline[T]) add(q *Queue[T], item T) {
	n := len(q.items)
	obj := item.QueueObject()
	if n == 0 || !orderedBefore(obj, q.items[n-1].QueueObject()) {
		q.items = append(q.items, item)
		return
	}
	for i := 0; i < n; i++ {
		if orderedBefore(obj, q.items[i].QueueObject()) {
			q.insertAt(i, item)
			return
		}
	}
	q.items = append(q.items, item)
}

func (d *rankedDiscipline[T]) peekNext(q *Queue[T]) (T, bool) {
	if len(q.items) == 0 {
		var zero T
		return zero, false
	}
	return q.items[0], true
}

func (d *rankedDiscipline[T]) removeNext(q *Queue[T]) (T, bool) {
	if len(q.items) == 0 {
		var zero T
		return zero, false
	}
	return q.removeAt(0), true
}

// switchedTo sorts the backing slice: arbitrary prior order must be
// normalized before position 0 can be relied on as "next".
func (d *rankedDiscipline[T]) switchedTo(q *Queue[T]) {
	d.sortItems(q)
}

// priorityChanged re-sorts: a changed priority can invalidate the sort
// position anywhere in the slice.
func (d *rankedDiscipline[T]) priorityChanged(q *Queue[T]) {
	d.sortItems(q)
}

func (d *rankedDiscipline[T]) sortItems(q *Queue[T]) {
	sort.SliceStable(q.items, func(i, j int) bool {
		return orderedBefore(q.items[i].QueueObject(), q.items[j].QueueObject())
	})
}

func (d *rankedDiscipline[T]) kind() DisciplineKind { return Ranked }

// === Random ===

// randomDiscipline appends on add (insertion order is irrelevant) and draws
// a uniform index from the queue's stream at selection time, so randomness
// is only consumed on peek/remove, never on insertion.
type randomDiscipline[T Queueable] struct {
	// lastIndex caches the index drawn by the most recent peekNext so the
	// following removeNext removes the element that was peeked.
	lastIndex int
}

func (d *randomDiscipline[T]) add(q *Queue[T], item T) {
	q.items = append(q.items, item)
}

// peekNext draws a fresh uniform index on every call and caches it.
// Two consecutive calls can return different elements, and every call
// consumes randomness from the queue's stream.
func (d *randomDiscipline[T]) peekNext(q *Queue[T]) (T, bool) {
	n := len(q.items)
	if n == 0 {
		var zero T
		return zero, false
	}
	d.lastIndex = q.stream().RandInt(0, n-1)
	return q.items[d.lastIndex], true
}

func (d *randomDiscipline[T]) removeNext(q *Queue[T]) (T, bool) {
	if _, ok := d.peekNext(q); !ok {
		var zero T
		return zero, false
	}
	return q.removeAt(d.lastIndex), true
}

func (d *randomDiscipline[T]) switchedTo(_ *Queue[T]) {}

func (d *randomDiscipline[T]) priorityChanged(_ *Queue[T]) {}

func (d *randomDiscipline[T]) kind() DisciplineKind { return Random }
