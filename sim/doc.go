// Package sim provides the queueing core of the desim discrete-event
// simulation library.
//
// # Reading Guide
//
// Start with these three files to understand the core:
//   - qobject.go: QObject identity, the queued-state interval, and the total
//     ordering relation (priority, entry time, id)
//   - discipline.go: the FIFO/LIFO/Ranked/Random ordering strategy family
//   - queue.go: the Queue container tying state transitions to statistics
//     and listener notification
//
// # Architecture
//
// A Queue owns a backing slice of Queueable items and exactly one active
// discipline. The discipline decides where add inserts and which item
// peekNext/removeNext select; the queue drives entry/exit timestamps, the
// length and wait-time accumulators, and the listener registry. Disciplines
// can be hot-swapped during a run; the incoming discipline normalizes the
// backing slice in its switch hook.
//
// The host-side collaborators are deliberately small:
//   - TimeSource: current simulation time (Model implements it)
//   - TimeWeightedIfc / ObservationIfc: injected statistics accumulators
//   - RandIntStream: the uniform stream consumed by the random discipline
//   - ModelElement: the initialize / after-replication / removed-from-model
//     lifecycle driven by Model.RunReplications
//
// # Determinism
//
// Two runs with the same master seed and the same call sequence produce
// identical results: ordering ties are broken by a process-wide unique id,
// and all randomness flows through controllable streams (see rng.go).
package sim
