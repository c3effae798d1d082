// The Model is the minimal host a queueing core needs: a simulation clock,
// the element lifecycle (initialize, after-replication, removed-from-model),
// and a partitioned RNG shared by the run. It is not an event calendar; the
// caller advances the clock.

package sim

import "github.com/sirupsen/logrus"

// TimeSource exposes the current simulation time. Time is monotonically
// non-decreasing within a run.
type TimeSource interface {
	Time() float64
}

// ModelElement is anything participating in the replication lifecycle.
// Queue implements it.
type ModelElement interface {
	// Initialize is invoked at the start of each replication.
	Initialize()
	// AfterReplication is invoked when a replication ends.
	AfterReplication()
	// RemovedFromModel is invoked once when the element leaves the model.
	RemovedFromModel()
}

// Model owns the simulation clock and the registered elements, and drives
// the lifecycle hooks across replications. One Model per logical simulation;
// parallel replications need one Model (and one set of queues) each.
type Model struct {
	name        string
	clock       float64
	elements    []ModelElement
	rng         *PartitionedRNG
	replication int
}

// NewModel creates a model with clock at 0 and a partitioned RNG keyed by
// the master seed.
func NewModel(name string, seed int64) *Model {
	return &Model{
		name: name,
		rng:  NewPartitionedRNG(seed),
	}
}

// Name returns the model's name.
func (m *Model) Name() string { return m.name }

// Time returns the current simulation time.
func (m *Model) Time() float64 { return m.clock }

// AdvanceTo moves the clock forward to t. Moving the clock backwards is a
// programmer error and panics: entry/exit timestamps must never regress.
func (m *Model) AdvanceTo(t float64) {
	if t < m.clock {
		logrus.Panicf("Model %q: clock moved backwards from %f to %f", m.name, m.clock, t)
	}
	m.clock = t
}

// RNG returns the model's partitioned random-number generator.
func (m *Model) RNG() *PartitionedRNG { return m.rng }

// Replication returns the 1-based index of the replication in progress,
// or 0 before the first one starts.
func (m *Model) Replication() int { return m.replication }

// Register adds an element to the model. Elements are initialized in
// registration order at each replication start.
func (m *Model) Register(e ModelElement) {
	if e == nil {
		logrus.Panicf("Model %q: element must not be nil", m.name)
	}
	m.elements = append(m.elements, e)
}

// Remove detaches an element from the model, invoking its RemovedFromModel
// hook. Returns false if the element was not registered.
func (m *Model) Remove(e ModelElement) bool {
	for i, reg := range m.elements {
		if reg == e {
			m.elements = append(m.elements[:i], m.elements[i+1:]...)
			e.RemovedFromModel()
			return true
		}
	}
	return false
}

// RunReplications executes n replications. Each replication resets the clock
// to 0, initializes every element, runs body, then fires AfterReplication on
// every element. body receives the 1-based replication index.
func (m *Model) RunReplications(n int, body func(rep int)) {
	if n < 1 {
		logrus.Panicf("Model %q: replication count must be >= 1, got %d", m.name, n)
	}
	if body == nil {
		logrus.Panicf("Model %q: replication body must not be nil", m.name)
	}
	for rep := 1; rep <= n; rep++ {
		m.replication = rep
		m.clock = 0
		logrus.Debugf("Model %q: replication %d starting", m.name, rep)
		for _, e := range m.elements {
			e.Initialize()
		}
		body(rep)
		for _, e := range m.elements {
			e.AfterReplication()
		}
		logrus.Debugf("Model %q: replication %d ended at time %f", m.name, rep, m.clock)
	}
}
