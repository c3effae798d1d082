package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand"

	"github.com/sirupsen/logrus"
)

// RandIntStream is what the random discipline needs from a random-number
// stream: a uniform integer draw on a closed range. Stream is the default
// implementation; any controllable stream can be injected.
type RandIntStream interface {
	RandInt(lo, hi int) int
}

// Stream is a controllable uniform random stream. It supports resetting to
// the start of the current substream, advancing to the next substream, and
// antithetic sampling (each uniform draw U is replaced by 1-U).
//
// Thread-safety: NOT thread-safe. Must be used from a single goroutine, like
// every other part of the simulation core.
type Stream struct {
	seed       int64
	substream  int64
	antithetic bool
	rng        *rand.Rand
}

// NewStream creates a stream positioned at the start of substream 0.
func NewStream(seed int64) *Stream {
	s := &Stream{seed: seed}
	s.reseed()
	return s
}

// Uniform returns the next draw on (0,1) honoring the antithetic setting.
func (s *Stream) Uniform() float64 {
	u := s.rng.Float64()
	if s.antithetic {
		return 1 - u
	}
	return u
}

// RandInt returns a uniform integer in [lo, hi]. Requires lo <= hi.
func (s *Stream) RandInt(lo, hi int) int {
	if lo > hi {
		logrus.Panicf("Stream.RandInt: invalid range [%d, %d]", lo, hi)
	}
	v := lo + int(s.Uniform()*float64(hi-lo+1))
	// antithetic draws include 1.0; clamp the open upper edge
	if v > hi {
		v = hi
	}
	return v
}

// Reset restarts the current substream from its beginning, reproducing the
// same sequence of draws.
func (s *Stream) Reset() { s.reseed() }

// AdvanceSubstream positions the stream at the start of the next substream,
// an independent sequence derived from the same master seed.
func (s *Stream) AdvanceSubstream() {
	s.substream++
	s.reseed()
}

// Substream returns the current substream index.
func (s *Stream) Substream() int64 { return s.substream }

// SetAntithetic toggles antithetic sampling for subsequent draws.
func (s *Stream) SetAntithetic(on bool) { s.antithetic = on }

// Antithetic reports whether antithetic sampling is active.
func (s *Stream) Antithetic() bool { return s.antithetic }

// reseed derives the substream seed from the master seed and substream
// index. Substream 0 uses the master seed directly so a plain NewStream(seed)
// reproduces rand.NewSource(seed) draws; later substreams XOR with a hash of
// the index for order-independent derivation.
func (s *Stream) reseed() {
	derived := s.seed
	if s.substream != 0 {
		derived ^= fnv1a64(fmt.Sprintf("substream_%d", s.substream))
	}
	s.rng = rand.New(rand.NewSource(derived))
}

// PartitionedRNG provides deterministic, isolated streams per subsystem.
// Draws in one subsystem never perturb another, so adding randomness to one
// part of a model does not shift the sequences seen elsewhere.
//
// Derivation formula: masterSeed XOR fnv1a64(subsystemName).
type PartitionedRNG struct {
	masterSeed int64
	subsystems map[string]*Stream
}

// NewPartitionedRNG creates a PartitionedRNG with the given master seed.
func NewPartitionedRNG(masterSeed int64) *PartitionedRNG {
	return &PartitionedRNG{
		masterSeed: masterSeed,
		subsystems: make(map[string]*Stream),
	}
}

// ForSubsystem returns a deterministically-seeded stream for the named
// subsystem. The same name always returns the same *Stream instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *Stream {
	if s, ok := p.subsystems[name]; ok {
		return s
	}
	s := NewStream(p.masterSeed ^ fnv1a64(name))
	p.subsystems[name] = s
	return s
}

// MasterSeed returns the seed used to derive all subsystem streams.
func (p *PartitionedRNG) MasterSeed() int64 { return p.masterSeed }

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
