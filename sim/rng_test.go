package sim

import (
	"math"
	"testing"
)

// === Stream Tests ===

func TestStream_DeterministicBySeed(t *testing.T) {
	tests := []struct {
		name string
		seed int64
	}{
		{"positive seed", 42},
		{"zero seed", 0},
		{"negative seed", -1},
		{"max int64", math.MaxInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s1 := NewStream(tt.seed)
			s2 := NewStream(tt.seed)
			for i := 0; i < 5; i++ {
				v1, v2 := s1.RandInt(0, 100), s2.RandInt(0, 100)
				if v1 != v2 {
					t.Errorf("draw %d: got %d and %d, want identical", i, v1, v2)
				}
			}
		})
	}
}

func TestStream_RandInt_StaysInRange(t *testing.T) {
	s := NewStream(7)
	for i := 0; i < 1000; i++ {
		v := s.RandInt(3, 9)
		if v < 3 || v > 9 {
			t.Fatalf("RandInt(3, 9) = %d, out of range", v)
		}
	}
}

func TestStream_RandInt_DegenerateRange(t *testing.T) {
	s := NewStream(7)
	if v := s.RandInt(4, 4); v != 4 {
		t.Errorf("RandInt(4, 4) = %d, want 4", v)
	}
}

func TestStream_RandInt_InvalidRange_Panics(t *testing.T) {
	s := NewStream(7)
	if !mustPanic(func() { s.RandInt(5, 4) }) {
		t.Error("RandInt with lo > hi did not panic")
	}
}

func TestStream_Reset_ReproducesSequence(t *testing.T) {
	// BDD: Reset restarts the current substream from its beginning
	s := NewStream(123)
	first := make([]int, 4)
	for i := range first {
		first[i] = s.RandInt(0, 1000)
	}

	s.Reset()

	for i := range first {
		if v := s.RandInt(0, 1000); v != first[i] {
			t.Errorf("draw %d after Reset: got %d, want %d", i, v, first[i])
		}
	}
}

func TestStream_AdvanceSubstream_ChangesSequence(t *testing.T) {
	s1 := NewStream(123)
	s2 := NewStream(123)
	s2.AdvanceSubstream()

	if s2.Substream() != 1 {
		t.Fatalf("Substream: got %d, want 1", s2.Substream())
	}

	same := true
	for i := 0; i < 5; i++ {
		if s1.RandInt(0, 1000000) != s2.RandInt(0, 1000000) {
			same = false
		}
	}
	if same {
		t.Error("substream 1 reproduced substream 0's sequence")
	}
}

func TestStream_Antithetic_ComplementsUniform(t *testing.T) {
	// BDD: with antithetic on, each draw is 1-U of the plain draw
	plain := NewStream(55)
	anti := NewStream(55)
	anti.SetAntithetic(true)

	for i := 0; i < 5; i++ {
		u := plain.Uniform()
		v := anti.Uniform()
		if math.Abs((u+v)-1.0) > 1e-15 {
			t.Errorf("draw %d: u=%f v=%f, want u+v=1", i, u, v)
		}
	}
	if !anti.Antithetic() {
		t.Error("Antithetic() lost the toggle")
	}
}

// === PartitionedRNG Tests ===

func TestPartitionedRNG_DeterministicDerivation(t *testing.T) {
	// BDD: Same seed+name produces same sequence
	p1 := NewPartitionedRNG(42)
	p2 := NewPartitionedRNG(42)

	for i := 0; i < 3; i++ {
		v1 := p1.ForSubsystem("arrivals").RandInt(0, 1000)
		v2 := p2.ForSubsystem("arrivals").RandInt(0, 1000)
		if v1 != v2 {
			t.Errorf("draw %d: got %d and %d, want identical", i, v1, v2)
		}
	}
}

func TestPartitionedRNG_SubsystemIsolation(t *testing.T) {
	// BDD: Drawing from subsystem A doesn't affect subsystem B
	pA := NewPartitionedRNG(42)
	pB := NewPartitionedRNG(42)

	// Perturb A's "other" subsystem only
	for i := 0; i < 10; i++ {
		pA.ForSubsystem("other").RandInt(0, 1000)
	}

	for i := 0; i < 3; i++ {
		v1 := pA.ForSubsystem("services").RandInt(0, 1000)
		v2 := pB.ForSubsystem("services").RandInt(0, 1000)
		if v1 != v2 {
			t.Errorf("draw %d: isolation broken, got %d and %d", i, v1, v2)
		}
	}
}

func TestPartitionedRNG_CachesStreamInstance(t *testing.T) {
	p := NewPartitionedRNG(42)
	if p.ForSubsystem("x") != p.ForSubsystem("x") {
		t.Error("ForSubsystem returned distinct instances for the same name")
	}
	if p.MasterSeed() != 42 {
		t.Errorf("MasterSeed: got %d, want 42", p.MasterSeed())
	}
}
