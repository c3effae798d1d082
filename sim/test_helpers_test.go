package sim

// Shared test fixtures for the queueing core.

// testClock is a hand-advanced TimeSource.
type testClock struct {
	now float64
}

func (c *testClock) Time() float64 { return c.now }

// scriptedStream returns a fixed sequence of draws, clamped to [lo, hi].
// Used to pin down exactly which index the random discipline selects.
type scriptedStream struct {
	draws []int
	next  int
}

func (s *scriptedStream) RandInt(lo, hi int) int {
	v := s.draws[s.next%len(s.draws)]
	s.next++
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return v
}

// recordingListener captures every notification in order.
type recordingListener struct {
	statuses []QueueStatus
	items    []*QObject
}

func (r *recordingListener) Changed(status QueueStatus, _ *Queue[*QObject], item *QObject) {
	r.statuses = append(r.statuses, status)
	r.items = append(r.items, item)
}

// mustPanic runs fn and reports whether it panicked.
func mustPanic(fn func()) (panicked bool) {
	defer func() {
		if recover() != nil {
			panicked = true
		}
	}()
	fn()
	return false
}
