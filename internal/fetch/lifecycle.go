package fetch

import (
	"time"
)

// Phase is the stage of a fetch lifecycle
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseLoaded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Request identifies one issued fetch. Key carries the resource the fetch is
// for (a launch ID for details, empty for the list).
type Request struct {
	seq uint64
	Key string
}

// Seq returns the request's sequence number, starting at 1
func (r Request) Seq() uint64 {
	return r.seq
}

// Option configures a State
type Option func(*options)

type options struct {
	staleGuard bool
}

// WithStaleGuard drops resolutions of any request that is not the most
// recently issued one. Without it the last resolution to arrive wins.
func WithStaleGuard() Option {
	return func(o *options) {
		o.staleGuard = true
	}
}

// State is the lifecycle of one remote resource:
//
//	Idle -> Loading -> Loaded | Failed, and Loaded | Failed -> Loading on retry.
//
// The error message is non-empty only in Failed. Data from the last success is
// kept through later failures. A State is owned by a single goroutine.
type State[T any] struct {
	phase       Phase
	data        T
	err         string
	lastUpdated time.Time

	staleGuard bool
	seq        uint64
}

// NewState returns an Idle state
func NewState[T any](opts ...Option) *State[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &State[T]{staleGuard: o.staleGuard}
}

// Begin marks the state Loading and issues a request. Calling Begin while
// already Loading issues another request; nothing is cancelled.
func (s *State[T]) Begin() Request {
	return s.BeginKey("")
}

// BeginKey is Begin for a keyed resource
func (s *State[T]) BeginKey(key string) Request {
	s.seq++
	s.phase = PhaseLoading
	s.err = ""
	return Request{seq: s.seq, Key: key}
}

// Succeed stores data and moves to Loaded. Returns false if the resolution
// was dropped as stale.
func (s *State[T]) Succeed(req Request, data T, at time.Time) bool {
	if s.stale(req) {
		return false
	}
	s.phase = PhaseLoaded
	s.data = data
	s.err = ""
	s.lastUpdated = at
	return true
}

// Fail records err and moves to Failed, keeping previously loaded data.
// Returns false if the resolution was dropped as stale.
func (s *State[T]) Fail(req Request, err error) bool {
	if s.stale(req) {
		return false
	}
	msg := "unknown error"
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	s.phase = PhaseFailed
	s.err = msg
	return true
}

// Reset returns to Idle and forgets data. Outstanding requests become stale
// when the guard is on.
func (s *State[T]) Reset() {
	var zero T
	s.seq++
	s.phase = PhaseIdle
	s.data = zero
	s.err = ""
	s.lastUpdated = time.Time{}
}

func (s *State[T]) stale(req Request) bool {
	return s.staleGuard && req.seq != s.seq
}

func (s *State[T]) Phase() Phase {
	return s.phase
}

func (s *State[T]) Data() T {
	return s.data
}

// Err returns the failure message, empty unless Failed
func (s *State[T]) Err() string {
	if s.phase != PhaseFailed {
		return ""
	}
	return s.err
}

func (s *State[T]) LastUpdated() time.Time {
	return s.lastUpdated
}

// Snapshot is a read-only copy of a State for rendering
type Snapshot[T any] struct {
	Phase       Phase
	Data        T
	Err         string
	LastUpdated time.Time
}

func (s *State[T]) Snapshot() Snapshot[T] {
	return Snapshot[T]{
		Phase:       s.phase,
		Data:        s.data,
		Err:         s.Err(),
		LastUpdated: s.lastUpdated,
	}
}
