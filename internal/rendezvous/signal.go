// Package rendezvous implements the single-slot auto-reset signal the
// parallel driver uses to hand a slave's worker goroutine its "go ahead" and
// to wait for its "done" without per-step goroutine creation.
//
// The original container used a platform mutex left locked as the resting
// state: posting the signal unlocked it, waiting for it locked it again.
// Go's standard library doesn't expose a mutex usable that way from a
// foreign goroutine, so the same one-slot, auto-reset behavior is built on
// a buffered channel of capacity 1, which gives the identical semantics
// (post is a non-blocking send, wait is a receive) without abusing sync.Mutex.
package rendezvous

// Signal is a single-slot, auto-reset synchronization primitive. At most one
// pending post is remembered; Post never blocks and Wait consumes exactly
// one post per call.
type Signal struct {
	ch chan struct{}
}

// New returns a ready-to-use Signal, initially not posted.
func New() *Signal {
	return &Signal{ch: make(chan struct{}, 1)}
}

// Post marks the signal as posted. If it is already posted, Post is a no-op:
// the slot holds at most one pending wakeup.
func (s *Signal) Post() {
	select {
	case s.ch <- struct{}{}:
	default:
	}
}

// Wait blocks until the signal has been posted, then consumes the post.
func (s *Signal) Wait() {
	<-s.ch
}

// TryWait consumes a pending post if one is available and reports whether
// it found one, without blocking.
func (s *Signal) TryWait() bool {
	select {
	case <-s.ch:
		return true
	default:
		return false
	}
}
