package rendezvous

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSignal_PostThenWaitDeliversExactlyOnce(t *testing.T) {
	s := New()
	s.Post()

	done := make(chan struct{})
	go func() {
		s.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait never returned after a prior Post")
	}

	assert.False(t, s.TryWait(), "the single pending post must be consumed by exactly one Wait")
}

func TestSignal_WaitBlocksUntilPost(t *testing.T) {
	s := New()
	waited := make(chan struct{})
	go func() {
		s.Wait()
		close(waited)
	}()

	select {
	case <-waited:
		t.Fatal("Wait returned before Post")
	case <-time.After(20 * time.Millisecond):
	}

	s.Post()
	select {
	case <-waited:
	case <-time.After(time.Second):
		t.Fatal("Wait never returned after Post")
	}
}

func TestSignal_RepeatedPostIsCoalesced(t *testing.T) {
	s := New()
	s.Post()
	s.Post()
	s.Post()

	assert.True(t, s.TryWait(), "first wait should find the coalesced post")
	assert.False(t, s.TryWait(), "only one post should have been buffered")
}

func TestSignal_TryWaitWithoutPostDoesNotBlock(t *testing.T) {
	s := New()
	assert.False(t, s.TryWait())
}
