package board

import (
	"context"
	"sync"
)

// Sequencer orders work per key: tickets for the same key run one at a time,
// in the order they were enqueued. Each key maps to the done channel of its
// most recent ticket, and every new ticket waits on the one before it.
//
// A nil *Sequencer hands out nil tickets, which never wait.
type Sequencer struct {
	mu    sync.Mutex
	tails map[string]chan struct{}
}

func NewSequencer() *Sequencer {
	return &Sequencer{tails: map[string]chan struct{}{}}
}

type Ticket struct {
	seq  *Sequencer
	key  string
	prev <-chan struct{}
	done chan struct{}
	once sync.Once
}

func (s *Sequencer) Enqueue(key string) *Ticket {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &Ticket{seq: s, key: key, prev: s.tails[key], done: make(chan struct{})}
	s.tails[key] = t.done
	return t
}

// Pending reports how many keys still have unreleased tickets.
func (s *Sequencer) Pending() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tails)
}

// Wait blocks until every earlier ticket for the same key has been released.
func (t *Ticket) Wait(ctx context.Context) error {
	if t == nil || t.prev == nil {
		return nil
	}
	select {
	case <-t.prev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release lets the next ticket for the key run. If the ticket gave up waiting,
// the hand-off is deferred until its predecessor finishes so the chain stays ordered.
func (t *Ticket) Release() {
	if t == nil {
		return
	}
	t.once.Do(func() {
		if t.prev == nil {
			t.finish()
			return
		}
		select {
		case <-t.prev:
			t.finish()
		default:
			go func() {
				<-t.prev
				t.finish()
			}()
		}
	})
}

func (t *Ticket) finish() {
	t.seq.mu.Lock()
	if t.seq.tails[t.key] == t.done {
		delete(t.seq.tails, t.key)
	}
	t.seq.mu.Unlock()
	close(t.done)
}
