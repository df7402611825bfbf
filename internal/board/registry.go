package board

import "sync"

// Registry keeps one board per signed-in user.
type Registry struct {
	mu     sync.Mutex
	boards map[string]*Board
	build  func(ownerID string) *Board
}

func NewRegistry(build func(ownerID string) *Board) *Registry {
	return &Registry{boards: map[string]*Board{}, build: build}
}

func (r *Registry) Get(ownerID string) *Board {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.boards[ownerID]
	if !ok {
		b = r.build(ownerID)
		r.boards[ownerID] = b
	}
	return b
}

// Peek returns the owner's board only if one was already built.
func (r *Registry) Peek(ownerID string) (*Board, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.boards[ownerID]
	return b, ok
}

// Drop forgets the owner's board; the next Get starts from a fresh snapshot.
func (r *Registry) Drop(ownerID string) {
	r.mu.Lock()
	delete(r.boards, ownerID)
	r.mu.Unlock()
}
