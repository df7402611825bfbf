package board

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// MockLeadStore
type MockLeadStore struct {
	mock.Mock
}

func (m *MockLeadStore) ListLeads(ctx context.Context) ([]entity.Lead, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Lead), args.Error(1)
}

func (m *MockLeadStore) UpdateLeadStatus(ctx context.Context, leadID string, status entity.Stage) error {
	args := m.Called(ctx, leadID, status)
	return args.Error(0)
}

// MockInteractionLog
type MockInteractionLog struct {
	mock.Mock
}

func (m *MockInteractionLog) AppendInteraction(ctx context.Context, in *entity.Interaction) error {
	args := m.Called(ctx, in)
	return args.Error(0)
}

// MockEventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishStageChanged(ctx context.Context, ev entity.StageChanged) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

// memoryStore is an in-memory LeadStore + InteractionLog used where call
// ordering matters more than call expectations.
type memoryStore struct {
	mu           sync.Mutex
	leads        map[string]entity.Lead
	order        []string
	calls        []entity.Stage
	fail         map[entity.Stage]error
	gate         map[entity.Stage]chan struct{}
	interactions []*entity.Interaction
	// afterList runs once, after the next ListLeads has taken its snapshot.
	afterList func()
}

func newMemoryStore(leads ...entity.Lead) *memoryStore {
	s := &memoryStore{
		leads: map[string]entity.Lead{},
		fail:  map[entity.Stage]error{},
		gate:  map[entity.Stage]chan struct{}{},
	}
	for _, l := range leads {
		s.leads[l.ID] = l
		s.order = append(s.order, l.ID)
	}
	return s
}

func (s *memoryStore) ListLeads(ctx context.Context) ([]entity.Lead, error) {
	s.mu.Lock()
	out := make([]entity.Lead, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.leads[id])
	}
	hook := s.afterList
	s.afterList = nil
	s.mu.Unlock()

	if hook != nil {
		hook()
	}
	return out, nil
}

func (s *memoryStore) UpdateLeadStatus(ctx context.Context, leadID string, status entity.Stage) error {
	s.mu.Lock()
	s.calls = append(s.calls, status)
	gate := s.gate[status]
	err := s.fail[status]
	s.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.leads[leadID]
	if !ok {
		return entity.ErrLeadNotFound
	}
	s.leads[leadID] = l.WithStatus(status)
	return nil
}

func (s *memoryStore) AppendInteraction(ctx context.Context, in *entity.Interaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interactions = append(s.interactions, in)
	return nil
}

func (s *memoryStore) status(id string) entity.Stage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.leads[id].Status
}

func (s *memoryStore) storeCalls() []entity.Stage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Stage, len(s.calls))
	copy(out, s.calls)
	return out
}
