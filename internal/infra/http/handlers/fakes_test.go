package handlers

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// fakeCRM guarda leads e interações em memória, separados por dono.
type fakeCRM struct {
	mu           sync.Mutex
	leads        map[string]entity.Lead
	interactions []entity.Interaction
	failFind     error
	failStatus   error
	failAudit    error
}

func newFakeCRM(leads ...entity.Lead) *fakeCRM {
	f := &fakeCRM{leads: map[string]entity.Lead{}}
	for _, l := range leads {
		f.leads[l.ID] = l
	}
	return f
}

func (f *fakeCRM) Create(_ context.Context, l *entity.Lead) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.leads[l.ID] = *l
	return nil
}

func (f *fakeCRM) BulkCreate(_ context.Context, leads []*entity.Lead) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range leads {
		f.leads[l.ID] = *l
	}
	return nil
}

func (f *fakeCRM) FindByID(_ context.Context, ownerID, id string) (*entity.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFind != nil {
		return nil, f.failFind
	}
	l, ok := f.leads[id]
	if !ok || l.OwnerID != ownerID {
		return nil, entity.ErrLeadNotFound
	}
	return &l, nil
}

func (f *fakeCRM) List(_ context.Context, ownerID string, filter entity.LeadFilter) ([]entity.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []entity.Lead{}
	for _, l := range f.leads {
		if l.OwnerID != ownerID || (filter.Status != "" && l.Status != filter.Status) {
			continue
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeCRM) UpdateStatus(_ context.Context, ownerID, id string, status entity.Stage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failStatus != nil {
		return f.failStatus
	}
	l, ok := f.leads[id]
	if !ok || l.OwnerID != ownerID {
		return entity.ErrLeadNotFound
	}
	l.Status = status
	f.leads[id] = l
	return nil
}

func (f *fakeCRM) ListByLead(_ context.Context, ownerID, leadID string) ([]entity.Interaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Interaction
	for _, in := range f.interactions {
		if in.LeadID == leadID {
			out = append(out, in)
		}
	}
	return out, nil
}

func (f *fakeCRM) status(id string) entity.Stage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.leads[id].Status
}

// interactionLog satisfaz entity.InteractionRepositoryInterface sobre o mesmo fakeCRM.
type interactionLog struct{ *fakeCRM }

func (l interactionLog) Create(_ context.Context, ownerID string, in *entity.Interaction) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failAudit != nil {
		return l.failAudit
	}
	if lead, ok := l.leads[in.LeadID]; !ok || lead.OwnerID != ownerID {
		return entity.ErrLeadNotFound
	}
	l.interactions = append(l.interactions, *in)
	return nil
}

var errDown = errors.New("database unavailable")
