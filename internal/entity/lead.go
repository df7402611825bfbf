package entity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Lead struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"-"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Company   string    `json:"company,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	Source    string    `json:"source,omitempty"`
	Status    Stage     `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewLead builds a lead owned by ownerID. An empty status falls back to DefaultStage.
func NewLead(ownerID, name string, status Stage) (*Lead, error) {
	if status == "" {
		status = DefaultStage
	}
	now := time.Now()
	l := &Lead{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Name:      strings.TrimSpace(name),
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Lead) Validate() error {
	if l.OwnerID == "" {
		return errors.New("owner is required")
	}
	if strings.TrimSpace(l.Name) == "" {
		return errors.New("nome é obrigatório")
	}
	if !PipelineStages.Contains(l.Status) {
		return ErrInvalidStage
	}
	return nil
}

// WithStatus returns a copy of l with a new status; l is left untouched.
func (l Lead) WithStatus(st Stage) Lead {
	l.Status = st
	return l
}

type LeadFilter struct {
	Status Stage
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	BulkCreate(ctx context.Context, leads []*Lead) error
	FindByID(ctx context.Context, ownerID, id string) (*Lead, error)
	List(ctx context.Context, ownerID string, filter LeadFilter) ([]Lead, error)
	UpdateStatus(ctx context.Context, ownerID, id string, status Stage) error
}
