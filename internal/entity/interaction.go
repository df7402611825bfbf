package entity

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// InteractionStageChange tags audit entries written by board moves.
const InteractionStageChange = "StageChange"

type Interaction struct {
	ID        string    `json:"id"`
	LeadID    string    `json:"lead_id"`
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func NewInteraction(leadID, typ, content string) *Interaction {
	return &Interaction{
		ID:        uuid.New().String(),
		LeadID:    leadID,
		Type:      typ,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// NewStageChangeInteraction describes a move from one pipeline stage to another.
func NewStageChangeInteraction(leadID string, from, to Stage) *Interaction {
	return NewInteraction(leadID, InteractionStageChange,
		fmt.Sprintf("Status changed from %q to %q.", string(from), string(to)))
}

// StageChanged is published after a move has been persisted.
type StageChanged struct {
	LeadID    string    `json:"lead_id"`
	OwnerID   string    `json:"owner_id"`
	LeadName  string    `json:"lead_name"`
	From      Stage     `json:"from"`
	To        Stage     `json:"to"`
	ChangedAt time.Time `json:"changed_at"`
}

type InteractionRepositoryInterface interface {
	Create(ctx context.Context, ownerID string, in *Interaction) error
	ListByLead(ctx context.Context, ownerID, leadID string) ([]Interaction, error)
}
