package database

import (
	"context"

	"github.com/xavierca1/ligue-crm/internal/board"
	"github.com/xavierca1/ligue-crm/internal/entity"
)

// OwnedLeads prende os repositórios a um único dono para o board.
type OwnedLeads struct {
	OwnerID      string
	Leads        entity.LeadRepositoryInterface
	Interactions entity.InteractionRepositoryInterface
}

var (
	_ board.LeadStore      = (*OwnedLeads)(nil)
	_ board.InteractionLog = (*OwnedLeads)(nil)
)

func NewOwnedLeads(ownerID string, leads entity.LeadRepositoryInterface, interactions entity.InteractionRepositoryInterface) *OwnedLeads {
	return &OwnedLeads{OwnerID: ownerID, Leads: leads, Interactions: interactions}
}

func (o *OwnedLeads) ListLeads(ctx context.Context) ([]entity.Lead, error) {
	return o.Leads.List(ctx, o.OwnerID, entity.LeadFilter{})
}

func (o *OwnedLeads) UpdateLeadStatus(ctx context.Context, leadID string, status entity.Stage) error {
	return o.Leads.UpdateStatus(ctx, o.OwnerID, leadID, status)
}

func (o *OwnedLeads) AppendInteraction(ctx context.Context, in *entity.Interaction) error {
	return o.Interactions.Create(ctx, o.OwnerID, in)
}
