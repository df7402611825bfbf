package usecase

import (
	"context"
	"errors"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// LeadDetailsUseCase monta o lead com o histórico de interações, mais recentes primeiro.
type LeadDetailsUseCase struct {
	Leads        LeadDetailsReader
	Interactions InteractionLister
}

func NewLeadDetailsUseCase(leads LeadDetailsReader, interactions InteractionLister) *LeadDetailsUseCase {
	return &LeadDetailsUseCase{Leads: leads, Interactions: interactions}
}

func (uc *LeadDetailsUseCase) Execute(ctx context.Context, ownerID, leadID string) (*LeadDetailsOutput, error) {
	lead, err := uc.Leads.FindByID(ctx, ownerID, leadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, &DomainError{Code: CodeLeadNotFound, Message: err.Error(), Err: err}
		}
		return nil, databaseError("erro ao buscar lead", err)
	}

	interactions, err := uc.Interactions.ListByLead(ctx, ownerID, leadID)
	if err != nil {
		return nil, databaseError("erro ao buscar interações", err)
	}
	if interactions == nil {
		interactions = []entity.Interaction{}
	}

	return &LeadDetailsOutput{Lead: *lead, Interactions: interactions}, nil
}
