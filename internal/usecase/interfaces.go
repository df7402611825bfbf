package usecase

import (
	"context"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// TokenGenerator cria tokens de sessão opacos.
type TokenGenerator func() (string, error)

type LeadDetailsReader interface {
	FindByID(ctx context.Context, ownerID, id string) (*entity.Lead, error)
}

type InteractionLister interface {
	ListByLead(ctx context.Context, ownerID, leadID string) ([]entity.Interaction, error)
}
