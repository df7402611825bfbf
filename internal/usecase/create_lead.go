package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type CreateLeadUseCase struct {
	Repo entity.LeadRepositoryInterface
}

func NewCreateLeadUseCase(repo entity.LeadRepositoryInterface) *CreateLeadUseCase {
	return &CreateLeadUseCase{Repo: repo}
}

func (uc *CreateLeadUseCase) Execute(ctx context.Context, ownerID string, input CreateLeadInput) (*entity.Lead, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)
	input.Company = strings.TrimSpace(input.Company)
	input.Source = strings.TrimSpace(input.Source)

	if err := validateInput(input); err != nil {
		return nil, err
	}

	lead, err := entity.NewLead(ownerID, input.Name, entity.Stage(input.Status))
	if err != nil {
		return nil, &DomainError{Code: CodeValidation, Message: err.Error(), Err: err}
	}
	lead.Email = input.Email
	lead.Phone = input.Phone
	lead.Company = input.Company
	lead.Source = input.Source
	lead.Notes = input.Notes

	if err := uc.Repo.Create(ctx, lead); err != nil {
		if errors.Is(err, entity.ErrInvalidStage) {
			return nil, &DomainError{Code: CodeValidation, Message: err.Error(), Err: err}
		}
		return nil, databaseError("erro ao salvar lead", err)
	}
	return lead, nil
}
