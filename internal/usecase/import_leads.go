package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/csvio"
)

// ImportLeadsUseCase lê uma planilha CSV e grava as linhas válidas de uma vez.
type ImportLeadsUseCase struct {
	Repo entity.LeadRepositoryInterface
}

func NewImportLeadsUseCase(repo entity.LeadRepositoryInterface) *ImportLeadsUseCase {
	return &ImportLeadsUseCase{Repo: repo}
}

func (uc *ImportLeadsUseCase) Execute(ctx context.Context, ownerID string, r io.Reader) (*ImportLeadsOutput, error) {
	records, err := csvio.Decode(r)
	if err != nil {
		return nil, &DomainError{Code: CodeInvalidCSV, Message: err.Error(), Err: err}
	}

	out := &ImportLeadsOutput{}
	leads := make([]*entity.Lead, 0, len(records))
	for _, rec := range records {
		lead, err := leadFromRecord(ownerID, rec)
		if err != nil {
			out.ErrorCount++
			out.Errors = append(out.Errors, fmt.Sprintf("linha %d: %v", rec.Line, err))
			continue
		}
		leads = append(leads, lead)
	}

	if len(leads) == 0 {
		return out, &DomainError{Code: CodeNoValidLeads, Message: "nenhum lead válido encontrado no arquivo"}
	}

	if err := uc.Repo.BulkCreate(ctx, leads); err != nil {
		return nil, databaseError("erro ao importar leads", err)
	}
	out.ImportedCount = len(leads)
	return out, nil
}

func leadFromRecord(ownerID string, rec csvio.Record) (*entity.Lead, error) {
	if rec.Name == "" {
		return nil, errors.New("nome é obrigatório")
	}
	status := entity.DefaultStage
	if rec.Status != "" {
		st, err := entity.ParseStage(rec.Status)
		if err != nil {
			return nil, fmt.Errorf("status inválido %q", rec.Status)
		}
		status = st
	}

	lead, err := entity.NewLead(ownerID, rec.Name, status)
	if err != nil {
		return nil, err
	}
	lead.Email = rec.Email
	lead.Phone = rec.Phone
	lead.Company = rec.Company
	lead.Source = rec.Source
	lead.Notes = rec.Notes
	return lead, nil
}
