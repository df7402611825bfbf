package usecase

import (
	"bytes"
	"context"
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/csvio"
)

type ExportLeadsUseCase struct {
	Repo entity.LeadRepositoryInterface
	Now  func() time.Time
}

func NewExportLeadsUseCase(repo entity.LeadRepositoryInterface) *ExportLeadsUseCase {
	return &ExportLeadsUseCase{Repo: repo, Now: time.Now}
}

func (uc *ExportLeadsUseCase) Execute(ctx context.Context, ownerID string, filter entity.LeadFilter) (*ExportLeadsOutput, error) {
	leads, err := uc.Repo.List(ctx, ownerID, filter)
	if err != nil {
		return nil, databaseError("erro ao listar leads", err)
	}

	var buf bytes.Buffer
	if err := csvio.Encode(&buf, leads); err != nil {
		return nil, &TechnicalError{Code: "EXPORT_ERROR", Message: err.Error(), Err: err}
	}

	return &ExportLeadsOutput{
		Filename: csvio.ExportFilename(uc.Now()),
		Data:     buf.Bytes(),
		Count:    len(leads),
	}, nil
}
