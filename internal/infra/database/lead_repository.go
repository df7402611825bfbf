package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

const leadColumns = `id, user_id, name, email, phone, company, notes, source, status, created_at, updated_at`

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

var _ entity.LeadRepositoryInterface = (*LeadRepository)(nil)

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (` + leadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.DB.ExecContext(ctx, query,
		lead.ID,
		lead.OwnerID,
		lead.Name,
		nullString(lead.Email),
		nullString(lead.Phone),
		nullString(lead.Company),
		nullString(lead.Notes),
		nullString(lead.Source),
		string(lead.Status),
		lead.CreatedAt,
		lead.UpdatedAt,
	)
	if err != nil {
		if pgCode(err) == codeCheckViolation {
			return entity.ErrInvalidStage
		}
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

// BulkCreate grava todos os leads numa única transação via COPY.
func (r *LeadRepository) BulkCreate(ctx context.Context, leads []*entity.Lead) error {
	if len(leads) == 0 {
		return nil
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("leads",
		"id", "user_id", "name", "email", "phone", "company", "notes", "source", "status", "created_at", "updated_at"))
	if err != nil {
		return fmt.Errorf("prepare copy: %w", err)
	}

	for _, l := range leads {
		if _, err := stmt.ExecContext(ctx,
			l.ID, l.OwnerID, l.Name,
			nullString(l.Email), nullString(l.Phone), nullString(l.Company),
			nullString(l.Notes), nullString(l.Source),
			string(l.Status), l.CreatedAt, l.UpdatedAt,
		); err != nil {
			stmt.Close()
			return fmt.Errorf("copy lead %q: %w", l.Name, err)
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return fmt.Errorf("flush copy: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return fmt.Errorf("close copy: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	return nil
}

func (r *LeadRepository) FindByID(ctx context.Context, ownerID, id string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1 AND user_id = $2`

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || pgCode(err) == codeInvalidTextValue {
			return nil, entity.ErrLeadNotFound
		}
		return nil, fmt.Errorf("find lead: %w", err)
	}
	return lead, nil
}

// List devolve os leads do dono, mais novos primeiro.
func (r *LeadRepository) List(ctx context.Context, ownerID string, filter entity.LeadFilter) ([]entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE user_id = $1`
	args := []any{ownerID}
	if filter.Status != "" {
		query += ` AND status = $2`
		args = append(args, string(filter.Status))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	leads := []entity.Lead{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, *lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leads: %w", err)
	}
	return leads, nil
}

func (r *LeadRepository) UpdateStatus(ctx context.Context, ownerID, id string, status entity.Stage) error {
	if !entity.PipelineStages.Contains(status) {
		return entity.ErrInvalidStage
	}

	query := `UPDATE leads SET status = $1, updated_at = NOW() WHERE id = $2 AND user_id = $3`
	res, err := r.DB.ExecContext(ctx, query, string(status), id, ownerID)
	if err != nil {
		switch pgCode(err) {
		case codeCheckViolation:
			return entity.ErrInvalidStage
		case codeInvalidTextValue:
			return entity.ErrLeadNotFound
		}
		return fmt.Errorf("update lead status: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update lead status: %w", err)
	}
	if n == 0 {
		return entity.ErrLeadNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var l entity.Lead
	var status string
	var email, phone, company, notes, source sql.NullString
	if err := row.Scan(
		&l.ID, &l.OwnerID, &l.Name,
		&email, &phone, &company, &notes, &source,
		&status, &l.CreatedAt, &l.UpdatedAt,
	); err != nil {
		return nil, err
	}
	l.Email = email.String
	l.Phone = phone.String
	l.Company = company.String
	l.Notes = notes.String
	l.Source = source.String
	l.Status = entity.Stage(status)
	return &l, nil
}
