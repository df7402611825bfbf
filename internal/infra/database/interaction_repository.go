package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type InteractionRepository struct {
	DB *sql.DB
}

func NewInteractionRepository(db *sql.DB) *InteractionRepository {
	return &InteractionRepository{DB: db}
}

var _ entity.InteractionRepositoryInterface = (*InteractionRepository)(nil)

// Create só grava se o lead pertencer ao dono.
func (r *InteractionRepository) Create(ctx context.Context, ownerID string, in *entity.Interaction) error {
	query := `
		INSERT INTO interactions (id, lead_id, type, content, created_at)
		SELECT $1, l.id, $3, $4, $5
		FROM leads l
		WHERE l.id = $2 AND l.user_id = $6
		RETURNING created_at
	`

	err := r.DB.QueryRowContext(ctx, query,
		in.ID, in.LeadID, in.Type, nullString(in.Content), in.CreatedAt, ownerID,
	).Scan(&in.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || pgCode(err) == codeInvalidTextValue {
			return entity.ErrLeadNotFound
		}
		return fmt.Errorf("insert interaction: %w", err)
	}
	return nil
}

func (r *InteractionRepository) ListByLead(ctx context.Context, ownerID, leadID string) ([]entity.Interaction, error) {
	query := `
		SELECT i.id, i.lead_id, i.type, i.content, i.created_at
		FROM interactions i
		JOIN leads l ON l.id = i.lead_id
		WHERE i.lead_id = $1 AND l.user_id = $2
		ORDER BY i.created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query, leadID, ownerID)
	if err != nil {
		if pgCode(err) == codeInvalidTextValue {
			return nil, entity.ErrLeadNotFound
		}
		return nil, fmt.Errorf("list interactions: %w", err)
	}
	defer rows.Close()

	out := []entity.Interaction{}
	for rows.Next() {
		var (
			in      entity.Interaction
			content sql.NullString
		)
		if err := rows.Scan(&in.ID, &in.LeadID, &in.Type, &content, &in.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		in.Content = content.String
		out = append(out, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interactions: %w", err)
	}
	return out, nil
}
