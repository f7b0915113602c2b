package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"entrematch/internal/domain"
)

type FeedbackRepository interface {
	SaveAll(ctx context.Context, items []domain.Feedback) error
	ListByProfile(ctx context.Context, profileID string) ([]domain.Feedback, error)
}

type PgFeedbackRepository struct {
	pool *pgxpool.Pool
}

func NewPgFeedbackRepository(pool *pgxpool.Pool) *PgFeedbackRepository {
	return &PgFeedbackRepository{pool: pool}
}

// SaveAll stores every method's feedback together; a resubmission replaces it.
func (r *PgFeedbackRepository) SaveAll(ctx context.Context, items []domain.Feedback) error {
	const query = `
		INSERT INTO feedback (id, profile_id, method, rating, comment, chosen_sectors, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (profile_id, method)
		DO UPDATE SET
			rating = EXCLUDED.rating,
			comment = EXCLUDED.comment,
			chosen_sectors = EXCLUDED.chosen_sectors,
			created_at = EXCLUDED.created_at
	`
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		for _, f := range items {
			if _, err := tx.Exec(ctx, query,
				f.ID,
				f.ProfileID,
				string(f.Method),
				f.Rating,
				f.Comment,
				nonNil(f.ChosenSectors),
				f.CreatedAt,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PgFeedbackRepository) ListByProfile(ctx context.Context, profileID string) ([]domain.Feedback, error) {
	const query = `
		SELECT id, profile_id, method, rating, comment, chosen_sectors, created_at
		FROM feedback
		WHERE profile_id = $1
		ORDER BY method DESC
	`
	rows, err := r.pool.Query(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Feedback
	for rows.Next() {
		var (
			f      domain.Feedback
			method string
		)
		if err := rows.Scan(&f.ID, &f.ProfileID, &method, &f.Rating, &f.Comment, &f.ChosenSectors, &f.CreatedAt); err != nil {
			return nil, err
		}
		f.Method = domain.Method(method)
		items = append(items, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
