package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"entrematch/internal/domain"
)

type AnswerRepository interface {
	SaveSection(ctx context.Context, profileID string, section domain.Section, answers domain.Answers, at time.Time) error
	GetSheet(ctx context.Context, profileID string) (domain.AnswerSheet, error)
}

type PgAnswerRepository struct {
	pool *pgxpool.Pool
}

func NewPgAnswerRepository(pool *pgxpool.Pool) *PgAnswerRepository {
	return &PgAnswerRepository{pool: pool}
}

// SaveSection replaces the stored answers of one section in a single transaction.
func (r *PgAnswerRepository) SaveSection(ctx context.Context, profileID string, section domain.Section, answers domain.Answers, at time.Time) error {
	const deleteQuery = `DELETE FROM answers WHERE profile_id = $1 AND section = $2`
	const insertQuery = `
		INSERT INTO answers (profile_id, section, question, value, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, deleteQuery, profileID, string(section)); err != nil {
			return err
		}
		batch := &pgx.Batch{}
		for key, value := range answers {
			batch.Queue(insertQuery, profileID, string(section), key, value, at)
		}
		return tx.SendBatch(ctx, batch).Close()
	})
}

func (r *PgAnswerRepository) GetSheet(ctx context.Context, profileID string) (domain.AnswerSheet, error) {
	const query = `
		SELECT section, question, value, updated_at
		FROM answers
		WHERE profile_id = $1
	`
	rows, err := r.pool.Query(ctx, query, profileID)
	if err != nil {
		return domain.AnswerSheet{}, err
	}
	defer rows.Close()

	sheet, err := scanAnswers(rows)
	if err != nil {
		return domain.AnswerSheet{}, err
	}
	sheet.ProfileID = profileID
	return sheet, nil
}

func scanAnswers(rows pgxRows) (domain.AnswerSheet, error) {
	sheet := domain.AnswerSheet{
		Entrepreneurial: domain.Answers{},
		Personality:     domain.Answers{},
	}
	for rows.Next() {
		var (
			section, question string
			value             int
			updatedAt         time.Time
		)
		if err := rows.Scan(&section, &question, &value, &updatedAt); err != nil {
			return domain.AnswerSheet{}, err
		}
		switch domain.Section(section) {
		case domain.SectionEntrepreneurial:
			sheet.Entrepreneurial[question] = value
		case domain.SectionPersonality:
			sheet.Personality[question] = value
		default:
			continue
		}
		if updatedAt.After(sheet.UpdatedAt) {
			sheet.UpdatedAt = updatedAt
		}
	}
	if err := rows.Err(); err != nil {
		return domain.AnswerSheet{}, err
	}
	return sheet, nil
}

// pgxRows is a minimal interface to allow scanning from pgx rows and simplify testing.
type pgxRows interface {
	Next() bool
	Scan(...interface{}) error
	Err() error
	Close()
}
