package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"entrematch/internal/domain"
)

type RecommendationRepository interface {
	UpsertAll(ctx context.Context, summaries []domain.RecommendationSummary) error
	ListByProfile(ctx context.Context, profileID string) ([]domain.RecommendationSummary, error)
	SimilarProfiles(ctx context.Context, profileID string, k int) ([]domain.SimilarProfile, error)
}

type PgRecommendationRepository struct {
	pool *pgxpool.Pool
}

func NewPgRecommendationRepository(pool *pgxpool.Pool) *PgRecommendationRepository {
	return &PgRecommendationRepository{pool: pool}
}

// UpsertAll replaces every method's summary in one transaction.
func (r *PgRecommendationRepository) UpsertAll(ctx context.Context, summaries []domain.RecommendationSummary) error {
	const query = `
		INSERT INTO recommendations (profile_id, method, clusters, sectors, sector_code, trait_code, low_confidence, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (profile_id, method)
		DO UPDATE SET
			clusters = EXCLUDED.clusters,
			sectors = EXCLUDED.sectors,
			sector_code = EXCLUDED.sector_code,
			trait_code = EXCLUDED.trait_code,
			low_confidence = EXCLUDED.low_confidence,
			created_at = EXCLUDED.created_at
	`
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		for _, summary := range summaries {
			if _, err := tx.Exec(ctx, query,
				summary.ProfileID,
				string(summary.Method),
				nonNil(summary.Clusters),
				nonNil(summary.Sectors),
				pgvector.NewVector(summary.SectorCode),
				pgvector.NewVector(summary.TraitCode),
				summary.LowConfidence,
				summary.CreatedAt,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PgRecommendationRepository) ListByProfile(ctx context.Context, profileID string) ([]domain.RecommendationSummary, error) {
	const query = `
		SELECT profile_id, method, clusters, sectors, sector_code, trait_code, low_confidence, created_at
		FROM recommendations
		WHERE profile_id = $1
		ORDER BY method DESC
	`
	rows, err := r.pool.Query(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSummaries(rows)
}

// SimilarProfiles finds the profiles whose single-method sector code lies
// closest to the given profile's.
func (r *PgRecommendationRepository) SimilarProfiles(ctx context.Context, profileID string, k int) ([]domain.SimilarProfile, error) {
	if k <= 0 {
		k = 5
	}
	const query = `
		SELECT other.profile_id, other.sector_code <-> self.sector_code AS distance, other.clusters
		FROM recommendations other
		JOIN recommendations self ON self.profile_id = $1 AND self.method = $2
		WHERE other.method = $2 AND other.profile_id <> $1
		ORDER BY distance, other.created_at DESC
		LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query, profileID, string(domain.MethodSingle), k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SimilarProfile
	for rows.Next() {
		var p domain.SimilarProfile
		if err := rows.Scan(&p.ProfileID, &p.Distance, &p.Clusters); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanSummaries(rows pgxRows) ([]domain.RecommendationSummary, error) {
	var summaries []domain.RecommendationSummary
	for rows.Next() {
		var (
			s          domain.RecommendationSummary
			method     string
			sectorCode pgvector.Vector
			traitCode  pgvector.Vector
		)
		if err := rows.Scan(
			&s.ProfileID,
			&method,
			&s.Clusters,
			&s.Sectors,
			&sectorCode,
			&traitCode,
			&s.LowConfidence,
			&s.CreatedAt,
		); err != nil {
			return nil, err
		}
		s.Method = domain.Method(method)
		s.SectorCode = sectorCode.Slice()
		s.TraitCode = traitCode.Slice()
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return summaries, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
