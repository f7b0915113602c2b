package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"entrematch/internal/domain"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile domain.Profile) error
	GetByID(ctx context.Context, id string) (domain.Profile, error)
}

type PgProfileRepository struct {
	pool *pgxpool.Pool
}

func NewPgProfileRepository(pool *pgxpool.Pool) *PgProfileRepository {
	return &PgProfileRepository{pool: pool}
}

func (r *PgProfileRepository) Create(ctx context.Context, profile domain.Profile) error {
	const query = `
		INSERT INTO profiles (id, name, role, role_description, age, gender, domicile, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.pool.Exec(ctx, query,
		profile.ID,
		profile.Name,
		profile.Role,
		profile.RoleDescription,
		profile.Age,
		profile.Gender,
		profile.Domicile,
		profile.CreatedAt,
	)
	return err
}

func (r *PgProfileRepository) GetByID(ctx context.Context, id string) (domain.Profile, error) {
	const query = `
		SELECT id, name, role, role_description, age, gender, domicile, created_at
		FROM profiles
		WHERE id = $1
	`
	var profile domain.Profile
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&profile.ID,
		&profile.Name,
		&profile.Role,
		&profile.RoleDescription,
		&profile.Age,
		&profile.Gender,
		&profile.Domicile,
		&profile.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Profile{}, err
	}
	return profile, err
}
