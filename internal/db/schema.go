package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// schema creates every table the service writes to. Statements are idempotent.
var schema = []string{
	`CREATE EXTENSION IF NOT EXISTS vector`,
	`CREATE TABLE IF NOT EXISTS profiles (
		id               TEXT PRIMARY KEY,
		name             TEXT NOT NULL,
		role             TEXT NOT NULL,
		role_description TEXT NOT NULL DEFAULT '',
		age              INTEGER NOT NULL,
		gender           TEXT NOT NULL,
		domicile         TEXT NOT NULL,
		created_at       TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS answers (
		profile_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		section    TEXT NOT NULL,
		question   TEXT NOT NULL,
		value      SMALLINT NOT NULL CHECK (value BETWEEN 1 AND 5),
		updated_at TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (profile_id, section, question)
	)`,
	`CREATE TABLE IF NOT EXISTS recommendations (
		profile_id     TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		method         TEXT NOT NULL,
		clusters       TEXT[] NOT NULL,
		sectors        TEXT[] NOT NULL,
		sector_code    vector(4) NOT NULL,
		trait_code     vector(5) NOT NULL,
		low_confidence BOOLEAN NOT NULL DEFAULT FALSE,
		created_at     TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (profile_id, method)
	)`,
	`CREATE TABLE IF NOT EXISTS feedback (
		id             TEXT PRIMARY KEY,
		profile_id     TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		method         TEXT NOT NULL,
		rating         SMALLINT NOT NULL CHECK (rating BETWEEN 1 AND 5),
		comment        TEXT NOT NULL,
		chosen_sectors TEXT[] NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL,
		UNIQUE (profile_id, method)
	)`,
}

// EnsureSchema applies the schema in one transaction.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		for i, stmt := range schema {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("schema statement %d: %w", i, err)
			}
		}
		return nil
	})
}
