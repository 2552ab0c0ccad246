package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// ProfileRepo defines the persistence operations for Profiles.
// A profile's primary key is the user id, so there is no separate owner column.
type ProfileRepo interface {
	// Get returns the profile for userID.
	// Returns domain.ErrNotFound if the user has never saved one.
	Get(ctx context.Context, userID uuid.UUID) (domain.Profile, error)

	// Upsert creates the profile or overwrites its mutable fields.
	Upsert(ctx context.Context, p domain.Profile) (domain.Profile, error)
}

// pgProfileRepo is the Postgres implementation of ProfileRepo.
type pgProfileRepo struct {
	db db
}

// NewProfileRepo constructs a ProfileRepo backed by the provided db connection.
func NewProfileRepo(db db) ProfileRepo {
	return &pgProfileRepo{db: db}
}

func (r *pgProfileRepo) Get(ctx context.Context, userID uuid.UUID) (domain.Profile, error) {
	const q = `SELECT id, full_name, created_at, updated_at FROM profiles WHERE id = @id`

	result, err := scanProfile(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": userID}))
	if err != nil {
		return domain.Profile{}, fmt.Errorf("repo.ProfileRepo.Get: %w", err)
	}
	return result, nil
}

// Upsert keeps created_at from the first insert and refreshes updated_at.
func (r *pgProfileRepo) Upsert(ctx context.Context, p domain.Profile) (domain.Profile, error) {
	const q = `
		INSERT INTO profiles (id, full_name)
		VALUES (@id, @full_name)
		ON CONFLICT (id) DO UPDATE
		SET full_name = EXCLUDED.full_name, updated_at = now()
		RETURNING id, full_name, created_at, updated_at`

	args := pgx.NamedArgs{"id": p.ID, "full_name": optionalText(p.FullName)}
	result, err := scanProfile(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Profile{}, fmt.Errorf("repo.ProfileRepo.Upsert: %w", err)
	}
	return result, nil
}

func scanProfile(s scanner) (domain.Profile, error) {
	var (
		p        domain.Profile
		id       pgtype.UUID
		fullName pgtype.Text
	)
	if err := s.Scan(&id, &fullName, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Profile{}, domain.ErrNotFound
		}
		return domain.Profile{}, err
	}
	p.ID = uuid.UUID(id.Bytes)
	p.FullName = fullName.String
	return p, nil
}
