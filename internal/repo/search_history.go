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

// SearchHistoryRepo defines the persistence operations for SearchHistory rows.
type SearchHistoryRepo interface {
	// Create records one search and returns the persisted row.
	Create(ctx context.Context, h domain.SearchHistory) (domain.SearchHistory, error)

	// ListRecent returns at most limit searches for userID, newest first.
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]domain.SearchHistory, error)
}

// pgSearchHistoryRepo is the Postgres implementation of SearchHistoryRepo.
type pgSearchHistoryRepo struct {
	db db
}

// NewSearchHistoryRepo constructs a SearchHistoryRepo backed by the provided db connection.
func NewSearchHistoryRepo(db db) SearchHistoryRepo {
	return &pgSearchHistoryRepo{db: db}
}

const historyColumns = `id, user_id, search_type::text, search_params, created_at`

func (r *pgSearchHistoryRepo) Create(ctx context.Context, h domain.SearchHistory) (domain.SearchHistory, error) {
	const q = `
		INSERT INTO search_history (user_id, search_type, search_params)
		VALUES (@user_id, @search_type, @search_params)
		RETURNING ` + historyColumns

	args := pgx.NamedArgs{
		"user_id":       h.UserID,
		"search_type":   string(h.SearchType),
		"search_params": []byte(h.SearchParams),
	}
	result, err := scanHistory(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.SearchHistory{}, fmt.Errorf("repo.SearchHistoryRepo.Create: %w", mapPgError(err))
	}
	return result, nil
}

func (r *pgSearchHistoryRepo) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]domain.SearchHistory, error) {
	const q = `
		SELECT ` + historyColumns + `
		FROM search_history
		WHERE user_id = @user_id
		ORDER BY created_at DESC, id
		LIMIT @limit`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID, "limit": limit})
	if err != nil {
		return nil, fmt.Errorf("repo.SearchHistoryRepo.ListRecent: %w", err)
	}
	defer rows.Close()

	out := []domain.SearchHistory{}
	for rows.Next() {
		h, err := scanHistory(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.SearchHistoryRepo.ListRecent: scan: %w", err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.SearchHistoryRepo.ListRecent: rows: %w", err)
	}
	return out, nil
}

func scanHistory(s scanner) (domain.SearchHistory, error) {
	var (
		h          domain.SearchHistory
		id, owner  pgtype.UUID
		searchType string
		params     []byte
	)
	if err := s.Scan(&id, &owner, &searchType, &params, &h.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.SearchHistory{}, domain.ErrNotFound
		}
		return domain.SearchHistory{}, err
	}
	h.ID = uuid.UUID(id.Bytes)
	h.UserID = uuid.UUID(owner.Bytes)
	h.SearchType = domain.BookingType(searchType)
	h.SearchParams = params
	return h, nil
}
