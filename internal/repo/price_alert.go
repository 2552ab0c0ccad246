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

// PriceAlertRepo defines the persistence operations for PriceAlerts.
// All operations are scoped by the owning user.
type PriceAlertRepo interface {
	// Create inserts an alert and returns the persisted record.
	Create(ctx context.Context, a domain.PriceAlert) (domain.PriceAlert, error)

	// ListByUser returns the owner's alerts, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.PriceAlert, error)

	// SetActive switches an alert on or off and returns the updated record.
	// Returns domain.ErrNotFound if no such alert exists.
	SetActive(ctx context.Context, userID, id uuid.UUID, active bool) (domain.PriceAlert, error)

	// Delete removes an alert. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// pgPriceAlertRepo is the Postgres implementation of PriceAlertRepo.
type pgPriceAlertRepo struct {
	db db
}

// NewPriceAlertRepo constructs a PriceAlertRepo backed by the provided db connection.
func NewPriceAlertRepo(db db) PriceAlertRepo {
	return &pgPriceAlertRepo{db: db}
}

const alertColumns = `id, user_id, alert_type::text, route_or_destination, target_price::float8, currency, is_active, created_at, updated_at`

func (r *pgPriceAlertRepo) Create(ctx context.Context, a domain.PriceAlert) (domain.PriceAlert, error) {
	const q = `
		INSERT INTO price_alerts (user_id, alert_type, route_or_destination, target_price, currency, is_active)
		VALUES (@user_id, @alert_type, @route, @target_price, @currency, @is_active)
		RETURNING ` + alertColumns

	args := pgx.NamedArgs{
		"user_id":      a.UserID,
		"alert_type":   string(a.AlertType),
		"route":        a.RouteOrDestination,
		"target_price": a.TargetPrice,
		"currency":     a.Currency,
		"is_active":    a.IsActive,
	}

	result, err := scanAlert(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.PriceAlert{}, fmt.Errorf("repo.PriceAlertRepo.Create: %w", mapPgError(err))
	}
	return result, nil
}

func (r *pgPriceAlertRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.PriceAlert, error) {
	const q = `
		SELECT ` + alertColumns + `
		FROM price_alerts
		WHERE user_id = @user_id
		ORDER BY created_at DESC, id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.PriceAlertRepo.ListByUser: %w", err)
	}
	defer rows.Close()

	alerts := []domain.PriceAlert{}
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.PriceAlertRepo.ListByUser: scan: %w", err)
		}
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.PriceAlertRepo.ListByUser: rows: %w", err)
	}
	return alerts, nil
}

func (r *pgPriceAlertRepo) SetActive(ctx context.Context, userID, id uuid.UUID, active bool) (domain.PriceAlert, error) {
	const q = `
		UPDATE price_alerts
		SET is_active = @is_active, updated_at = now()
		WHERE id = @id AND user_id = @user_id
		RETURNING ` + alertColumns

	result, err := scanAlert(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID, "is_active": active}))
	if err != nil {
		return domain.PriceAlert{}, fmt.Errorf("repo.PriceAlertRepo.SetActive: %w", err)
	}
	return result, nil
}

func (r *pgPriceAlertRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	const q = `DELETE FROM price_alerts WHERE id = @id AND user_id = @user_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("repo.PriceAlertRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.PriceAlertRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func scanAlert(s scanner) (domain.PriceAlert, error) {
	var (
		a         domain.PriceAlert
		id, owner pgtype.UUID
		alertType string
	)
	err := s.Scan(&id, &owner, &alertType, &a.RouteOrDestination, &a.TargetPrice, &a.Currency, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.PriceAlert{}, domain.ErrNotFound
		}
		return domain.PriceAlert{}, err
	}
	a.ID = uuid.UUID(id.Bytes)
	a.UserID = uuid.UUID(owner.Bytes)
	a.AlertType = domain.BookingType(alertType)
	return a, nil
}
