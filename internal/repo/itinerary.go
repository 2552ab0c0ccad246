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

// ItineraryRepo defines the persistence operations for ItineraryItems.
// Items are owned through their trip, so every operation takes the owner's
// userID and joins against trips to enforce it.
type ItineraryRepo interface {
	// Append inserts item at the end of its (trip, day) bucket. The order index
	// on the input is ignored; the stored record carries the assigned one.
	// Returns domain.ErrNotFound if the trip does not exist or is not owned by userID.
	Append(ctx context.Context, userID uuid.UUID, item domain.ItineraryItem) (domain.ItineraryItem, error)

	// ListByTrip returns a trip's items ordered by day_number, order_index, created_at.
	// An unknown or foreign trip yields an empty slice.
	ListByTrip(ctx context.Context, userID, tripID uuid.UUID) ([]domain.ItineraryItem, error)

	// Delete removes one item, scoped to its trip and owner.
	// Returns domain.ErrNotFound if no such item exists.
	Delete(ctx context.Context, userID, tripID, itemID uuid.UUID) error
}

// pgItineraryRepo is the Postgres implementation of ItineraryRepo.
type pgItineraryRepo struct {
	db db
}

// NewItineraryRepo constructs an ItineraryRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewItineraryRepo(db db) ItineraryRepo {
	return &pgItineraryRepo{db: db}
}

const itemColumns = `id, trip_id, title, description, location, start_time, end_time, day_number, order_index, notes, created_at, updated_at`

// Append assigns the order index and inserts the item in one transaction.
//
// The parent trip row is locked FOR UPDATE before the bucket is read, so two
// writers appending to the same trip serialize and cannot both compute the
// same max+1. The unique (trip_id, day_number, order_index) constraint backs
// this up.
func (r *pgItineraryRepo) Append(ctx context.Context, userID uuid.UUID, item domain.ItineraryItem) (domain.ItineraryItem, error) {
	var result domain.ItineraryItem

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		const lockTrip = `SELECT id FROM trips WHERE id = @trip_id AND user_id = @user_id FOR UPDATE`
		var locked pgtype.UUID
		err := tx.QueryRow(ctx, lockTrip, pgx.NamedArgs{"trip_id": item.TripID, "user_id": userID}).Scan(&locked)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrNotFound
			}
			return err
		}

		bucket, err := r.bucketOrder(ctx, tx, item.TripID, item.DayNumber)
		if err != nil {
			return err
		}
		item.OrderIndex = domain.NextOrderIndex(bucket)

		const insert = `
			INSERT INTO itinerary_items
				(trip_id, title, description, location, start_time, end_time, day_number, order_index, notes)
			VALUES
				(@trip_id, @title, @description, @location, @start_time, @end_time, @day_number, @order_index, @notes)
			RETURNING ` + itemColumns

		args := pgx.NamedArgs{
			"trip_id":     item.TripID,
			"title":       item.Title,
			"description": optionalText(item.Description),
			"location":    optionalText(item.Location),
			"start_time":  item.StartTime,
			"end_time":    item.EndTime,
			"day_number":  item.DayNumber,
			"order_index": item.OrderIndex,
			"notes":       optionalText(item.Notes),
		}
		result, err = scanItem(tx.QueryRow(ctx, insert, args))
		return err
	})
	if err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("repo.ItineraryRepo.Append: %w", mapPgError(err))
	}
	return result, nil
}

// bucketOrder reads the order indexes currently used in one day bucket.
func (r *pgItineraryRepo) bucketOrder(ctx context.Context, tx pgx.Tx, tripID uuid.UUID, day int) ([]domain.ItineraryItem, error) {
	const q = `
		SELECT order_index
		FROM itinerary_items
		WHERE trip_id = @trip_id AND day_number = @day_number`

	rows, err := tx.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID, "day_number": day})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bucket []domain.ItineraryItem
	for rows.Next() {
		var idx int
		if err := rows.Scan(&idx); err != nil {
			return nil, err
		}
		bucket = append(bucket, domain.ItineraryItem{TripID: tripID, DayNumber: day, OrderIndex: idx})
	}
	return bucket, rows.Err()
}

// ListByTrip returns the trip's items in display order.
func (r *pgItineraryRepo) ListByTrip(ctx context.Context, userID, tripID uuid.UUID) ([]domain.ItineraryItem, error) {
	const q = `
		SELECT i.id, i.trip_id, i.title, i.description, i.location, i.start_time, i.end_time,
		       i.day_number, i.order_index, i.notes, i.created_at, i.updated_at
		FROM itinerary_items i
		JOIN trips t ON t.id = i.trip_id
		WHERE i.trip_id = @trip_id AND t.user_id = @user_id
		ORDER BY i.day_number, i.order_index, i.created_at`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID, "user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.ItineraryRepo.ListByTrip: %w", err)
	}
	defer rows.Close()

	items := []domain.ItineraryItem{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ItineraryRepo.ListByTrip: scan: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ItineraryRepo.ListByTrip: rows: %w", err)
	}
	return items, nil
}

// Delete removes an item. Remaining order indexes are left as they are.
func (r *pgItineraryRepo) Delete(ctx context.Context, userID, tripID, itemID uuid.UUID) error {
	const q = `
		DELETE FROM itinerary_items i
		USING trips t
		WHERE i.id = @id
		  AND i.trip_id = @trip_id
		  AND t.id = i.trip_id
		  AND t.user_id = @user_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": itemID, "trip_id": tripID, "user_id": userID})
	if err != nil {
		return fmt.Errorf("repo.ItineraryRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ItineraryRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanItem maps a single database row into a domain.ItineraryItem.
// Nullable text columns become empty strings.
func scanItem(s scanner) (domain.ItineraryItem, error) {
	var (
		it                           domain.ItineraryItem
		id, tripID                   pgtype.UUID
		description, location, notes pgtype.Text
	)

	err := s.Scan(&id, &tripID, &it.Title, &description, &location, &it.StartTime, &it.EndTime,
		&it.DayNumber, &it.OrderIndex, &notes, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ItineraryItem{}, domain.ErrNotFound
		}
		return domain.ItineraryItem{}, err
	}

	it.ID = uuid.UUID(id.Bytes)
	it.TripID = uuid.UUID(tripID.Bytes)
	it.Description = description.String
	it.Location = location.String
	it.Notes = notes.String
	return it, nil
}

// optionalText stores empty strings as NULL, matching the nullable columns.
func optionalText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}
