package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// BookingRepo defines the persistence operations for Bookings.
// All operations are scoped by the owning user.
type BookingRepo interface {
	// Create inserts a booking and returns the persisted record.
	// A zero BookingDate is filled by the database with now().
	Create(ctx context.Context, b domain.Booking) (domain.Booking, error)

	// GetByID retrieves a booking owned by userID.
	// Returns domain.ErrNotFound if no such booking exists.
	GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Booking, error)

	// ListByUser returns the owner's bookings, most recently booked first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error)

	// UpdateStatus sets booking_status and returns the updated record.
	// Returns domain.ErrNotFound if no such booking exists.
	UpdateStatus(ctx context.Context, userID, id uuid.UUID, status domain.BookingStatus) (domain.Booking, error)

	// Delete removes a booking. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// pgBookingRepo is the Postgres implementation of BookingRepo.
type pgBookingRepo struct {
	db db
}

// NewBookingRepo constructs a BookingRepo backed by the provided db connection.
func NewBookingRepo(db db) BookingRepo {
	return &pgBookingRepo{db: db}
}

const bookingColumns = `id, user_id, trip_id, booking_type::text, booking_status::text, provider, booking_reference,
	booking_date, start_date, end_date, total_price::float8, currency, booking_data, created_at, updated_at`

func (r *pgBookingRepo) Create(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	const q = `
		INSERT INTO bookings (user_id, trip_id, booking_type, booking_status, provider, booking_reference,
		                      booking_date, start_date, end_date, total_price, currency, booking_data)
		VALUES (@user_id, @trip_id, @booking_type, @booking_status, @provider, @booking_reference,
		        COALESCE(@booking_date, now()), @start_date, @end_date, @total_price, @currency, @booking_data)
		RETURNING ` + bookingColumns

	var bookingDate pgtype.Timestamptz
	if !b.BookingDate.IsZero() {
		bookingDate = pgtype.Timestamptz{Time: b.BookingDate, Valid: true}
	}

	args := pgx.NamedArgs{
		"user_id":           b.UserID,
		"trip_id":           b.TripID, // nil becomes NULL
		"booking_type":      string(b.BookingType),
		"booking_status":    string(b.BookingStatus),
		"provider":          b.Provider,
		"booking_reference": optionalText(b.BookingReference),
		"booking_date":      bookingDate,
		"start_date":        b.StartDate,
		"end_date":          b.EndDate,
		"total_price":       b.TotalPrice,
		"currency":          b.Currency,
		"booking_data":      []byte(b.BookingData),
	}

	result, err := scanBooking(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Booking{}, fmt.Errorf("repo.BookingRepo.Create: %w", mapPgError(err))
	}
	return result, nil
}

func (r *pgBookingRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = @id AND user_id = @user_id`

	result, err := scanBooking(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID}))
	if err != nil {
		return domain.Booking{}, fmt.Errorf("repo.BookingRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgBookingRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error) {
	const q = `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = @user_id
		ORDER BY booking_date DESC, id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.BookingRepo.ListByUser: %w", err)
	}
	defer rows.Close()

	bookings := []domain.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.BookingRepo.ListByUser: scan: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.BookingRepo.ListByUser: rows: %w", err)
	}
	return bookings, nil
}

func (r *pgBookingRepo) UpdateStatus(ctx context.Context, userID, id uuid.UUID, status domain.BookingStatus) (domain.Booking, error) {
	const q = `
		UPDATE bookings
		SET booking_status = @status, updated_at = now()
		WHERE id = @id AND user_id = @user_id
		RETURNING ` + bookingColumns

	args := pgx.NamedArgs{"id": id, "user_id": userID, "status": string(status)}
	result, err := scanBooking(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Booking{}, fmt.Errorf("repo.BookingRepo.UpdateStatus: %w", mapPgError(err))
	}
	return result, nil
}

func (r *pgBookingRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	const q = `DELETE FROM bookings WHERE id = @id AND user_id = @user_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("repo.BookingRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.BookingRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanBooking maps a single database row into a domain.Booking.
func scanBooking(s scanner) (domain.Booking, error) {
	var (
		b                   domain.Booking
		id, owner, tripID   pgtype.UUID
		bookingType, status string
		reference           pgtype.Text
		endDate             pgtype.Timestamptz
		data                []byte
	)

	err := s.Scan(&id, &owner, &tripID, &bookingType, &status, &b.Provider, &reference,
		&b.BookingDate, &b.StartDate, &endDate, &b.TotalPrice, &b.Currency, &data, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Booking{}, domain.ErrNotFound
		}
		return domain.Booking{}, err
	}

	b.ID = uuid.UUID(id.Bytes)
	b.UserID = uuid.UUID(owner.Bytes)
	if tripID.Valid {
		t := uuid.UUID(tripID.Bytes)
		b.TripID = &t
	}
	b.BookingType = domain.BookingType(bookingType)
	b.BookingStatus = domain.BookingStatus(status)
	b.BookingReference = reference.String
	b.EndDate = optionalTime(endDate)
	b.BookingData = data
	return b, nil
}

func optionalTime(ts pgtype.Timestamptz) *time.Time {
	if !ts.Valid {
		return nil
	}
	t := ts.Time
	return &t
}
