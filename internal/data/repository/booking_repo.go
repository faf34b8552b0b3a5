package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"lodge-booking/internal/data/entity"
	"lodge-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// BookingFilter narrows the admin booking listing. Nil fields are ignored.
type BookingFilter struct {
	Status      *entity.BookingStatus
	BookingRef  *string
	CheckInDate *time.Time
	StartDate   *time.Time
	EndDate     *time.Time
}

// BookingWithRoom joins the room and category display fields onto a booking.
type BookingWithRoom struct {
	entity.Booking
	RoomTitle    string
	RoomNumber   string
	CategoryName string
}

// StatusUpdate describes an admin status mutation. ConfirmedNow and
// CancelledNow stamp the respective timestamps server-side.
type StatusUpdate struct {
	Status        entity.BookingStatus
	PaymentStatus *entity.PaymentStatus
	AdminRemarks  *string
	ConfirmedNow  bool
	CancelledNow  bool
}

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByRef(ctx context.Context, ref string) (*entity.Booking, error)
	FindByRefWithRoom(ctx context.Context, ref string) (*BookingWithRoom, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*BookingWithRoom, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	FindAll(ctx context.Context, filter BookingFilter) ([]*BookingWithRoom, error)
	UpdateStatus(ctx context.Context, ref string, upd StatusUpdate) error
	Delete(ctx context.Context, ref string) error

	// Business queries
	HasConflict(ctx context.Context, roomID int, checkIn, checkOut time.Time) (bool, error)
	CountActiveFromDate(ctx context.Context, roomID int, from time.Time) (int64, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `b.id, b.booking_ref, b.room_id, b.user_id, b.guest_name, b.guest_email,
	b.guest_phone, b.check_in_date, b.check_in_time, b.check_out_date, b.check_out_time,
	b.num_adults, b.num_minors, b.minor_ages, b.price_per_night, b.total_nights,
	b.total_amount, b.payment_method, b.upi_app, b.payment_status, b.booking_status,
	b.admin_remarks, b.confirmed_at, b.cancelled_at, b.created_at, b.updated_at`

func scanBooking(row pgx.Row, b *entity.Booking, extra ...any) error {
	var minorAges []byte
	dest := []any{
		&b.ID,
		&b.BookingRef,
		&b.RoomID,
		&b.UserID,
		&b.GuestName,
		&b.GuestEmail,
		&b.GuestPhone,
		&b.CheckInDate,
		&b.CheckInTime,
		&b.CheckOutDate,
		&b.CheckOutTime,
		&b.NumAdults,
		&b.NumMinors,
		&minorAges,
		&b.PricePerNight,
		&b.TotalNights,
		&b.TotalAmount,
		&b.PaymentMethod,
		&b.UPIApp,
		&b.PaymentStatus,
		&b.Status,
		&b.AdminRemarks,
		&b.ConfirmedAt,
		&b.CancelledAt,
		&b.CreatedAt,
		&b.UpdatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return err
	}
	if len(minorAges) > 0 {
		if err := json.Unmarshal(minorAges, &b.MinorAges); err != nil {
			return fmt.Errorf("decode minor ages: %w", err)
		}
	}
	return nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, booking_ref, room_id, user_id, guest_name, guest_email,
			guest_phone, check_in_date, check_in_time, check_out_date, check_out_time,
			num_adults, num_minors, minor_ages, price_per_night, total_nights,
			total_amount, payment_method, upi_app, payment_status, booking_status,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, $23)
	`

	minorAges, err := json.Marshal(booking.MinorAges)
	if err != nil {
		return fmt.Errorf("encode minor ages: %w", err)
	}

	_, err = r.db.Exec(ctx, query,
		booking.ID,
		booking.BookingRef,
		booking.RoomID,
		booking.UserID,
		booking.GuestName,
		booking.GuestEmail,
		booking.GuestPhone,
		booking.CheckInDate,
		booking.CheckInTime,
		booking.CheckOutDate,
		booking.CheckOutTime,
		booking.NumAdults,
		booking.NumMinors,
		minorAges,
		booking.PricePerNight,
		booking.TotalNights,
		booking.TotalAmount,
		booking.PaymentMethod,
		booking.UPIApp,
		booking.PaymentStatus,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		if mapped := mapConstraintError(err); mapped != nil {
			r.log.Warn("Booking insert rejected by constraint",
				zap.Error(err),
				zap.String("booking_ref", booking.BookingRef),
				zap.Int("room_id", booking.RoomID),
			)
			return mapped
		}
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_ref", booking.BookingRef),
			zap.Int("room_id", booking.RoomID),
		)
		return fmt.Errorf("create booking %s: %w", booking.BookingRef, err)
	}

	return nil
}

// mapConstraintError translates storage-layer guard violations into
// sentinel errors. 23P01 is an exclusion violation (overlapping stay for
// an active booking), 23505 a unique violation (booking reference).
func mapConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}
	switch {
	case pgErr.Code == "23P01" && pgErr.ConstraintName == "bookings_no_overlap":
		return ErrDateConflict
	case pgErr.Code == "23505" && pgErr.ConstraintName == "bookings_booking_ref_key":
		return ErrRefTaken
	}
	return nil
}

func (r *bookingRepository) FindByRef(ctx context.Context, ref string) (*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings b
		WHERE b.booking_ref = $1
	`

	var booking entity.Booking
	err := scanBooking(r.db.QueryRow(ctx, query, ref), &booking)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ref",
			zap.Error(err),
			zap.String("booking_ref", ref),
		)
		return nil, fmt.Errorf("find booking by ref %s: %w", ref, err)
	}

	return &booking, nil
}

func (r *bookingRepository) FindByRefWithRoom(ctx context.Context, ref string) (*BookingWithRoom, error) {
	query := `
		SELECT ` + bookingColumns + `, r.title, r.room_number, c.name
		FROM bookings b
		INNER JOIN rooms r ON b.room_id = r.room_id
		LEFT JOIN room_categories c ON r.category_id = c.category_id
		WHERE b.booking_ref = $1
	`

	var booking BookingWithRoom
	err := scanBooking(r.db.QueryRow(ctx, query, ref), &booking.Booking,
		&booking.RoomTitle, &booking.RoomNumber, &booking.CategoryName)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking with room by ref",
			zap.Error(err),
			zap.String("booking_ref", ref),
		)
		return nil, fmt.Errorf("find booking with room by ref %s: %w", ref, err)
	}

	return &booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*BookingWithRoom, error) {
	query := `
		SELECT ` + bookingColumns + `, r.title, r.room_number, c.name
		FROM bookings b
		INNER JOIN rooms r ON b.room_id = r.room_id
		LEFT JOIN room_categories c ON r.category_id = c.category_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	return collectBookingsWithRoom(rows)
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE user_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count bookings by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) FindAll(ctx context.Context, filter BookingFilter) ([]*BookingWithRoom, error) {
	query := `
		SELECT ` + bookingColumns + `, r.title, r.room_number, c.name
		FROM bookings b
		INNER JOIN rooms r ON b.room_id = r.room_id
		LEFT JOIN room_categories c ON r.category_id = c.category_id
		WHERE 1=1
	`
	var args []any

	if filter.BookingRef != nil {
		args = append(args, *filter.BookingRef)
		query += " AND b.booking_ref = $" + strconv.Itoa(len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += " AND b.booking_status = $" + strconv.Itoa(len(args))
	}
	if filter.CheckInDate != nil {
		args = append(args, *filter.CheckInDate)
		query += " AND b.check_in_date = $" + strconv.Itoa(len(args))
	}
	if filter.StartDate != nil && filter.EndDate != nil {
		args = append(args, *filter.StartDate)
		query += " AND b.check_in_date >= $" + strconv.Itoa(len(args))
		args = append(args, *filter.EndDate)
		query += " AND b.check_in_date <= $" + strconv.Itoa(len(args))
	}

	query += " ORDER BY b.created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find bookings", zap.Error(err))
		return nil, fmt.Errorf("find bookings: %w", err)
	}
	defer rows.Close()

	return collectBookingsWithRoom(rows)
}

func collectBookingsWithRoom(rows pgx.Rows) ([]*BookingWithRoom, error) {
	var bookings []*BookingWithRoom
	for rows.Next() {
		var b BookingWithRoom
		err := scanBooking(rows, &b.Booking, &b.RoomTitle, &b.RoomNumber, &b.CategoryName)
		if err != nil {
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, &b)
	}
	return bookings, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, ref string, upd StatusUpdate) error {
	query := `UPDATE bookings SET booking_status = $2, updated_at = NOW()`
	args := []any{ref, upd.Status}

	if upd.PaymentStatus != nil {
		args = append(args, *upd.PaymentStatus)
		query += ", payment_status = $" + strconv.Itoa(len(args))
	}
	if upd.AdminRemarks != nil {
		args = append(args, *upd.AdminRemarks)
		query += ", admin_remarks = $" + strconv.Itoa(len(args))
	}
	if upd.ConfirmedNow {
		query += ", confirmed_at = NOW()"
	}
	if upd.CancelledNow {
		query += ", cancelled_at = NOW()"
	}

	query += " WHERE booking_ref = $1"

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		if mapped := mapConstraintError(err); mapped != nil {
			return mapped
		}
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_ref", ref),
			zap.String("status", string(upd.Status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", ref, string(upd.Status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s: %w", ref, ErrNotFound)
	}

	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, ref string) error {
	query := `DELETE FROM bookings WHERE booking_ref = $1`

	result, err := r.db.Exec(ctx, query, ref)
	if err != nil {
		r.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.String("booking_ref", ref),
		)
		return fmt.Errorf("delete booking %s: %w", ref, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s: %w", ref, ErrNotFound)
	}

	r.log.Info("Booking deleted", zap.String("booking_ref", ref))
	return nil
}

// HasConflict reports whether any active booking for the room overlaps
// the half-open candidate range [checkIn, checkOut). A checkout on day D
// does not conflict with a check-in on day D.
func (r *bookingRepository) HasConflict(ctx context.Context, roomID int, checkIn, checkOut time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE room_id = $1
			AND booking_status IN ('pending', 'confirmed')
			AND check_in_date < $3
			AND $2 < check_out_date
		)
	`

	var conflict bool
	err := r.db.QueryRow(ctx, query, roomID, checkIn, checkOut).Scan(&conflict)
	if err != nil {
		r.log.Error("Failed to check booking conflict",
			zap.Error(err),
			zap.Int("room_id", roomID),
		)
		return false, fmt.Errorf("check booking conflict for room %d: %w", roomID, err)
	}

	return conflict, nil
}

// CountActiveFromDate counts active bookings for the room whose checkout
// date is on or after the given date. The availability reconciler treats
// a non-zero count as "room occupied".
func (r *bookingRepository) CountActiveFromDate(ctx context.Context, roomID int, from time.Time) (int64, error) {
	query := `
		SELECT COUNT(*) FROM bookings
		WHERE room_id = $1
		AND booking_status IN ('pending', 'confirmed')
		AND check_out_date >= $2
	`

	var count int64
	err := r.db.QueryRow(ctx, query, roomID, from).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count active bookings",
			zap.Error(err),
			zap.Int("room_id", roomID),
		)
		return 0, fmt.Errorf("count active bookings for room %d: %w", roomID, err)
	}

	return count, nil
}
