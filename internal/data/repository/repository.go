package repository

import (
	"errors"

	"lodge-booking/pkg/database"

	"go.uber.org/zap"
)

// Sentinel errors shared by the repositories. ErrDateConflict is also
// raised by the storage layer itself: the bookings table carries an
// exclusion constraint over (room_id, stay date range) for active
// statuses, so two concurrent inserts for overlapping dates cannot
// both commit even when both passed the pre-insert conflict check.
var (
	ErrNotFound     = errors.New("not found")
	ErrDateConflict = errors.New("room is not available for the selected dates")
	ErrRefTaken     = errors.New("booking reference already taken")
)

type Repository struct {
	Session  SessionRepository
	Category CategoryRepository
	Room     RoomRepository
	Booking  BookingRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Session:  NewSessionRepository(db, log),
		Category: NewCategoryRepository(db, log),
		Room:     NewRoomRepository(db, log),
		Booking:  NewBookingRepository(db, log),
	}
}
