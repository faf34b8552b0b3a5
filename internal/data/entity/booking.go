package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusNoShow    BookingStatus = "no_show"
)

// Active reports whether the status counts toward conflict detection
// and room availability.
func (s BookingStatus) Active() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

// Valid reports whether the status is one of the five known values.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled,
		BookingStatusCompleted, BookingStatusNoShow:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

type PaymentMethod string

const (
	PaymentMethodUPI           PaymentMethod = "upi"
	PaymentMethodPayAtProperty PaymentMethod = "pay_at_property"
)

type Booking struct {
	Base
	BookingRef    string        `db:"booking_ref"`
	RoomID        int           `db:"room_id"`
	UserID        uuid.UUID     `db:"user_id"`
	GuestName     string        `db:"guest_name"`
	GuestEmail    string        `db:"guest_email"`
	GuestPhone    string        `db:"guest_phone"`
	CheckInDate   time.Time     `db:"check_in_date"`
	CheckInTime   string        `db:"check_in_time"`
	CheckOutDate  time.Time     `db:"check_out_date"`
	CheckOutTime  string        `db:"check_out_time"`
	NumAdults     int           `db:"num_adults"`
	NumMinors     int           `db:"num_minors"`
	MinorAges     []int         `db:"minor_ages"`
	PricePerNight float64       `db:"price_per_night"`
	TotalNights   int           `db:"total_nights"`
	TotalAmount   float64       `db:"total_amount"`
	PaymentMethod PaymentMethod `db:"payment_method"`
	UPIApp        *string       `db:"upi_app"`
	PaymentStatus PaymentStatus `db:"payment_status"`
	Status        BookingStatus `db:"booking_status"`
	AdminRemarks  *string       `db:"admin_remarks"`
	ConfirmedAt   *time.Time    `db:"confirmed_at"`
	CancelledAt   *time.Time    `db:"cancelled_at"`
}
