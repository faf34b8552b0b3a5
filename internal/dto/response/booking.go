package response

import (
	"time"

	"lodge-booking/internal/data/entity"
	"lodge-booking/internal/data/repository"
)

type BookingResponse struct {
	BookingRef    string               `json:"booking_ref"`
	RoomID        int                  `json:"room_id"`
	RoomTitle     string               `json:"room_title,omitempty"`
	RoomNumber    string               `json:"room_number,omitempty"`
	CategoryName  string               `json:"category_name,omitempty"`
	UserID        string               `json:"user_id"`
	GuestName     string               `json:"guest_name"`
	GuestEmail    string               `json:"guest_email"`
	GuestPhone    string               `json:"guest_phone"`
	CheckInDate   string               `json:"check_in_date"`
	CheckInTime   string               `json:"check_in_time"`
	CheckOutDate  string               `json:"check_out_date"`
	CheckOutTime  string               `json:"check_out_time"`
	NumAdults     int                  `json:"num_adults"`
	NumMinors     int                  `json:"num_minors"`
	MinorAges     []int                `json:"minor_ages,omitempty"`
	PricePerNight float64              `json:"price_per_night"`
	TotalNights   int                  `json:"total_nights"`
	TotalAmount   float64              `json:"total_amount"`
	PaymentMethod entity.PaymentMethod `json:"payment_method"`
	UPIApp        *string              `json:"upi_app,omitempty"`
	PaymentStatus entity.PaymentStatus `json:"payment_status"`
	BookingStatus entity.BookingStatus `json:"booking_status"`
	AdminRemarks  *string              `json:"admin_remarks,omitempty"`
	ConfirmedAt   *time.Time           `json:"confirmed_at,omitempty"`
	CancelledAt   *time.Time           `json:"cancelled_at,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

func BookingToResponse(b *repository.BookingWithRoom) BookingResponse {
	return BookingResponse{
		BookingRef:    b.BookingRef,
		RoomID:        b.RoomID,
		RoomTitle:     b.RoomTitle,
		RoomNumber:    b.RoomNumber,
		CategoryName:  b.CategoryName,
		UserID:        b.UserID.String(),
		GuestName:     b.GuestName,
		GuestEmail:    b.GuestEmail,
		GuestPhone:    b.GuestPhone,
		CheckInDate:   b.CheckInDate.Format("2006-01-02"),
		CheckInTime:   b.CheckInTime,
		CheckOutDate:  b.CheckOutDate.Format("2006-01-02"),
		CheckOutTime:  b.CheckOutTime,
		NumAdults:     b.NumAdults,
		NumMinors:     b.NumMinors,
		MinorAges:     b.MinorAges,
		PricePerNight: b.PricePerNight,
		TotalNights:   b.TotalNights,
		TotalAmount:   b.TotalAmount,
		PaymentMethod: b.PaymentMethod,
		UPIApp:        b.UPIApp,
		PaymentStatus: b.PaymentStatus,
		BookingStatus: b.Status,
		AdminRemarks:  b.AdminRemarks,
		ConfirmedAt:   b.ConfirmedAt,
		CancelledAt:   b.CancelledAt,
		CreatedAt:     b.CreatedAt,
	}
}
