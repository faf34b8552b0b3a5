package request

type CreateBookingRequest struct {
	RoomID        int    `json:"room_id" validate:"required,min=1"`
	FullName      string `json:"full_name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required"`
	CheckInDate   string `json:"check_in_date" validate:"required"`
	CheckInTime   string `json:"check_in_time,omitempty"`
	CheckOutDate  string `json:"check_out_date" validate:"required"`
	CheckOutTime  string `json:"check_out_time,omitempty"`
	NumAdults     int    `json:"num_adults,omitempty" validate:"omitempty,min=1"`
	NumMinors     int    `json:"num_minors,omitempty" validate:"omitempty,min=0"`
	MinorAges     []int  `json:"minor_ages,omitempty"`
	PaymentMethod string `json:"payment_method,omitempty" validate:"omitempty,oneof=upi pay_at_property"`
	UPIApp        string `json:"upi_app,omitempty"`
}

// ApplyDefaults fills the optional fields the public booking form may omit.
func (r *CreateBookingRequest) ApplyDefaults() {
	if r.CheckInTime == "" {
		r.CheckInTime = "14:00:00"
	}
	if r.CheckOutTime == "" {
		r.CheckOutTime = "11:00:00"
	}
	if r.NumAdults == 0 {
		r.NumAdults = 1
	}
	if r.PaymentMethod == "" {
		r.PaymentMethod = "pay_at_property"
	}
}

type UpdateBookingStatusRequest struct {
	BookingStatus string  `json:"booking_status" validate:"required,oneof=pending confirmed cancelled completed no_show"`
	PaymentStatus string  `json:"payment_status,omitempty" validate:"omitempty,oneof=pending completed failed refunded"`
	AdminRemarks  *string `json:"admin_remarks,omitempty"`
}

type AdminBookingFilterRequest struct {
	Status     string `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed cancelled completed no_show"`
	BookingRef string `json:"booking_ref,omitempty"`
	Date       string `json:"date,omitempty"`
	StartDate  string `json:"start_date,omitempty"`
	EndDate    string `json:"end_date,omitempty"`
}
