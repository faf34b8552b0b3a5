package adaptor

import (
	"lodge-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Booking *BookingHandler
	Room    *RoomHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Booking: NewBookingHandler(service.Booking, log),
		Room:    NewRoomHandler(service.Room, service.Availability, log),
	}
}
