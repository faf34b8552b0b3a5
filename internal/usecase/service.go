package usecase

import (
	"lodge-booking/internal/data/repository"
	"lodge-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Booking      BookingService
	Availability AvailabilityService
	Room         RoomService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	availability := NewAvailabilityService(repo, log)

	return &Service{
		Booking:      NewBookingService(repo, availability, log),
		Availability: availability,
		Room:         NewRoomService(repo, log),
	}
}
