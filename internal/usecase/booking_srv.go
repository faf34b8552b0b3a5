package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lodge-booking/internal/data/entity"
	"lodge-booking/internal/data/repository"
	"lodge-booking/internal/dto/request"
	"lodge-booking/internal/dto/response"
	"lodge-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// refAttempts bounds the retries when a generated booking reference
// collides with an existing row.
const refAttempts = 3

type BookingService interface {
	// Public endpoints (require auth)
	CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)

	// Admin endpoints
	GetBookingByRef(ctx context.Context, ref string) (*response.BookingResponse, error)
	GetAllBookings(ctx context.Context, req *request.AdminBookingFilterRequest) ([]response.BookingResponse, error)
	GetPendingBookings(ctx context.Context) ([]response.BookingResponse, error)
	UpdateBookingStatus(ctx context.Context, ref string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error)
	DeleteBooking(ctx context.Context, ref string) error
}

type bookingService struct {
	repo         *repository.Repository
	availability AvailabilityService
	log          *zap.Logger
	now          func() time.Time
}

func NewBookingService(repo *repository.Repository, availability AvailabilityService, log *zap.Logger) BookingService {
	return &bookingService{
		repo:         repo,
		availability: availability,
		log:          log.With(zap.String("service", "booking")),
		now:          time.Now,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	req.ApplyDefaults()

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	checkIn, err := utils.ParseDate(req.CheckInDate)
	if err != nil {
		return nil, fmt.Errorf("invalid check-in date %s", req.CheckInDate)
	}
	checkOut, err := utils.ParseDate(req.CheckOutDate)
	if err != nil {
		return nil, fmt.Errorf("invalid check-out date %s", req.CheckOutDate)
	}

	// Calendar-day comparison; time of day plays no part here.
	today := utils.DateOnly(s.now().UTC())
	if checkIn.Before(today) {
		return nil, fmt.Errorf("check-in date cannot be in the past")
	}
	if !checkOut.After(checkIn) {
		return nil, fmt.Errorf("check-out date must be after check-in date")
	}

	room, err := s.repo.Room.FindByID(ctx, req.RoomID)
	if err != nil {
		return nil, fmt.Errorf("look up room: %w", err)
	}
	if room == nil {
		return nil, fmt.Errorf("room %d not found", req.RoomID)
	}
	if !room.IsEnabled {
		return nil, fmt.Errorf("room is not available")
	}

	conflict, err := s.repo.Booking.HasConflict(ctx, req.RoomID, checkIn, checkOut)
	if err != nil {
		s.log.Error("Failed to check booking conflict", zap.Error(err))
		return nil, fmt.Errorf("check availability: %w", err)
	}
	if conflict {
		return nil, repository.ErrDateConflict
	}

	// Pricing is frozen onto the booking from the room's discounted price;
	// later price changes never touch existing bookings.
	nights, total := ComputeStay(room.FinalPrice, checkIn, checkOut)

	now := s.now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		RoomID:        req.RoomID,
		UserID:        userUUID,
		GuestName:     req.FullName,
		GuestEmail:    req.Email,
		GuestPhone:    req.Phone,
		CheckInDate:   checkIn,
		CheckInTime:   req.CheckInTime,
		CheckOutDate:  checkOut,
		CheckOutTime:  req.CheckOutTime,
		NumAdults:     req.NumAdults,
		NumMinors:     req.NumMinors,
		MinorAges:     req.MinorAges,
		PricePerNight: room.FinalPrice,
		TotalNights:   nights,
		TotalAmount:   total,
		PaymentMethod: entity.PaymentMethod(req.PaymentMethod),
		PaymentStatus: entity.PaymentStatusPending,
		Status:        entity.BookingStatusPending,
	}
	if req.UPIApp != "" {
		booking.UPIApp = &req.UPIApp
	}

	// The reference is date+random and not guaranteed unique; the unique
	// index on booking_ref is the arbiter, so retry a fresh one on clash.
	for attempt := 0; ; attempt++ {
		booking.BookingRef = utils.GenerateBookingRef()

		err = s.repo.Booking.Create(ctx, booking)
		if err == nil {
			break
		}
		if errors.Is(err, repository.ErrRefTaken) && attempt < refAttempts-1 {
			continue
		}
		if errors.Is(err, repository.ErrDateConflict) {
			// Lost the race to a concurrent insert; the exclusion
			// constraint kept the ledger consistent.
			return nil, err
		}
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.Int("room_id", req.RoomID),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	// The booking exists either way; a failed reconcile here is corrected
	// by the next scheduled sweep.
	if err := s.availability.ReconcileRoom(ctx, req.RoomID); err != nil {
		s.log.Warn("Post-create availability reconcile failed",
			zap.Error(err),
			zap.Int("room_id", req.RoomID),
		)
	}

	s.log.Info("Booking created",
		zap.String("booking_ref", booking.BookingRef),
		zap.String("user_id", userID),
		zap.Int("room_id", req.RoomID),
		zap.Int("total_nights", nights),
		zap.Float64("total_amount", total),
	)

	created, err := s.repo.Booking.FindByRefWithRoom(ctx, booking.BookingRef)
	if err != nil || created == nil {
		return nil, fmt.Errorf("load created booking %s: %w", booking.BookingRef, err)
	}

	resp := response.BookingToResponse(created)
	return &resp, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	bookings, err := s.repo.Booking.FindByUserID(ctx, userUUID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get user bookings",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userUUID)
	if err != nil {
		s.log.Error("Failed to count user bookings", zap.Error(err))
		return nil, fmt.Errorf("count user bookings: %w", err)
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, b := range bookings {
		bookingResponses[i] = response.BookingToResponse(b)
	}

	return response.NewPaginatedResponse(bookingResponses, req.Page, req.PerPage, total), nil
}

// ==================== ADMIN METHODS ====================

func (s *bookingService) GetBookingByRef(ctx context.Context, ref string) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.FindByRefWithRoom(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s not found", ref)
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetAllBookings(ctx context.Context, req *request.AdminBookingFilterRequest) ([]response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	filter, err := buildBookingFilter(req)
	if err != nil {
		return nil, err
	}

	bookings, err := s.repo.Booking.FindAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to get bookings", zap.Error(err))
		return nil, fmt.Errorf("get bookings: %w", err)
	}

	out := make([]response.BookingResponse, len(bookings))
	for i, b := range bookings {
		out[i] = response.BookingToResponse(b)
	}
	return out, nil
}

func buildBookingFilter(req *request.AdminBookingFilterRequest) (repository.BookingFilter, error) {
	var filter repository.BookingFilter

	if req.Status != "" {
		status := entity.BookingStatus(req.Status)
		filter.Status = &status
	}
	if req.BookingRef != "" {
		filter.BookingRef = &req.BookingRef
	}
	if req.Date != "" {
		d, err := utils.ParseDate(req.Date)
		if err != nil {
			return filter, fmt.Errorf("invalid date %s", req.Date)
		}
		filter.CheckInDate = &d
	}
	if req.StartDate != "" && req.EndDate != "" {
		start, err := utils.ParseDate(req.StartDate)
		if err != nil {
			return filter, fmt.Errorf("invalid start date %s", req.StartDate)
		}
		end, err := utils.ParseDate(req.EndDate)
		if err != nil {
			return filter, fmt.Errorf("invalid end date %s", req.EndDate)
		}
		filter.StartDate = &start
		filter.EndDate = &end
	}

	return filter, nil
}

func (s *bookingService) GetPendingBookings(ctx context.Context) ([]response.BookingResponse, error) {
	return s.GetAllBookings(ctx, &request.AdminBookingFilterRequest{
		Status: string(entity.BookingStatusPending),
	})
}

func (s *bookingService) UpdateBookingStatus(ctx context.Context, ref string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update booking status validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	current, err := s.repo.Booking.FindByRef(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if current == nil {
		return nil, fmt.Errorf("booking %s not found", ref)
	}

	// Any of the five statuses may be set from any other; there is no
	// transition table. Admins use this to correct mistakes freely.
	newStatus := entity.BookingStatus(req.BookingStatus)
	statusChanged := current.Status != newStatus

	upd := repository.StatusUpdate{
		Status:       newStatus,
		AdminRemarks: req.AdminRemarks,
		ConfirmedNow: statusChanged && newStatus == entity.BookingStatusConfirmed,
		CancelledNow: statusChanged && newStatus == entity.BookingStatusCancelled,
	}
	if req.PaymentStatus != "" {
		ps := entity.PaymentStatus(req.PaymentStatus)
		upd.PaymentStatus = &ps
	}

	if err := s.repo.Booking.UpdateStatus(ctx, ref, upd); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("booking %s not found", ref)
		}
		if errors.Is(err, repository.ErrDateConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("update booking status: %w", err)
	}

	// The set of active bookings for the room changed, so its availability
	// flag may be stale. Unchanged status needs no reconcile.
	if statusChanged {
		if err := s.availability.ReconcileRoom(ctx, current.RoomID); err != nil {
			s.log.Warn("Post-update availability reconcile failed",
				zap.Error(err),
				zap.Int("room_id", current.RoomID),
			)
		}
	}

	s.log.Info("Booking status updated",
		zap.String("booking_ref", ref),
		zap.String("old_status", string(current.Status)),
		zap.String("new_status", string(newStatus)),
	)

	updated, err := s.repo.Booking.FindByRefWithRoom(ctx, ref)
	if err != nil || updated == nil {
		return nil, fmt.Errorf("load updated booking %s: %w", ref, err)
	}

	resp := response.BookingToResponse(updated)
	return &resp, nil
}

func (s *bookingService) DeleteBooking(ctx context.Context, ref string) error {
	booking, err := s.repo.Booking.FindByRef(ctx, ref)
	if err != nil {
		return fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return fmt.Errorf("booking %s not found", ref)
	}

	if err := s.repo.Booking.Delete(ctx, ref); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("booking %s not found", ref)
		}
		return fmt.Errorf("delete booking %s: %w", ref, err)
	}

	// Deleting an active booking can free the room, so reconcile here
	// rather than waiting for the hourly sweep.
	if err := s.availability.ReconcileRoom(ctx, booking.RoomID); err != nil {
		s.log.Warn("Post-delete availability reconcile failed",
			zap.Error(err),
			zap.Int("room_id", booking.RoomID),
		)
	}

	s.log.Info("Booking deleted",
		zap.String("booking_ref", ref),
		zap.Int("room_id", booking.RoomID),
	)

	return nil
}
