package usecase

import (
	"context"
	"fmt"
	"time"

	"lodge-booking/internal/data/repository"
	"lodge-booking/pkg/utils"

	"go.uber.org/zap"
)

type AvailabilityService interface {
	// ReconcileRoom recomputes a room's availability flag from the
	// booking ledger. Idempotent; safe to call redundantly.
	ReconcileRoom(ctx context.Context, roomID int) error

	// ReconcileAll reconciles every enabled room. A failure on one room
	// is logged and does not stop the sweep.
	ReconcileAll(ctx context.Context) error

	// SetAvailability is the manual admin override. It is advisory: the
	// next reconciliation pass (mutation-triggered or scheduled)
	// recomputes the flag from actual booking state and overwrites it.
	SetAvailability(ctx context.Context, roomID int, available bool) error
}

type availabilityService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewAvailabilityService(repo *repository.Repository, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		repo: repo,
		log:  log.With(zap.String("service", "availability")),
		now:  time.Now,
	}
}

func (s *availabilityService) ReconcileRoom(ctx context.Context, roomID int) error {
	today := utils.DateOnly(s.now().UTC())

	count, err := s.repo.Booking.CountActiveFromDate(ctx, roomID, today)
	if err != nil {
		return fmt.Errorf("reconcile room %d: %w", roomID, err)
	}

	available := count == 0
	if err := s.repo.Room.SetAvailability(ctx, roomID, available); err != nil {
		return fmt.Errorf("reconcile room %d: %w", roomID, err)
	}

	s.log.Debug("Room availability reconciled",
		zap.Int("room_id", roomID),
		zap.Int64("active_bookings", count),
		zap.Bool("available", available),
	)

	return nil
}

func (s *availabilityService) ReconcileAll(ctx context.Context) error {
	ids, err := s.repo.Room.FindEnabledIDs(ctx)
	if err != nil {
		return fmt.Errorf("reconcile all rooms: %w", err)
	}

	reconciled := 0
	for _, roomID := range ids {
		if err := s.ReconcileRoom(ctx, roomID); err != nil {
			s.log.Error("Failed to reconcile room, continuing sweep",
				zap.Error(err),
				zap.Int("room_id", roomID),
			)
			continue
		}
		reconciled++
	}

	s.log.Info("Room availability sweep finished",
		zap.Int("rooms", len(ids)),
		zap.Int("reconciled", reconciled),
	)

	return nil
}

func (s *availabilityService) SetAvailability(ctx context.Context, roomID int, available bool) error {
	if err := s.repo.Room.SetAvailability(ctx, roomID, available); err != nil {
		return err
	}

	s.log.Info("Room availability overridden by admin",
		zap.Int("room_id", roomID),
		zap.Bool("available", available),
	)

	return nil
}
