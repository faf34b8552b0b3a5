package wire

import (
	"lodge-booking/internal/adaptor"
	"lodge-booking/internal/data/repository"
	"lodge-booking/pkg/middleware"
	"lodge-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireRoom(
	r chi.Router,
	roomHandler *adaptor.RoomHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/rooms - Browse rooms grouped by category (public)
	r.Get("/api/rooms", roomHandler.GetRooms)

	// GET /api/rooms/{id} - Room details (public)
	r.Get("/api/rooms/{id}", roomHandler.GetRoomByID)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/rooms", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.Admin(log))

		// PUT /api/admin/rooms/{id}/availability - Manual availability override
		r.Put("/{id}/availability", roomHandler.SetAvailability)
	})
}
