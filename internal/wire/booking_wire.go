package wire

import (
	"lodge-booking/internal/adaptor"
	"lodge-booking/internal/data/repository"
	"lodge-booking/pkg/middleware"
	"lodge-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		// POST /api/bookings/create - Create new booking (authenticated users only)
		r.Post("/api/bookings/create", bookingHandler.CreateBooking)

		// GET /api/bookings/my - View own booking history
		r.Get("/api/bookings/my", bookingHandler.GetUserBookings)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/bookings", func(r chi.Router) {
		// Require both authentication AND admin role
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.Admin(log))

		// GET /api/admin/bookings - List bookings with filters
		r.Get("/", bookingHandler.GetAllBookings)

		// GET /api/admin/bookings/pending - Bookings awaiting confirmation
		r.Get("/pending", bookingHandler.GetPendingBookings)

		// GET /api/admin/bookings/{ref} - View any booking's details
		r.Get("/{ref}", bookingHandler.GetBookingByRef)

		// PUT /api/admin/bookings/{ref}/status - Update booking status
		r.Put("/{ref}/status", bookingHandler.UpdateBookingStatus)

		// DELETE /api/admin/bookings/{ref} - Remove a booking record
		r.Delete("/{ref}", bookingHandler.DeleteBooking)
	})
}
