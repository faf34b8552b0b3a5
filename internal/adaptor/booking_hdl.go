package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"lodge-booking/internal/dto/request"
	"lodge-booking/internal/usecase"
	"lodge-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/bookings/create (protected)
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), userID.String(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "Booking created successfully", booking)
}

// GetUserBookings handles GET /api/bookings/my (protected)
func (h *BookingHandler) GetUserBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	bookings, err := h.service.GetUserBookings(r.Context(), userID.String(), req)
	if err != nil {
		h.handleServiceError(w, err, "get user bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// ==================== ADMIN METHODS ====================

// GetAllBookings handles GET /api/admin/bookings (admin only)
func (h *BookingHandler) GetAllBookings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.AdminBookingFilterRequest{
		Status:     query.Get("status"),
		BookingRef: query.Get("booking_ref"),
		Date:       query.Get("date"),
		StartDate:  query.Get("start_date"),
		EndDate:    query.Get("end_date"),
	}

	bookings, err := h.service.GetAllBookings(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, err, "get bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetPendingBookings handles GET /api/admin/bookings/pending (admin only)
func (h *BookingHandler) GetPendingBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.service.GetPendingBookings(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get pending bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetBookingByRef handles GET /api/admin/bookings/{ref} (admin only)
func (h *BookingHandler) GetBookingByRef(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")
	if ref == "" {
		utils.ResponseBadRequest(w, "Booking reference is required", nil)
		return
	}

	booking, err := h.service.GetBookingByRef(r.Context(), ref)
	if err != nil {
		h.handleServiceError(w, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// UpdateBookingStatus handles PUT /api/admin/bookings/{ref}/status (admin only)
func (h *BookingHandler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")
	if ref == "" {
		utils.ResponseBadRequest(w, "Booking reference is required", nil)
		return
	}

	var req request.UpdateBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.UpdateBookingStatus(r.Context(), ref, &req)
	if err != nil {
		h.handleServiceError(w, err, "update booking status")
		return
	}

	utils.ResponseSuccess(w, "Booking status updated successfully", booking)
}

// DeleteBooking handles DELETE /api/admin/bookings/{ref} (admin only)
func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")
	if ref == "" {
		utils.ResponseBadRequest(w, "Booking reference is required", nil)
		return
	}

	if err := h.service.DeleteBooking(r.Context(), ref); err != nil {
		h.handleServiceError(w, err, "delete booking")
		return
	}

	utils.ResponseSuccess(w, "Booking deleted successfully", nil)
}

// handleServiceError maps booking service errors onto HTTP responses.
func (h *BookingHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "validation failed"):
		h.log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "invalid"):
		h.log.Warn("Invalid input for "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "not available"):
		h.log.Warn(operation+" failed - room unavailable",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "cannot"):
		h.log.Warn(operation+" failed - rejected",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "must be"):
		h.log.Warn(operation+" failed - rejected",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
