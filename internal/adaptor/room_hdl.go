package adaptor

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"lodge-booking/internal/dto/request"
	"lodge-booking/internal/usecase"
	"lodge-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type RoomHandler struct {
	service      usecase.RoomService
	availability usecase.AvailabilityService
	log          *zap.Logger
}

func NewRoomHandler(service usecase.RoomService, availability usecase.AvailabilityService, log *zap.Logger) *RoomHandler {
	return &RoomHandler{
		service:      service,
		availability: availability,
		log:          log.With(zap.String("handler", "room")),
	}
}

// GetRooms handles GET /api/rooms (public)
func (h *RoomHandler) GetRooms(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var req request.RoomFilterRequest
	if v := query.Get("category"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			req.CategoryID = &id
		}
	}
	if v := query.Get("available"); v != "" {
		available := v == "true"
		req.Available = &available
	}
	if v := query.Get("min_price"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			req.MinPrice = &p
		}
	}
	if v := query.Get("max_price"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			req.MaxPrice = &p
		}
	}

	rooms, err := h.service.GetRooms(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "get rooms")
		return
	}

	utils.ResponseSuccess(w, "success", rooms)
}

// GetRoomByID handles GET /api/rooms/{id} (public)
func (h *RoomHandler) GetRoomByID(w http.ResponseWriter, r *http.Request) {
	roomID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid room ID", nil)
		return
	}

	room, err := h.service.GetRoomByID(r.Context(), roomID)
	if err != nil {
		h.handleServiceError(w, err, "get room")
		return
	}

	utils.ResponseSuccess(w, "success", room)
}

// SetAvailability handles PUT /api/admin/rooms/{id}/availability (admin only).
// The override is advisory: the next reconciliation pass recomputes the
// flag from the booking ledger and will overwrite it.
func (h *RoomHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	roomID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid room ID", nil)
		return
	}

	var req request.SetAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.availability.SetAvailability(r.Context(), roomID, *req.IsAvailable); err != nil {
		h.handleServiceError(w, err, "set room availability")
		return
	}

	utils.ResponseSuccess(w, "Room availability updated successfully", nil)
}

func (h *RoomHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "invalid"):
		h.log.Warn("Invalid input for "+operation,
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
