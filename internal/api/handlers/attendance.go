package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gatherhub/server/internal/api/respond"
	"github.com/gatherhub/server/internal/domain/attendance"
)

type AttendanceHandler struct {
	Service *attendance.Service
}

func NewAttendanceHandler(service *attendance.Service) *AttendanceHandler {
	return &AttendanceHandler{Service: service}
}

type attendRequest struct {
	UserID *int64 `json:"user_id"`
}

type attendeePayload struct {
	UserID       int64     `json:"user_id"`
	Username     string    `json:"username"`
	RegisteredAt time.Time `json:"registered_at"`
}

// Attend handles POST /api/events/{id}/attend.
func (h *AttendanceHandler) Attend(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r)
	if err != nil {
		respond.Error(w, r, http.StatusBadRequest, "Invalid event id", err)
		return
	}

	var req attendRequest
	if err := decodeJSON(r, &req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.UserID == nil {
		respond.Error(w, r, http.StatusBadRequest, "User ID is required", nil)
		return
	}

	_, err = h.Service.Register(r.Context(), eventID, *req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, attendance.ErrEventNotFound):
			respond.Error(w, r, http.StatusNotFound, "Event not found", err)
		case errors.Is(err, attendance.ErrUserNotFound):
			respond.Error(w, r, http.StatusNotFound, "User not found", err)
		case errors.Is(err, attendance.ErrAlreadyRegistered):
			respond.Error(w, r, http.StatusConflict, "You are already attending this event", err)
		default:
			respond.Error(w, r, http.StatusInternalServerError, "Unexpected server error", err)
		}
		return
	}

	respond.Message(w, http.StatusOK, "Successfully registered to attend event")
}

// Attendees handles GET /api/events/{id}/attendees.
func (h *AttendanceHandler) Attendees(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r)
	if err != nil {
		respond.Error(w, r, http.StatusBadRequest, "Invalid event id", err)
		return
	}

	items, err := h.Service.ListForEvent(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, attendance.ErrEventNotFound) {
			respond.Error(w, r, http.StatusNotFound, "Event not found", err)
			return
		}
		respond.Error(w, r, http.StatusInternalServerError, "Unexpected server error", err)
		return
	}

	payload := make([]attendeePayload, 0, len(items))
	for _, item := range items {
		payload = append(payload, attendeePayload{
			UserID:       item.UserID,
			Username:     item.Username,
			RegisteredAt: item.RegisteredAt,
		})
	}
	respond.JSON(w, http.StatusOK, payload)
}
