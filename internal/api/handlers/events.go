package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gatherhub/server/internal/api/respond"
	"github.com/gatherhub/server/internal/domain/events"
	"github.com/go-playground/validator/v10"
)

type EventsHandler struct {
	Service  *events.Service
	Validate *validator.Validate
}

func NewEventsHandler(service *events.Service) *EventsHandler {
	return &EventsHandler{Service: service, Validate: validator.New()}
}

type createEventRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
	Date        string  `json:"date" validate:"required"`
	Time        *string `json:"time"`
	Location    *string `json:"location"`
	UserID      int64   `json:"user_id" validate:"required"`
}

type updateEventRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	Location    *string `json:"location"`
	UserID      *int64  `json:"user_id"`
}

type callerRequest struct {
	UserID *int64 `json:"user_id"`
}

type eventPayload struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Date        string    `json:"date"`
	Time        *string   `json:"time"`
	Location    *string   `json:"location"`
	CreatedBy   int64     `json:"created_by_user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toEventPayload(event *events.Event) eventPayload {
	return eventPayload{
		ID:          event.ID,
		Title:       event.Title,
		Description: event.Description,
		Date:        event.Date.Format(events.DateFormat),
		Time:        events.FormatTime(event.Time),
		Location:    event.Location,
		CreatedBy:   event.CreatedBy,
		CreatedAt:   event.CreatedAt,
		UpdatedAt:   event.UpdatedAt,
	}
}

// List handles GET /api/events?q=&location=.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := events.Filters{
		Query:    strings.TrimSpace(r.URL.Query().Get("q")),
		Location: strings.TrimSpace(r.URL.Query().Get("location")),
	}

	items, err := h.Service.List(r.Context(), filters)
	if err != nil {
		respond.Error(w, r, http.StatusInternalServerError, "Unexpected server error", err)
		return
	}

	payload := make([]eventPayload, 0, len(items))
	for i := range items {
		payload = append(payload, toEventPayload(&items[i]))
	}
	respond.JSON(w, http.StatusOK, payload)
}

// Get handles GET /api/events/{id}.
func (h *EventsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.Error(w, r, http.StatusBadRequest, "Invalid event id", err)
		return
	}

	event, err := h.Service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, events.ErrNotFound) {
			respond.Error(w, r, http.StatusNotFound, "Event not found", err)
			return
		}
		respond.Error(w, r, http.StatusInternalServerError, "Unexpected server error", err)
		return
	}

	respond.JSON(w, http.StatusOK, toEventPayload(event))
}

// Create handles POST /api/events. An unknown creator id is rejected
// with 403.
func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := decodeJSON(r, &req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "Missing required fields", err)
		return
	}

	event, err := h.Service.Create(r.Context(), events.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Location:    req.Location,
		CreatedBy:   req.UserID,
	})
	if err != nil {
		var validationErr events.ValidationError
		switch {
		case errors.As(err, &validationErr):
			respond.Error(w, r, http.StatusBadRequest, validationErr.Error(), err)
		case errors.Is(err, events.ErrCreatorNotFound):
			respond.Error(w, r, http.StatusForbidden, "User not found or not authorized to create event", err)
		default:
			respond.Error(w, r, http.StatusInternalServerError, "Unexpected server error", err)
		}
		return
	}

	respond.JSON(w, http.StatusCreated, map[string]any{
		"message":  "Event created successfully",
		"event_id": event.ID,
	})
}

// Update handles PUT /api/events/{id}. Only fields present in the body
// change; user_id identifies the caller for the ownership check.
func (h *EventsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.Error(w, r, http.StatusBadRequest, "Invalid event id", err)
		return
	}

	var req updateEventRequest
	if err := decodeJSON(r, &req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.UserID == nil {
		respond.Error(w, r, http.StatusUnauthorized, "Caller identity is required", nil)
		return
	}

	_, err = h.Service.Update(r.Context(), id, *req.UserID, events.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Location:    req.Location,
	})
	if err != nil {
		h.writeMutationError(w, r, err, "You are not authorized to update this event")
		return
	}

	respond.Message(w, http.StatusOK, "Event updated successfully")
}

// Delete handles DELETE /api/events/{id}. Attendance rows cascade away
// with the event.
func (h *EventsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.Error(w, r, http.StatusBadRequest, "Invalid event id", err)
		return
	}

	var req callerRequest
	if err := decodeJSON(r, &req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.UserID == nil {
		respond.Error(w, r, http.StatusUnauthorized, "Caller identity is required", nil)
		return
	}

	if err := h.Service.Delete(r.Context(), id, *req.UserID); err != nil {
		h.writeMutationError(w, r, err, "You are not authorized to delete this event")
		return
	}

	respond.Message(w, http.StatusOK, "Event deleted successfully")
}

func (h *EventsHandler) writeMutationError(w http.ResponseWriter, r *http.Request, err error, forbiddenMsg string) {
	var validationErr events.ValidationError
	switch {
	case errors.Is(err, events.ErrNotFound):
		respond.Error(w, r, http.StatusNotFound, "Event not found", err)
	case errors.Is(err, events.ErrForbidden):
		respond.Error(w, r, http.StatusForbidden, forbiddenMsg, err)
	case errors.As(err, &validationErr):
		respond.Error(w, r, http.StatusBadRequest, validationErr.Error(), err)
	default:
		respond.Error(w, r, http.StatusInternalServerError, "Unexpected server error", err)
	}
}
