package event

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/agendum/agendum/internal/rest"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type EventDTO struct {
	ID        int    `json:"id"`
	User      string `json:"user"`
	Title     string `json:"title"`
	Date      string `json:"date"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
}

type EventRequest struct {
	Title     string `json:"title"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type EventHandler struct {
	eventService EventService
}

func NewEventHandler(eventService EventService) *EventHandler {
	return &EventHandler{eventService}
}

func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Trace("Creating new event")

	var req EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid request body format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			return
		}
		return
	}

	created, err := h.eventService.Create(r.Context(), Draft{
		Title:     req.Title,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(ToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *EventHandler) GetAllEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventService.GetAll(r.Context())
	h.writeEvents(w, events, err)
}

func (h *EventHandler) GetEventsOnDate(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	events, err := h.eventService.GetOnDate(r.Context(), date)
	h.writeEvents(w, events, err)
}

func (h *EventHandler) GetEventsByTitle(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	events, err := h.eventService.GetByTitle(r.Context(), title)
	h.writeEvents(w, events, err)
}

func (h *EventHandler) SearchEvents(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")
	events, err := h.eventService.GetByKeyword(r.Context(), keyword)
	h.writeEvents(w, events, err)
}

func (h *EventHandler) GetUpcomingEvents(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	daysParam := r.URL.Query().Get("days")
	days, err := strconv.Atoi(daysParam)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid days format",
			Details: "'days' must be a non-negative integer",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			return
		}
		return
	}

	events, serviceErr := h.eventService.GetNextNDays(r.Context(), days)
	h.writeEvents(w, events, serviceErr)
}

func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id, ok := eventIdFromPath(w, r)
	if !ok {
		return
	}

	var req EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid request body format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			return
		}
		return
	}

	updated, err := h.eventService.Update(r.Context(), id, Patch{
		Title:     req.Title,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !updated {
		writeNotFound(w)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]bool{"updated": true}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id, ok := eventIdFromPath(w, r)
	if !ok {
		return
	}

	deleted, err := h.eventService.Delete(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !deleted {
		writeNotFound(w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *EventHandler) DeleteEventsByTitle(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	title := r.URL.Query().Get("title")
	deleted, err := h.eventService.DeleteByTitle(r.Context(), title)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !deleted {
		writeNotFound(w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *EventHandler) DeleteAllEvents(w http.ResponseWriter, r *http.Request) {
	if err := h.eventService.DeleteAll(r.Context()); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *EventHandler) writeEvents(w http.ResponseWriter, events []Event, err error) {
	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		writeServiceError(w, err)
		return
	}

	dtos := make([]EventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, ToDTO(e))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	log.Tracef("Events returned: %d", len(dtos))
}

func eventIdFromPath(w http.ResponseWriter, r *http.Request) (int, bool) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["eventId"])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid event id",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return 0, false
	}
	return id, true
}

// writeServiceError translates store error kinds into status codes:
// validation failures map to 400, duplicates to 409, the rest to 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case IsValidationError(err):
		w.WriteHeader(http.StatusBadRequest)
	case errors.Is(err, ErrDuplicateEvent):
		w.WriteHeader(http.StatusConflict)
	default:
		log.Errorf("event operation failed: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()}); encodeErr != nil {
		http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
	}
}

func writeNotFound(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNotFound)
	if err := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Event not found"}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// ToDTO maps an Event to its JSON representation.
func ToDTO(e Event) EventDTO {
	return EventDTO{
		ID:        e.ID,
		User:      e.User,
		Title:     e.Title,
		Date:      e.Date,
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
	}
}
