package app

import (
	"github.com/agendum/agendum/internal/config"
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Events
	r.HandleFunc("/api/event", deps.EventHandler.CreateEvent).Methods("POST")
	r.HandleFunc("/api/event", deps.EventHandler.GetEventsOnDate).Queries("date", "{date}").Methods("GET")
	r.HandleFunc("/api/event", deps.EventHandler.GetEventsByTitle).Queries("title", "{title}").Methods("GET")
	r.HandleFunc("/api/event", deps.EventHandler.SearchEvents).Queries("keyword", "{keyword}").Methods("GET")
	r.HandleFunc("/api/event", deps.EventHandler.GetUpcomingEvents).Queries("days", "{days}").Methods("GET")
	r.HandleFunc("/api/event", deps.EventHandler.GetAllEvents).Methods("GET")
	r.HandleFunc("/api/event", deps.EventHandler.DeleteEventsByTitle).Queries("title", "{title}").Methods("DELETE")
	// Registered before the {eventId} routes so "all" is not parsed as an id.
	r.HandleFunc("/api/event/all", deps.EventHandler.DeleteAllEvents).Methods("DELETE")
	r.HandleFunc("/api/event/{eventId}", deps.EventHandler.UpdateEvent).Methods("PUT")
	r.HandleFunc("/api/event/{eventId}", deps.EventHandler.DeleteEvent).Methods("DELETE")

	// Assistant
	r.HandleFunc("/api/assistant/message", deps.AssistantHandler.PostMessage).Methods("POST")
	r.HandleFunc("/api/assistant/history", deps.AssistantHandler.GetHistory).Methods("GET")
}
