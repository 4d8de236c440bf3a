package app

import (
	"database/sql"

	"github.com/agendum/agendum/internal/config"
	"github.com/agendum/agendum/internal/utils"
	"github.com/agendum/agendum/pkg/assistant"
	"github.com/agendum/agendum/pkg/chat"
	"github.com/agendum/agendum/pkg/event"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventRepo    event.EventRepo
	EventService event.EventService
	EventHandler *event.EventHandler

	ChatLog          *chat.Log
	Assistant        *assistant.Assistant
	AssistantHandler *assistant.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = &utils.SystemClock{}

	deps.EventRepo = event.NewEventRepo(db)
	deps.EventService = event.NewEventService(deps.EventRepo, deps.Clock)
	deps.EventHandler = event.NewEventHandler(deps.EventService)

	deps.ChatLog = chat.NewLog(cfg.Chat.HistoryPath)
	deps.Assistant = assistant.New(deps.EventService, deps.ChatLog, deps.Clock)
	deps.AssistantHandler = assistant.NewHandler(deps.Assistant)

	return deps
}
