package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/agendum/agendum/internal/utils"
	"github.com/agendum/agendum/pkg/chat"
	"github.com/agendum/agendum/pkg/event"
	log "github.com/sirupsen/logrus"
)

// Result is the assistant's reply to one inbound message.
type Result struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Events  []event.EventDTO `json:"events,omitempty"`
}

const helpMessage = "I can manage your calendar. Try: " +
	`"add title=Doctor, date=2025-09-21, start=14:00", ` +
	`"list my events", "what's on 2025-09-21", "search doctor", ` +
	`"show next 7 days", "update id=3, start=15:00", "delete event 3" or "delete all".`

// Assistant maps free-text messages onto calendar operations and records the
// exchange in the conversation log.
type Assistant struct {
	events event.EventService
	log    *chat.Log
	clock  utils.Clock
}

func New(events event.EventService, chatLog *chat.Log, clock utils.Clock) *Assistant {
	return &Assistant{events: events, log: chatLog, clock: clock}
}

// HandleMessage appends the inbound message to the conversation log, executes
// the operation it maps to, and appends the reply. Store failures become
// replies, never errors; the returned error covers logging failures only.
func (a *Assistant) HandleMessage(ctx context.Context, text string) (Result, error) {
	if _, err := a.log.Append(chat.RoleUser, text); err != nil {
		return Result{}, fmt.Errorf("failed to log user message: %w", err)
	}

	cmd := Parse(text, a.clock.Now())
	log.Debugf("Parsed assistant command: action=%d", cmd.Action)
	result := a.execute(ctx, cmd)

	if _, err := a.log.Append(chat.RoleAssistant, result.Message); err != nil {
		return Result{}, fmt.Errorf("failed to log assistant reply: %w", err)
	}
	return result, nil
}

// History returns the most recent conversation entries, oldest first.
func (a *Assistant) History(limit int) ([]chat.Entry, error) {
	if limit <= 0 {
		return a.log.History()
	}
	return a.log.Tail(limit)
}

func (a *Assistant) execute(ctx context.Context, cmd Command) Result {
	switch cmd.Action {
	case ActionAdd:
		return a.addEvent(ctx, cmd)
	case ActionListAll:
		events, err := a.events.GetAll(ctx)
		return listResult(events, err, "No events found.")
	case ActionListDate:
		events, err := a.events.GetOnDate(ctx, cmd.Date)
		return listResult(events, err, fmt.Sprintf("No events on %s", cmd.Date))
	case ActionListTitle:
		events, err := a.events.GetByTitle(ctx, cmd.Title)
		return listResult(events, err, fmt.Sprintf("No events with title '%s'", cmd.Title))
	case ActionSearch:
		if cmd.Keyword == "" {
			return Result{Success: false, Message: "Tell me what to search for, e.g. search doctor"}
		}
		events, err := a.events.GetByKeyword(ctx, cmd.Keyword)
		return listResult(events, err, fmt.Sprintf("No events found with keyword '%s'", cmd.Keyword))
	case ActionListNext:
		if cmd.Days < 0 {
			return Result{Success: false, Message: "Tell me how many days ahead to look, e.g. show next 7 days"}
		}
		events, err := a.events.GetNextNDays(ctx, cmd.Days)
		return listResult(events, err, fmt.Sprintf("No events in next %d days", cmd.Days))
	case ActionUpdate:
		return a.updateEvent(ctx, cmd)
	case ActionDelete:
		return a.deleteEvent(ctx, cmd)
	case ActionDeleteTitle:
		return a.deleteByTitle(ctx, cmd)
	case ActionClear:
		if err := a.events.DeleteAll(ctx); err != nil {
			return Result{Success: false, Message: fmt.Sprintf("Could not delete events: %v", err)}
		}
		return Result{Success: true, Message: "All events deleted."}
	default:
		return Result{Success: false, Message: helpMessage}
	}
}

func (a *Assistant) addEvent(ctx context.Context, cmd Command) Result {
	if cmd.Title == "" || cmd.Date == "" {
		return Result{Success: false, Message: "I need at least a title and a date (YYYY-MM-DD) to add an event."}
	}

	created, err := a.events.Create(ctx, event.Draft{
		Title:     cmd.Title,
		Date:      cmd.Date,
		StartTime: cmd.StartTime,
		EndTime:   cmd.EndTime,
	})
	if err != nil {
		return Result{Success: false, Message: fmt.Sprintf("Could not add event: %v", err)}
	}

	return Result{
		Success: true,
		Message: fmt.Sprintf("Event added: %s", formatEventLine(created)),
		Events:  []event.EventDTO{event.ToDTO(created)},
	}
}

func (a *Assistant) updateEvent(ctx context.Context, cmd Command) Result {
	if cmd.ID < 0 {
		return Result{Success: false, Message: "Tell me which event to update, e.g. update id=3, start=15:00"}
	}

	updated, err := a.events.Update(ctx, cmd.ID, event.Patch{
		Title:     cmd.Title,
		Date:      cmd.Date,
		StartTime: cmd.StartTime,
		EndTime:   cmd.EndTime,
	})
	if err != nil {
		return Result{Success: false, Message: fmt.Sprintf("Could not update event: %v", err)}
	}
	if !updated {
		return Result{Success: false, Message: fmt.Sprintf("Event %d not found", cmd.ID)}
	}
	return Result{Success: true, Message: fmt.Sprintf("Event %d updated successfully", cmd.ID)}
}

func (a *Assistant) deleteEvent(ctx context.Context, cmd Command) Result {
	if cmd.ID < 0 {
		return Result{Success: false, Message: "Tell me which event to delete, e.g. delete event 3"}
	}

	deleted, err := a.events.Delete(ctx, cmd.ID)
	if err != nil {
		return Result{Success: false, Message: fmt.Sprintf("Could not delete event: %v", err)}
	}
	if !deleted {
		return Result{Success: false, Message: fmt.Sprintf("Event %d not found", cmd.ID)}
	}
	return Result{Success: true, Message: fmt.Sprintf("Event %d deleted.", cmd.ID)}
}

func (a *Assistant) deleteByTitle(ctx context.Context, cmd Command) Result {
	deleted, err := a.events.DeleteByTitle(ctx, cmd.Title)
	if err != nil {
		return Result{Success: false, Message: fmt.Sprintf("Could not delete events: %v", err)}
	}
	if !deleted {
		return Result{Success: false, Message: fmt.Sprintf("No event found with title '%s'", cmd.Title)}
	}
	return Result{Success: true, Message: fmt.Sprintf("Event(s) with title '%s' deleted", cmd.Title)}
}

func listResult(events []event.Event, err error, emptyMessage string) Result {
	if err != nil {
		return Result{Success: false, Message: fmt.Sprintf("Could not list events: %v", err)}
	}
	if len(events) == 0 {
		return Result{Success: true, Message: emptyMessage}
	}

	lines := make([]string, 0, len(events))
	dtos := make([]event.EventDTO, 0, len(events))
	for _, e := range events {
		lines = append(lines, formatEventLine(e))
		dtos = append(dtos, event.ToDTO(e))
	}
	return Result{Success: true, Message: strings.Join(lines, "\n"), Events: dtos}
}

// formatEventLine renders "[3] Doctor on 2025-09-21 14:00-15:00" with absent
// times left blank.
func formatEventLine(e event.Event) string {
	return fmt.Sprintf("[%d] %s on %s %s-%s", e.ID, e.Title, e.Date, e.StartTime, e.EndTime)
}
