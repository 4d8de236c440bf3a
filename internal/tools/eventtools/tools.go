// Package eventtools registers the calendar operations as MCP tools so AI
// assistants can drive the event store through the Model Context Protocol.
package eventtools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/agendum/agendum/pkg/event"
	"github.com/agendum/agendum/pkg/user"
)

// RegisterEventTools registers all event tools with the MCP server.
// defaultUser scopes calls that do not name a user explicitly.
func RegisterEventTools(s *mcpserver.MCPServer, events event.EventService, defaultUser string) {
	addEventTool := mcp.NewTool("calendar_add_event",
		mcp.WithDescription("Add a calendar event. Fails if an event with the same title, date and start time already exists."),
		mcp.WithString("user",
			mcp.Description("Owner of the event (defaults to the configured user)"),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Event title"),
		),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Event date (YYYY-MM-DD)"),
		),
		mcp.WithString("startTime",
			mcp.Description("Start time (HH:MM, 24-hour), optional"),
		),
		mcp.WithString("endTime",
			mcp.Description("End time (HH:MM, 24-hour), optional"),
		),
	)
	s.AddTool(addEventTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleAddEvent(ctx, request, events, defaultUser)
	})

	listEventsTool := mcp.NewTool("calendar_list_events",
		mcp.WithDescription("List all calendar events for a user, ordered by date and start time"),
		mcp.WithString("user",
			mcp.Description("Owner of the events (defaults to the configured user)"),
		),
	)
	s.AddTool(listEventsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ctx = scopedContext(ctx, request, defaultUser)
		result, err := events.GetAll(ctx)
		return listToolResult(result, err, "No events found.")
	})

	listOnDateTool := mcp.NewTool("calendar_list_events_on_date",
		mcp.WithDescription("List calendar events on an exact date"),
		mcp.WithString("user",
			mcp.Description("Owner of the events (defaults to the configured user)"),
		),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Date to list (YYYY-MM-DD)"),
		),
	)
	s.AddTool(listOnDateTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		date, ok := request.GetArguments()["date"].(string)
		if !ok || date == "" {
			return mcp.NewToolResultError("date is required"), nil
		}
		ctx = scopedContext(ctx, request, defaultUser)
		result, err := events.GetOnDate(ctx, date)
		return listToolResult(result, err, fmt.Sprintf("No events on %s", date))
	})

	listByTitleTool := mcp.NewTool("calendar_list_events_by_title",
		mcp.WithDescription("List calendar events with an exact title (case-sensitive)"),
		mcp.WithString("user",
			mcp.Description("Owner of the events (defaults to the configured user)"),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Exact event title"),
		),
	)
	s.AddTool(listByTitleTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		title, ok := request.GetArguments()["title"].(string)
		if !ok || title == "" {
			return mcp.NewToolResultError("title is required"), nil
		}
		ctx = scopedContext(ctx, request, defaultUser)
		result, err := events.GetByTitle(ctx, title)
		return listToolResult(result, err, fmt.Sprintf("No events with title '%s'", title))
	})

	searchTool := mcp.NewTool("calendar_search_events",
		mcp.WithDescription("Search calendar events whose title contains a keyword (case-insensitive)"),
		mcp.WithString("user",
			mcp.Description("Owner of the events (defaults to the configured user)"),
		),
		mcp.WithString("keyword",
			mcp.Required(),
			mcp.Description("Substring to search for in event titles"),
		),
	)
	s.AddTool(searchTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		keyword, ok := request.GetArguments()["keyword"].(string)
		if !ok || keyword == "" {
			return mcp.NewToolResultError("keyword is required"), nil
		}
		ctx = scopedContext(ctx, request, defaultUser)
		result, err := events.GetByKeyword(ctx, keyword)
		return listToolResult(result, err, fmt.Sprintf("No events found with keyword '%s'", keyword))
	})

	upcomingTool := mcp.NewTool("calendar_list_upcoming",
		mcp.WithDescription("List calendar events from today through today+days (inclusive). days=0 means today only."),
		mcp.WithString("user",
			mcp.Description("Owner of the events (defaults to the configured user)"),
		),
		mcp.WithNumber("days",
			mcp.Required(),
			mcp.Description("Number of days ahead to include (non-negative)"),
		),
	)
	s.AddTool(upcomingTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		days, ok := request.GetArguments()["days"].(float64)
		if !ok {
			return mcp.NewToolResultError("days is required"), nil
		}
		ctx = scopedContext(ctx, request, defaultUser)
		result, err := events.GetNextNDays(ctx, int(days))
		return listToolResult(result, err, fmt.Sprintf("No events in next %d days", int(days)))
	})

	updateEventTool := mcp.NewTool("calendar_update_event",
		mcp.WithDescription("Update fields of a calendar event by id. Omitted fields keep their current value."),
		mcp.WithString("user",
			mcp.Description("Owner of the event (defaults to the configured user)"),
		),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Event id"),
		),
		mcp.WithString("title",
			mcp.Description("New title"),
		),
		mcp.WithString("date",
			mcp.Description("New date (YYYY-MM-DD)"),
		),
		mcp.WithString("startTime",
			mcp.Description("New start time (HH:MM)"),
		),
		mcp.WithString("endTime",
			mcp.Description("New end time (HH:MM)"),
		),
	)
	s.AddTool(updateEventTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleUpdateEvent(ctx, request, events, defaultUser)
	})

	deleteEventTool := mcp.NewTool("calendar_delete_event",
		mcp.WithDescription("Delete a calendar event by id"),
		mcp.WithString("user",
			mcp.Description("Owner of the event (defaults to the configured user)"),
		),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Event id"),
		),
	)
	s.AddTool(deleteEventTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		idArg, ok := request.GetArguments()["id"].(float64)
		if !ok {
			return mcp.NewToolResultError("id is required"), nil
		}
		id := int(idArg)
		ctx = scopedContext(ctx, request, defaultUser)
		deleted, err := events.Delete(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to delete event: %v", err)), nil
		}
		if !deleted {
			return mcp.NewToolResultError(fmt.Sprintf("Event %d not found", id)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Event %d deleted.", id)), nil
	})

	deleteByTitleTool := mcp.NewTool("calendar_delete_events_by_title",
		mcp.WithDescription("Delete all calendar events with an exact title"),
		mcp.WithString("user",
			mcp.Description("Owner of the events (defaults to the configured user)"),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Exact event title"),
		),
	)
	s.AddTool(deleteByTitleTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		title, ok := request.GetArguments()["title"].(string)
		if !ok || title == "" {
			return mcp.NewToolResultError("title is required"), nil
		}
		ctx = scopedContext(ctx, request, defaultUser)
		deleted, err := events.DeleteByTitle(ctx, title)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to delete events: %v", err)), nil
		}
		if !deleted {
			return mcp.NewToolResultError(fmt.Sprintf("No event found with title '%s'", title)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Event(s) with title '%s' deleted", title)), nil
	})

	clearTool := mcp.NewTool("calendar_clear_events",
		mcp.WithDescription("Delete every calendar event owned by the user"),
		mcp.WithString("user",
			mcp.Description("Owner of the events (defaults to the configured user)"),
		),
	)
	s.AddTool(clearTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ctx = scopedContext(ctx, request, defaultUser)
		if err := events.DeleteAll(ctx); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to delete events: %v", err)), nil
		}
		return mcp.NewToolResultText("All events deleted."), nil
	})
}

func handleAddEvent(ctx context.Context, request mcp.CallToolRequest, events event.EventService, defaultUser string) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	title, ok := args["title"].(string)
	if !ok || title == "" {
		return mcp.NewToolResultError("title is required"), nil
	}
	date, ok := args["date"].(string)
	if !ok || date == "" {
		return mcp.NewToolResultError("date is required"), nil
	}

	draft := event.Draft{Title: title, Date: date}
	if startTime, ok := args["startTime"].(string); ok {
		draft.StartTime = startTime
	}
	if endTime, ok := args["endTime"].(string); ok {
		draft.EndTime = endTime
	}

	ctx = scopedContext(ctx, request, defaultUser)
	created, err := events.Create(ctx, draft)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to add event: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Event added: %s", formatEvent(created))), nil
}

func handleUpdateEvent(ctx context.Context, request mcp.CallToolRequest, events event.EventService, defaultUser string) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	idArg, ok := args["id"].(float64)
	if !ok {
		return mcp.NewToolResultError("id is required"), nil
	}
	id := int(idArg)

	var patch event.Patch
	if title, ok := args["title"].(string); ok {
		patch.Title = title
	}
	if date, ok := args["date"].(string); ok {
		patch.Date = date
	}
	if startTime, ok := args["startTime"].(string); ok {
		patch.StartTime = startTime
	}
	if endTime, ok := args["endTime"].(string); ok {
		patch.EndTime = endTime
	}

	ctx = scopedContext(ctx, request, defaultUser)
	updated, err := events.Update(ctx, id, patch)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to update event: %v", err)), nil
	}
	if !updated {
		return mcp.NewToolResultError(fmt.Sprintf("Event %d not found", id)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Event %d updated successfully", id)), nil
}

// scopedContext resolves the owning user for a tool call: the explicit "user"
// argument when present, the configured default otherwise.
func scopedContext(ctx context.Context, request mcp.CallToolRequest, defaultUser string) context.Context {
	username := defaultUser
	if arg, ok := request.GetArguments()["user"].(string); ok && arg != "" {
		username = arg
	}
	return user.WithUser(ctx, username)
}

func listToolResult(events []event.Event, err error, emptyMessage string) (*mcp.CallToolResult, error) {
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list events: %v", err)), nil
	}
	if len(events) == 0 {
		return mcp.NewToolResultText(emptyMessage), nil
	}

	lines := make([]string, 0, len(events))
	for _, e := range events {
		lines = append(lines, formatEvent(e))
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func formatEvent(e event.Event) string {
	return fmt.Sprintf("[%d] %s on %s %s-%s", e.ID, e.Title, e.Date, e.StartTime, e.EndTime)
}
