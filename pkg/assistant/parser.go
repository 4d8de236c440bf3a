package assistant

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/agendum/agendum/pkg/event"
)

// Action is the store operation a parsed message maps to.
type Action int

const (
	ActionUnknown Action = iota
	ActionAdd
	ActionListAll
	ActionListDate
	ActionListTitle
	ActionSearch
	ActionListNext
	ActionUpdate
	ActionDelete
	ActionDeleteTitle
	ActionClear
)

// Command is the structured form of a free-text message.
type Command struct {
	Action    Action
	ID        int
	Title     string
	Date      string
	StartTime string
	EndTime   string
	Keyword   string
	Days      int
}

var (
	datePattern   = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`)
	timePattern   = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`)
	meridiem      = regexp.MustCompile(`(?i)\b(\d{1,2})(?::(\d{2}))?\s?(am|pm)\b`)
	idPattern     = regexp.MustCompile(`\b(?:id|event|#)\s*#?\s*(\d+)\b`)
	nextNPattern  = regexp.MustCompile(`\bnext\s+(\d+)\s+days?\b`)
	quotedPattern = regexp.MustCompile(`"([^"]+)"|'([^']+)'`)
)

// Parse turns a free-text message into a Command. Structured key=value pairs
// win over heuristics; dates and times fall back to regex extraction with
// relative dates resolved against now.
func Parse(text string, now time.Time) Command {
	cmd := Command{Days: -1, ID: -1}
	lowered := strings.ToLower(text)

	cmd.Action = detectAction(lowered)

	if strings.Contains(text, "=") {
		applyKeyValuePairs(&cmd, text)
	}
	applyHeuristics(&cmd, text, lowered, now)

	return cmd
}

func detectAction(lowered string) Action {
	switch {
	case strings.Contains(lowered, "delete all") || strings.Contains(lowered, "clear"):
		return ActionClear
	case strings.Contains(lowered, "delete") || strings.Contains(lowered, "remove") || strings.Contains(lowered, "cancel"):
		return ActionDelete
	case strings.Contains(lowered, "update") || strings.Contains(lowered, "reschedule") || strings.Contains(lowered, "change") || strings.Contains(lowered, "move"):
		return ActionUpdate
	case nextNPattern.MatchString(lowered) || strings.Contains(lowered, "upcoming"):
		return ActionListNext
	case strings.Contains(lowered, "search") || strings.Contains(lowered, "find"):
		return ActionSearch
	case strings.Contains(lowered, "list") || strings.Contains(lowered, "show") || strings.Contains(lowered, "what"):
		return ActionListAll
	case strings.Contains(lowered, "add") || strings.Contains(lowered, "schedule") || strings.Contains(lowered, "create") || strings.Contains(lowered, "book") || strings.Contains(lowered, "remind"):
		return ActionAdd
	default:
		return ActionUnknown
	}
}

// applyKeyValuePairs handles structured input like
// "add title=Meeting, date=2025-09-21, start_time=14:00".
func applyKeyValuePairs(cmd *Command, text string) {
	for _, part := range strings.Split(text, ",") {
		k, v, found := strings.Cut(part, "=")
		if !found {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(k))
		// The key may be preceded by the command verb ("add title=...").
		if idx := strings.LastIndexByte(key, ' '); idx >= 0 {
			key = key[idx+1:]
		}
		value := strings.Trim(strings.TrimSpace(v), `"'`)

		switch key {
		case "title":
			cmd.Title = value
		case "date":
			cmd.Date = value
		case "start_time", "start":
			cmd.StartTime = value
		case "end_time", "end":
			cmd.EndTime = value
		case "keyword":
			cmd.Keyword = value
		case "id", "event_id":
			if id, err := strconv.Atoi(value); err == nil {
				cmd.ID = id
			}
		case "n", "days":
			if n, err := strconv.Atoi(value); err == nil {
				cmd.Days = n
			}
		}
	}
}

func applyHeuristics(cmd *Command, text, lowered string, now time.Time) {
	if cmd.Date == "" {
		if m := datePattern.FindString(text); m != "" {
			cmd.Date = m
		} else if strings.Contains(lowered, "tomorrow") {
			cmd.Date = now.AddDate(0, 0, 1).Format(event.DateLayout)
		} else if strings.Contains(lowered, "today") || strings.Contains(lowered, "tonight") {
			cmd.Date = now.Format(event.DateLayout)
		}
	}

	if cmd.StartTime == "" && cmd.EndTime == "" {
		times := extractTimes(text)
		if len(times) >= 1 {
			cmd.StartTime = times[0]
		}
		if len(times) >= 2 {
			cmd.EndTime = times[1]
		}
	}

	if cmd.ID < 0 {
		if m := idPattern.FindStringSubmatch(lowered); m != nil {
			if id, err := strconv.Atoi(m[1]); err == nil {
				cmd.ID = id
			}
		}
	}

	if cmd.Days < 0 {
		if m := nextNPattern.FindStringSubmatch(lowered); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				cmd.Days = n
			}
		}
	}

	if cmd.Title == "" {
		if m := quotedPattern.FindStringSubmatch(text); m != nil {
			if m[1] != "" {
				cmd.Title = m[1]
			} else {
				cmd.Title = m[2]
			}
		}
	}

	if cmd.Keyword == "" && cmd.Action == ActionSearch {
		cmd.Keyword = cmd.Title
		if cmd.Keyword == "" {
			cmd.Keyword = strippedRemainder(text)
		}
	}

	if cmd.Title == "" && (cmd.Action == ActionAdd || cmd.Action == ActionDelete || cmd.Action == ActionListTitle) {
		cmd.Title = strippedRemainder(text)
	}

	// "list events on 2025-09-21" style narrows the listing.
	if cmd.Action == ActionListAll && cmd.Date != "" {
		cmd.Action = ActionListDate
	}
	if cmd.Action == ActionDelete && cmd.ID < 0 && cmd.Title != "" {
		cmd.Action = ActionDeleteTitle
	}
}

// extractTimes collects times of day in order of appearance, normalized to
// the canonical HH:MM form. Both 24-hour and am/pm forms are recognized.
func extractTimes(text string) []string {
	type match struct {
		pos   int
		value string
	}
	var matches []match

	for _, loc := range timePattern.FindAllStringSubmatchIndex(text, -1) {
		hour, _ := strconv.Atoi(text[loc[2]:loc[3]])
		minute, _ := strconv.Atoi(text[loc[4]:loc[5]])
		if hour > 23 || minute > 59 {
			continue
		}
		matches = append(matches, match{loc[0], formatTime(hour, minute)})
	}

	// An am/pm suffix overrides the 24-hour reading of the same span.
	for _, loc := range meridiem.FindAllStringSubmatchIndex(text, -1) {
		hour, _ := strconv.Atoi(text[loc[2]:loc[3]])
		minute := 0
		if loc[4] >= 0 {
			minute, _ = strconv.Atoi(text[loc[4]:loc[5]])
		}
		if hour > 12 || minute > 59 {
			continue
		}
		suffix := strings.ToLower(text[loc[6]:loc[7]])
		if suffix == "pm" && hour < 12 {
			hour += 12
		}
		if suffix == "am" && hour == 12 {
			hour = 0
		}
		replaced := false
		for i := range matches {
			if matches[i].pos == loc[0] {
				matches[i].value = formatTime(hour, minute)
				replaced = true
				break
			}
		}
		if !replaced {
			matches = append(matches, match{loc[0], formatTime(hour, minute)})
		}
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].pos < matches[j].pos })

	times := make([]string, 0, len(matches))
	for _, m := range matches {
		times = append(times, m.value)
	}
	return times
}

func formatTime(hour, minute int) string {
	return time.Date(0, 1, 1, hour, minute, 0, 0, time.UTC).Format(event.TimeLayout)
}

var fillerWords = map[string]bool{
	"add": true, "schedule": true, "create": true, "book": true, "remind": true,
	"me": true, "to": true, "a": true, "an": true, "the": true, "my": true,
	"event": true, "events": true, "on": true, "at": true, "for": true,
	"from": true, "until": true, "till": true, "delete": true, "remove": true,
	"cancel": true, "list": true, "show": true, "search": true, "find": true,
	"titled": true, "called": true, "named": true, "please": true,
	"today": true, "tomorrow": true, "tonight": true,
}

// strippedRemainder removes recognized verbs, dates, times and filler words;
// whatever is left is the best guess for a title or keyword.
func strippedRemainder(text string) string {
	cleaned := datePattern.ReplaceAllString(text, " ")
	cleaned = meridiem.ReplaceAllString(cleaned, " ")
	cleaned = timePattern.ReplaceAllString(cleaned, " ")

	words := strings.Fields(cleaned)
	kept := make([]string, 0, len(words))
	for _, w := range words {
		trimmed := strings.Trim(w, ".,!?")
		if trimmed == "" || fillerWords[strings.ToLower(trimmed)] {
			continue
		}
		kept = append(kept, trimmed)
	}
	return strings.Join(kept, " ")
}
