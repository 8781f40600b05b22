package events

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventInfo    EventType = "info"
	EventWarn    EventType = "warn"
	EventSuccess EventType = "success"
	EventError   EventType = "error"
)

const (
	TurnStarted      = "events:turn:start"
	TurnPhaseChanged = "events:turn:phase"
	TurnFailed       = "events:turn:failed"
	TurnDone         = "events:turn:done"
	MoodboardFailed  = "events:moodboard:failed"
)

// Event is a backend event payload about a conversation turn.
type Event struct {
	ID        string            `json:"id"`
	Type      EventType         `json:"type"`
	Message   string            `json:"message"`
	Timestamp time.Time         `json:"timestamp"`
	ProjectID uint              `json:"projectId,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

type contextKey string

const projectContextKey contextKey = "brandsmith/events/project"

// WithProject returns a derived context annotated with the project id so
// emitters can scope payloads.
func WithProject(ctx context.Context, projectID uint) context.Context {
	if projectID == 0 {
		return ctx
	}
	return context.WithValue(ctx, projectContextKey, projectID)
}

// ProjectFromContext extracts the project id associated with ctx.
func ProjectFromContext(ctx context.Context) uint {
	if ctx == nil {
		return 0
	}
	if v, ok := ctx.Value(projectContextKey).(uint); ok {
		return v
	}
	return 0
}

func CreateEvent(eventType EventType, message string) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Message:   message,
		Timestamp: time.Now(),
	}
}

func NewInfo(message string) Event {
	return CreateEvent(EventInfo, message)
}

func NewWarn(message string) Event {
	return CreateEvent(EventWarn, message)
}

func NewError(message string) Event {
	return CreateEvent(EventError, message)
}

func NewSuccess(message string) Event {
	return CreateEvent(EventSuccess, message)
}

// With returns a copy of e carrying an extra metadata entry.
func (e Event) With(key, value string) Event {
	md := make(map[string]string, len(e.Metadata)+1)
	for k, v := range e.Metadata {
		md[k] = v
	}
	md[key] = value
	e.Metadata = md
	return e
}

func (e Event) projectLabel() string {
	if e.ProjectID == 0 {
		return ""
	}
	return strconv.FormatUint(uint64(e.ProjectID), 10)
}
