package events

import (
	"context"
	"log/slog"
)

// Emit publishes an event. It is a no-op until an emitter is installed.
var Emit = func(ctx context.Context, name string, evt Event) {}

// EnableLogEmitter routes every event to logger.
func EnableLogEmitter(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	SetCustomEmitter(func(ctx context.Context, name string, evt Event) {
		logEvent(ctx, logger, name, evt)
	})
}

func SetCustomEmitter(f func(ctx context.Context, name string, evt Event)) {
	if f == nil {
		Emit = func(context.Context, string, Event) {}
		return
	}
	Emit = func(ctx context.Context, name string, evt Event) {
		if evt.ProjectID == 0 {
			evt.ProjectID = ProjectFromContext(ctx)
		}
		f(ctx, name, evt)
	}
}

func logEvent(ctx context.Context, logger *slog.Logger, name string, evt Event) {
	attrs := []any{"event", name, "id", evt.ID}
	if p := evt.projectLabel(); p != "" {
		attrs = append(attrs, "project", p)
	}
	for k, v := range evt.Metadata {
		attrs = append(attrs, k, v)
	}

	switch evt.Type {
	case EventError:
		logger.ErrorContext(ctx, evt.Message, attrs...)
	case EventWarn:
		logger.WarnContext(ctx, evt.Message, attrs...)
	default:
		logger.InfoContext(ctx, evt.Message, attrs...)
	}
}
