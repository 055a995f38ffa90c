// Package logging configures slog for the whole process and lets call sites
// carry structured attributes through a context instead of threading a
// logger value around.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

type ctxKey string

const (
	attrsKey ctxKey = "log_attrs"

	// Component is the attribute key identifying the emitting subsystem.
	Component string = "component"
)

// ContextHandler decorates another slog handler with any attributes stored
// in the record's context.
type ContextHandler struct {
	slog.Handler
}

func (h ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs, ok := ctx.Value(attrsKey).([]slog.Attr); ok {
		for _, v := range attrs {
			r.AddAttrs(v)
		}
	}

	if err := h.Handler.Handle(ctx, r); err != nil {
		return fmt.Errorf("could not handle log record %+v: %w", r, err)
	}

	return nil
}

// Setup installs the process-wide default logger.
func Setup(w io.Writer, level slog.Level) {
	handler := ContextHandler{slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})}
	slog.SetDefault(slog.New(handler))
}

// WithAttr stores an attribute on the context so every record logged through
// that context carries it.
func WithAttr(parent context.Context, attr slog.Attr) context.Context {
	if v, ok := parent.Value(attrsKey).([]slog.Attr); ok {
		v = append(v, attr)

		return context.WithValue(parent, attrsKey, v)
	}

	return context.WithValue(parent, attrsKey, []slog.Attr{attr})
}

// ComponentCtx tags a background context with the emitting subsystem's name.
func ComponentCtx(name string) context.Context {
	return WithAttr(context.Background(), slog.String(Component, name))
}
