package logging

import (
	"context"
	"log/slog"
)

// MultiHandler fans each record out to several slog handlers, which is
// how a provisioning run reaches both the student's terminal and the
// transcript file.
type MultiHandler struct {
	sinks []slog.Handler
}

// NewMultiHandler builds a handler that forwards to every sink.
func NewMultiHandler(sinks ...slog.Handler) *MultiHandler {
	return &MultiHandler{sinks: sinks}
}

// Enabled reports whether at least one sink accepts records at this level.
func (h *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, s := range h.sinks {
		if s.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle forwards the record to every sink that accepts its level. A
// failing sink never keeps the record from the remaining ones.
func (h *MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, s := range h.sinks {
		if !s.Enabled(ctx, r.Level) {
			continue
		}
		_ = s.Handle(ctx, r)
	}
	return nil
}

// WithAttrs applies the attributes to every sink.
func (h *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	sinks := make([]slog.Handler, len(h.sinks))
	for i, s := range h.sinks {
		sinks[i] = s.WithAttrs(attrs)
	}
	return &MultiHandler{sinks: sinks}
}

// WithGroup opens the group on every sink.
func (h *MultiHandler) WithGroup(name string) slog.Handler {
	sinks := make([]slog.Handler, len(h.sinks))
	for i, s := range h.sinks {
		sinks[i] = s.WithGroup(name)
	}
	return &MultiHandler{sinks: sinks}
}
