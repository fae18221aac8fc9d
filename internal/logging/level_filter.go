package logging

import (
	"context"
	"log/slog"
)

// LevelFilter wraps a handler and discards records below a minimum level.
type LevelFilter struct {
	handler  slog.Handler
	minLevel slog.Level
}

// NewLevelFilter creates a level-filtering wrapper around handler.
func NewLevelFilter(handler slog.Handler, minLevel slog.Level) *LevelFilter {
	return &LevelFilter{handler: handler, minLevel: minLevel}
}

func (h *LevelFilter) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.minLevel && h.handler.Enabled(ctx, level)
}

func (h *LevelFilter) Handle(ctx context.Context, record slog.Record) error {
	if record.Level < h.minLevel {
		return nil
	}
	return h.handler.Handle(ctx, record)
}

func (h *LevelFilter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return NewLevelFilter(h.handler.WithAttrs(attrs), h.minLevel)
}

func (h *LevelFilter) WithGroup(name string) slog.Handler {
	return NewLevelFilter(h.handler.WithGroup(name), h.minLevel)
}
