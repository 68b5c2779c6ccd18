package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// New builds the JSON logger used by the server and CLI. Records whose message
// contains any of the suppress substrings are dropped.
func New(w io.Writer, level string, suppress []string) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	var handler slog.Handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})
	if len(suppress) > 0 {
		handler = &suppressHandler{next: handler, suppress: suppress}
	}
	return slog.New(handler)
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type suppressHandler struct {
	next     slog.Handler
	suppress []string
}

func (h *suppressHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *suppressHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, s := range h.suppress {
		if strings.Contains(record.Message, s) {
			return nil
		}
	}
	return h.next.Handle(ctx, record)
}

func (h *suppressHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &suppressHandler{next: h.next.WithAttrs(attrs), suppress: h.suppress}
}

func (h *suppressHandler) WithGroup(name string) slog.Handler {
	return &suppressHandler{next: h.next.WithGroup(name), suppress: h.suppress}
}
