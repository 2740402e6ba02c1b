package logger

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"
)

// CloudRunHandler implements slog.Handler
type CloudRunHandler struct {
	level slog.Level
	mu    *sync.Mutex
	out   io.Writer
}

func NewCloudRunHandler(level slog.Level) slog.Handler {
	return NewCloudRunWriterHandler(os.Stdout, level)
}

// NewCloudRunWriterHandler writes Cloud Logging shaped JSON lines to out.
func NewCloudRunWriterHandler(out io.Writer, level slog.Level) *CloudRunHandler {
	return &CloudRunHandler{level: level, mu: new(sync.Mutex), out: out}
}

func (h *CloudRunHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level
}

func (h *CloudRunHandler) Handle(_ context.Context, r slog.Record) error {
	// Map slog levels → Cloud Logging severity
	event := map[string]any{
		"severity": mapSeverity(r.Level),
		"message":  r.Message,
		"time":     r.Time.Format(time.RFC3339Nano),
	}

	if r.NumAttrs() > 0 {
		data := make(map[string]any)

		r.Attrs(func(a slog.Attr) bool {
			v := a.Value.Resolve().Any()
			if err, ok := v.(error); ok {
				v = err.Error()
			}
			data[a.Key] = v
			return true
		})

		event["data"] = data
	}

	b, err := json.Marshal(event)
	if err != nil {
		return err
	}

	// Cloud Run: stdout for all severities
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.out.Write(append(b, '\n'))
	return err
}

func (h *CloudRunHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &withAttrsHandler{handler: h, attrs: attrs}
}

func (h *CloudRunHandler) WithGroup(_ string) slog.Handler {
	// CloudRun format doesn’t support groups, ignore
	return h
}

// ---- Helpers ----

func mapSeverity(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelInfo:
		return "INFO"
	case slog.LevelWarn:
		return "WARNING"
	case slog.LevelError:
		return "ERROR"
	default:
		return "DEFAULT"
	}
}

// wrapper that injects static attrs
type withAttrsHandler struct {
	handler *CloudRunHandler
	attrs   []slog.Attr
}

func (h *withAttrsHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return h.handler.Enabled(ctx, l)
}

func (h *withAttrsHandler) Handle(ctx context.Context, r slog.Record) error {
	r = r.Clone()
	r.AddAttrs(h.attrs...)
	return h.handler.Handle(ctx, r)
}

func (h *withAttrsHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	all := append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &withAttrsHandler{handler: h.handler, attrs: all}
}

func (h *withAttrsHandler) WithGroup(name string) slog.Handler {
	return h
}
