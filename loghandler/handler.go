package loghandler

import (
	"context"
	"io"
	"log/slog"
	"sync"
)

const timeFormat = "2006/01/02 15:04:05"

const tagKey = "tag"

// CompactHandler writes logs in a compact form: timestamp + optional [tag] prefix + message + attrs.
// Timestamp format: 2006/01/02 15:04:05 (no TZ, no milliseconds). Levels other than Info are written
// as a LEVEL: prefix before the message.
// If an attribute with key "tag" is present, it is rendered as "[tag] " after the timestamp;
// "tag" is then omitted from the key=value list. Attributes bound with WithAttrs come first.
type CompactHandler struct {
	mu     *sync.Mutex
	w      io.Writer
	level  slog.Leveler
	attrs  []slog.Attr
	prefix string // group prefix, "a.b." form
}

// NewCompactHandler returns a handler that writes to w with minimum level.
func NewCompactHandler(w io.Writer, level slog.Leveler) *CompactHandler {
	return &CompactHandler{mu: &sync.Mutex{}, w: w, level: level}
}

// Enabled reports whether the handler handles records at the given level.
func (h *CompactHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats the record as: 2006/01/02 15:04:05 [tag] message key=value ...
func (h *CompactHandler) Handle(_ context.Context, r slog.Record) error {
	var tag string
	rest := make([]slog.Attr, 0, len(h.attrs)+r.NumAttrs())
	collect := func(a slog.Attr, prefix string) {
		if a.Key == tagKey && prefix == "" {
			if a.Value.Kind() == slog.KindString {
				tag = a.Value.String()
			}
			return
		}
		a.Key = prefix + a.Key
		rest = append(rest, a)
	}
	for _, a := range h.attrs {
		collect(a, "")
	}
	r.Attrs(func(a slog.Attr) bool {
		collect(a, h.prefix)
		return true
	})

	buf := make([]byte, 0, 256)
	buf = append(buf, r.Time.Format(timeFormat)...)
	buf = append(buf, ' ')
	if tag != "" {
		buf = append(buf, '[')
		buf = append(buf, tag...)
		buf = append(buf, "] "...)
	}
	if r.Level != slog.LevelInfo {
		buf = append(buf, r.Level.String()...)
		buf = append(buf, ": "...)
	}
	buf = append(buf, r.Message...)
	for _, a := range rest {
		buf = append(buf, ' ')
		buf = append(buf, a.Key...)
		buf = append(buf, '=')
		buf = append(buf, a.Value.Resolve().String()...)
	}
	buf = append(buf, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf)
	return err
}

// WithAttrs returns a new handler that prepends attrs to every record.
func (h *CompactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := *h
	h2.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	h2.attrs = append(h2.attrs, h.attrs...)
	for _, a := range attrs {
		if a.Key != tagKey {
			a.Key = h.prefix + a.Key
		}
		h2.attrs = append(h2.attrs, a)
	}
	return &h2
}

// WithGroup returns a new handler that prefixes subsequent attribute keys with name.
func (h *CompactHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.prefix = h.prefix + name + "."
	return &h2
}
