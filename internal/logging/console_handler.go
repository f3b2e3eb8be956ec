package logging

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"sync"
)

// consoleHandler writes one key=value line per record. A hint and an impact,
// when present, follow on indented lines so warnings read as cause, effect
// and next step.
type consoleHandler struct {
	mu     *sync.Mutex
	out    io.Writer
	level  slog.Leveler
	source bool
	prefix string
	bound  []field
}

type field struct {
	key string
	val slog.Value
}

func newConsoleHandler(out io.Writer, level slog.Leveler, source bool) *consoleHandler {
	return &consoleHandler{mu: &sync.Mutex{}, out: out, level: level, source: source}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	fields := append([]field(nil), h.bound...)
	r.Attrs(func(a slog.Attr) bool {
		fields = appendField(fields, h.prefix, a)
		return true
	})

	var component, hint, impact string
	var buf bytes.Buffer
	buf.WriteString(formatTimestamp(r.Time))
	buf.WriteByte(' ')
	buf.WriteString(levelLabel(r.Level))

	inline := make([]field, 0, len(fields))
	for _, f := range lastWins(fields) {
		switch f.key {
		case FieldComponent:
			component = plainValue(f.val)
			continue
		case FieldErrorHint:
			hint = plainValue(f.val)
			continue
		case FieldImpact:
			impact = plainValue(f.val)
			continue
		}
		if _, hidden := hiddenInfoFields[f.key]; hidden && r.Level >= slog.LevelInfo {
			continue
		}
		inline = append(inline, f)
	}

	if component != "" {
		buf.WriteString(" [" + component + "]")
	}
	buf.WriteByte(' ')
	buf.WriteString(r.Message)
	for _, f := range inline {
		buf.WriteByte(' ')
		buf.WriteString(f.key)
		buf.WriteByte('=')
		buf.WriteString(formatValue(f.val))
	}
	if src := r.Source(); h.source && src != nil && src.File != "" {
		buf.WriteString(" (" + filepath.Base(src.File) + ":" + strconv.Itoa(src.Line) + ")")
	}
	buf.WriteByte('\n')
	if hint != "" {
		buf.WriteString("    hint: " + hint + "\n")
	}
	if impact != "" {
		buf.WriteString("    impact: " + impact + "\n")
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(buf.Bytes())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.bound = append([]field(nil), h.bound...)
	for _, a := range attrs {
		next.bound = appendField(next.bound, h.prefix, a)
	}
	return &next
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = joinKey(h.prefix, name)
	return &next
}

// appendField flattens groups into dotted keys.
func appendField(dst []field, prefix string, a slog.Attr) []field {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return dst
	}
	if a.Value.Kind() == slog.KindGroup {
		inner := prefix
		if a.Key != "" {
			inner = joinKey(prefix, a.Key)
		}
		for _, ga := range a.Value.Group() {
			dst = appendField(dst, inner, ga)
		}
		return dst
	}
	return append(dst, field{key: joinKey(prefix, a.Key), val: a.Value})
}

func joinKey(prefix, key string) string {
	switch {
	case prefix == "":
		return key
	case key == "":
		return prefix
	}
	return prefix + "." + key
}

// lastWins drops earlier fields whose key is repeated, keeping the first
// position and the last value.
func lastWins(fields []field) []field {
	pos := make(map[string]int, len(fields))
	out := make([]field, 0, len(fields))
	for _, f := range fields {
		if i, ok := pos[f.key]; ok {
			out[i].val = f.val
			continue
		}
		pos[f.key] = len(out)
		out = append(out, f)
	}
	return out
}

func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN "
	case level >= slog.LevelInfo:
		return "INFO "
	}
	return "DEBUG"
}
