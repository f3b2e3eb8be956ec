package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestNewTeeHandlerCollapses(t *testing.T) {
	if _, ok := newTeeHandler(nil, nil).(NoopHandler); !ok {
		t.Fatal("expected NoopHandler when every handler is nil")
	}

	var buf bytes.Buffer
	inner := slog.NewJSONHandler(&buf, nil)
	if h := newTeeHandler(nil, inner, nil); h != inner {
		t.Fatal("expected single non-nil handler to be returned unwrapped")
	}
}

func TestTeeHandlerRespectsEachLevel(t *testing.T) {
	var infoBuf, debugBuf bytes.Buffer
	infoHandler := slog.NewJSONHandler(&infoBuf, &slog.HandlerOptions{Level: slog.LevelInfo})
	debugHandler := slog.NewJSONHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug})

	logger := slog.New(newTeeHandler(infoHandler, debugHandler))
	logger.Debug("poll attempt", slog.Int("attempt", 2))
	logger.Info("backend ready")

	if strings.Contains(infoBuf.String(), "poll attempt") {
		t.Fatalf("info handler received debug record: %s", infoBuf.String())
	}
	if !strings.Contains(debugBuf.String(), "poll attempt") {
		t.Fatalf("debug handler missed debug record: %s", debugBuf.String())
	}
	for _, out := range []string{infoBuf.String(), debugBuf.String()} {
		if !strings.Contains(out, "backend ready") {
			t.Fatalf("expected info record in every handler, got %s", out)
		}
	}
}

func TestTeeHandlerCarriesAttrsAndGroups(t *testing.T) {
	var first, second bytes.Buffer
	h := newTeeHandler(slog.NewJSONHandler(&first, nil), slog.NewJSONHandler(&second, nil))

	logger := slog.New(h).With(Window("main")).WithGroup("props")
	logger.Info("created", slog.Int("width", 1200))

	for _, out := range []string{first.String(), second.String()} {
		if !strings.Contains(out, `"window":"main"`) || !strings.Contains(out, `"props":{"width":1200}`) {
			t.Fatalf("expected attrs and group in output, got %s", out)
		}
	}
}

type failingHandler struct{ NoopHandler }

func (failingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (failingHandler) Handle(context.Context, slog.Record) error { return errors.New("disk full") }

func TestTeeHandlerKeepsWritingPastFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newTeeHandler(failingHandler{}, slog.NewJSONHandler(&buf, nil)))

	err := logger.Handler().Handle(context.Background(), slog.NewRecord(testTime, slog.LevelInfo, "backend ready", 0))
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected sink error surfaced, got %v", err)
	}
	if !strings.Contains(buf.String(), "backend ready") {
		t.Fatalf("expected healthy sink to receive record, got %s", buf.String())
	}
}

func TestTeeLoggerNilBase(t *testing.T) {
	var buf bytes.Buffer
	logger := TeeLogger(nil, slog.NewJSONHandler(&buf, nil))
	logger.Info("only sink")
	if !strings.Contains(buf.String(), "only sink") {
		t.Fatalf("expected record in tee sink, got %s", buf.String())
	}
	if !logger.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatal("expected tee logger to be enabled for info")
	}
}
