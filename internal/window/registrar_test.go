package window

import (
	"context"
	"errors"
	"sync"
	"testing"

	"hiddengems/internal/logging"
)

type countingBackend struct {
	*HeadlessBackend
	mu      sync.Mutex
	creates int
	err     error
	hide    bool
}

func (b *countingBackend) Names() []string {
	if b.hide {
		return nil
	}
	return b.HeadlessBackend.Names()
}

func (b *countingBackend) Create(ctx context.Context, name, url string, props Properties) (Window, error) {
	b.mu.Lock()
	b.creates++
	b.mu.Unlock()
	if b.err != nil {
		return nil, b.err
	}
	return b.HeadlessBackend.Create(ctx, name, url, props)
}

var mainProps = Properties{Title: "Hidden Gems", Width: 1200, Height: 800, Resizable: true}

func TestEnsureWindowTwiceCreatesOne(t *testing.T) {
	backend := &countingBackend{HeadlessBackend: NewHeadlessBackend()}
	r := NewRegistrar(backend, logging.NewNop())

	created, err := r.EnsureWindow(context.Background(), "main", "http://localhost:5001", mainProps)
	if err != nil || !created {
		t.Fatalf("first EnsureWindow: created=%v err=%v", created, err)
	}
	created, err = r.EnsureWindow(context.Background(), "main", "http://localhost:5001", mainProps)
	if err != nil || created {
		t.Fatalf("second EnsureWindow: created=%v err=%v", created, err)
	}
	if backend.creates != 1 {
		t.Fatalf("expected one create, got %d", backend.creates)
	}

	w, ok := backend.Lookup("main")
	if !ok {
		t.Fatal("expected headless window recorded")
	}
	if w.URL != "http://localhost:5001" || w.Properties != mainProps {
		t.Fatalf("unexpected window %+v", w)
	}
}

func TestEnsureWindowTrustsOwnRegistryWhenBackendLags(t *testing.T) {
	backend := &countingBackend{HeadlessBackend: NewHeadlessBackend(), hide: true}
	r := NewRegistrar(backend, logging.NewNop())

	for i := 0; i < 3; i++ {
		if _, err := r.EnsureWindow(context.Background(), "main", "http://localhost:5001", mainProps); err != nil {
			t.Fatalf("EnsureWindow: %v", err)
		}
	}
	if backend.creates != 1 {
		t.Fatalf("expected one create, got %d", backend.creates)
	}
}

func TestEnsureWindowConcurrentCallsCreateOne(t *testing.T) {
	backend := &countingBackend{HeadlessBackend: NewHeadlessBackend()}
	r := NewRegistrar(backend, logging.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = r.EnsureWindow(context.Background(), "main", "http://localhost:5001", mainProps)
		}()
	}
	wg.Wait()
	if backend.creates != 1 {
		t.Fatalf("expected one create, got %d", backend.creates)
	}
}

func TestEnsureWindowRecreatesAfterClose(t *testing.T) {
	backend := &countingBackend{HeadlessBackend: NewHeadlessBackend()}
	r := NewRegistrar(backend, logging.NewNop())

	if _, err := r.EnsureWindow(context.Background(), "main", "u", mainProps); err != nil {
		t.Fatalf("EnsureWindow: %v", err)
	}
	w, _ := r.Window("main")
	_ = w.Close()

	created, err := r.EnsureWindow(context.Background(), "main", "u", mainProps)
	if err != nil || !created {
		t.Fatalf("expected recreation after close: created=%v err=%v", created, err)
	}
}

func TestEnsureWindowCreationFailure(t *testing.T) {
	boom := errors.New("no display")
	backend := &countingBackend{HeadlessBackend: NewHeadlessBackend(), err: boom}
	r := NewRegistrar(backend, logging.NewNop())

	created, err := r.EnsureWindow(context.Background(), "main", "u", mainProps)
	if created {
		t.Fatal("expected no window on failure")
	}
	if !errors.Is(err, ErrWindowCreation) || !errors.Is(err, boom) {
		t.Fatalf("expected wrapped creation error, got %v", err)
	}
	if _, ok := r.Window("main"); ok {
		t.Fatal("failed window must not be registered")
	}
}

func TestEnsureWindowRejectsEmptyName(t *testing.T) {
	r := NewRegistrar(NewHeadlessBackend(), nil)
	if _, err := r.EnsureWindow(context.Background(), "  ", "u", mainProps); !errors.Is(err, ErrWindowCreation) {
		t.Fatalf("expected ErrWindowCreation, got %v", err)
	}
}

func TestCloseAllClosesWindows(t *testing.T) {
	backend := NewHeadlessBackend()
	r := NewRegistrar(backend, logging.NewNop())
	if _, err := r.EnsureWindow(context.Background(), "main", "u", mainProps); err != nil {
		t.Fatalf("EnsureWindow: %v", err)
	}
	if err := r.CloseAll(); err != nil {
		t.Fatalf("CloseAll: %v", err)
	}
	if names := backend.Names(); len(names) != 0 {
		t.Fatalf("expected no live windows, got %v", names)
	}
	if err := r.CloseAll(); err != nil {
		t.Fatalf("second CloseAll: %v", err)
	}
}

func TestHeadlessWindowBind(t *testing.T) {
	backend := NewHeadlessBackend()
	w, err := backend.Create(context.Background(), "main", "u", mainProps)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := w.Bind("greet", func(name string) string { return name }); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if err := w.Bind("nothing", nil); err == nil {
		t.Fatal("expected error binding nil")
	}
	hw, _ := backend.Lookup("main")
	fn, ok := hw.Binding("greet")
	if !ok || fn.(func(string) string)("x") != "x" {
		t.Fatalf("unexpected binding %v", fn)
	}
}
