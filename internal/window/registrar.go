package window

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"hiddengems/internal/logging"
)

// Registrar creates named windows at most once while they are alive.
type Registrar struct {
	backend Backend
	logger  *slog.Logger

	mu      sync.Mutex
	windows map[string]Window
}

// NewRegistrar wraps backend.
func NewRegistrar(backend Backend, logger *slog.Logger) *Registrar {
	return &Registrar{
		backend: backend,
		logger:  logging.NewComponentLogger(logger, "window"),
		windows: make(map[string]Window),
	}
}

// EnsureWindow creates the window called name unless one is already alive.
// It reports whether a window was created. Errors wrap ErrWindowCreation.
func (r *Registrar) EnsureWindow(ctx context.Context, name, url string, props Properties) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, fmt.Errorf("%w: window name is empty", ErrWindowCreation)
	}
	if r.backend == nil {
		return false, fmt.Errorf("%w: no window backend", ErrWindowCreation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if w, ok := r.windows[name]; ok {
		if !closed(w.Done()) {
			r.logger.Info("window already exists", logging.Window(name))
			return false, nil
		}
		delete(r.windows, name)
	}
	if slices.Contains(r.backend.Names(), name) {
		r.logger.Info("window already exists", logging.Window(name))
		return false, nil
	}

	w, err := r.backend.Create(ctx, name, url, props)
	if err != nil {
		return false, fmt.Errorf("%w: %q: %w", ErrWindowCreation, name, err)
	}
	if w == nil {
		return false, fmt.Errorf("%w: %q: backend returned no window", ErrWindowCreation, name)
	}
	r.windows[name] = w
	r.logger.Info("window created",
		logging.Window(name),
		logging.String("url", url),
		logging.String("title", props.Title),
		logging.Int("width", props.Width),
		logging.Int("height", props.Height),
		logging.Bool("resizable", props.Resizable),
	)
	return true, nil
}

// Window returns the registered window called name.
func (r *Registrar) Window(name string) (Window, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.windows[strings.TrimSpace(name)]
	return w, ok
}

// CloseAll closes every registered window and forgets them.
func (r *Registrar) CloseAll() error {
	r.mu.Lock()
	windows := r.windows
	r.windows = make(map[string]Window)
	r.mu.Unlock()

	var errs []error
	for name, w := range windows {
		if err := w.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close window %q: %w", name, err))
		}
	}
	return errors.Join(errs...)
}
