package window

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/zserge/lorca"

	"hiddengems/internal/logging"
)

// LorcaBackend opens Chrome app windows through lorca.
type LorcaBackend struct {
	// ProfileDir is the Chrome user data dir; empty lets lorca use a temp dir.
	ProfileDir string
	// Args are extra Chrome command-line flags.
	Args []string
	// Logger receives best-effort window tweaks that failed; nil discards them.
	Logger *slog.Logger

	// start is lorca.New unless replaced.
	start func(url, dir string, width, height int, args ...string) (lorca.UI, error)

	mu      sync.Mutex
	windows map[string]*lorcaWindow
}

// Names lists windows whose Chrome instance is still running.
func (b *LorcaBackend) Names() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	names := make([]string, 0, len(b.windows))
	for name, w := range b.windows {
		if !closed(w.ui.Done()) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Create starts Chrome in app mode on url. The visible title is the page's
// own <title>; props.Title only names the window class.
func (b *LorcaBackend) Create(ctx context.Context, name, url string, props Properties) (Window, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := b.start
	if start == nil {
		start = lorca.New
	}
	args := b.Args
	if props.Title != "" {
		args = append([]string{"--class=" + props.Title}, b.Args...)
	}
	ui, err := start(url, b.ProfileDir, props.Width, props.Height, args...)
	if err != nil {
		return nil, fmt.Errorf("start chrome: %w", err)
	}
	w := &lorcaWindow{ui: ui}

	if !props.Resizable {
		// Chrome app windows cannot be locked; pin the initial bounds instead.
		bounds := lorca.Bounds{Width: props.Width, Height: props.Height, WindowState: lorca.WindowStateNormal}
		if err := ui.SetBounds(bounds); err != nil {
			logging.NewComponentLogger(b.Logger, "window").Debug("window bounds not pinned",
				logging.Window(name),
				logging.Error(err),
			)
		}
	}

	b.mu.Lock()
	if b.windows == nil {
		b.windows = make(map[string]*lorcaWindow)
	}
	b.windows[name] = w
	b.mu.Unlock()
	return w, nil
}

type lorcaWindow struct {
	ui lorca.UI
}

func (w *lorcaWindow) Done() <-chan struct{} { return w.ui.Done() }

func (w *lorcaWindow) Close() error { return w.ui.Close() }

func (w *lorcaWindow) Bind(name string, fn any) error { return w.ui.Bind(name, fn) }
