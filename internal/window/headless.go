package window

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// HeadlessBackend tracks windows without drawing anything.
type HeadlessBackend struct {
	mu      sync.Mutex
	windows map[string]*HeadlessWindow
}

// NewHeadlessBackend returns an empty backend.
func NewHeadlessBackend() *HeadlessBackend {
	return &HeadlessBackend{windows: make(map[string]*HeadlessWindow)}
}

// Names lists windows that have not been closed.
func (b *HeadlessBackend) Names() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	names := make([]string, 0, len(b.windows))
	for name, w := range b.windows {
		if !closed(w.done) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Create registers a headless window.
func (b *HeadlessBackend) Create(_ context.Context, name, url string, props Properties) (Window, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.windows == nil {
		b.windows = make(map[string]*HeadlessWindow)
	}
	if w, ok := b.windows[name]; ok && !closed(w.done) {
		return nil, fmt.Errorf("window %q already open", name)
	}
	w := &HeadlessWindow{
		Name:       name,
		URL:        url,
		Properties: props,
		done:       make(chan struct{}),
		bindings:   make(map[string]any),
	}
	b.windows[name] = w
	return w, nil
}

// Lookup returns the window called name, open or closed.
func (b *HeadlessBackend) Lookup(name string) (*HeadlessWindow, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	w, ok := b.windows[name]
	return w, ok
}

// HeadlessWindow records what a real window would have shown.
type HeadlessWindow struct {
	Name       string
	URL        string
	Properties Properties

	once     sync.Once
	done     chan struct{}
	mu       sync.Mutex
	bindings map[string]any
}

func (w *HeadlessWindow) Done() <-chan struct{} { return w.done }

func (w *HeadlessWindow) Close() error {
	w.once.Do(func() { close(w.done) })
	return nil
}

func (w *HeadlessWindow) Bind(name string, fn any) error {
	if fn == nil {
		return fmt.Errorf("bind %q: nil function", name)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.bindings[name] = fn
	return nil
}

// Binding returns the function bound under name.
func (w *HeadlessWindow) Binding(name string) (any, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fn, ok := w.bindings[name]
	return fn, ok
}
