package window

import (
	"context"
	"errors"
)

// ErrWindowCreation wraps any failure to create a window. It is fatal to setup.
var ErrWindowCreation = errors.New("window creation failed")

// Properties describe a window at creation time.
type Properties struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
}

// Window is a live application window.
type Window interface {
	// Done is closed when the window goes away.
	Done() <-chan struct{}
	Close() error
	// Bind exposes fn to the page's script context under name.
	Bind(name string, fn any) error
}

// Backend creates windows and reports which ones are alive.
type Backend interface {
	Names() []string
	Create(ctx context.Context, name, url string, props Properties) (Window, error)
}

func closed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}
