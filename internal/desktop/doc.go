// Package desktop wires the launcher together: it makes sure the backend is
// running, opens the application window, waits for the window or a signal,
// and stops the backend it started on the way out.
//
// Setup is best-effort with respect to the backend. A missing executable or a
// backend that never opens its port is logged and the window is created
// anyway; only a window creation failure aborts startup.
package desktop
