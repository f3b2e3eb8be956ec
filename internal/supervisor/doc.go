// Package supervisor decides, once per application start, whether the
// backend must be launched and records the child so it can be stopped on
// exit.
//
// EnsureRunning walks probe → resolve → launch → wait and always returns a
// Result instead of failing the caller: a missing executable, a failed spawn
// or a readiness timeout is reported and logged, and application startup
// continues. Teardown drains the handle store and stops the child if this
// launcher started it. Launches are serialized across launcher instances
// with a file lock so two windows opened at once never start two backends.
package supervisor
