// Package process locates, launches, and terminates the backend executable.
//
// Resolver walks an ordered candidate list chosen per platform at
// construction time and returns the first path that exists. ExecLauncher
// starts the executable in its own process group so it outlives the call
// that spawned it and can be stopped as a unit. Store is the single
// lock-guarded slot that hands the running Handle from the startup path to
// the shutdown path.
package process
