package netprobe

import (
	"context"
	"time"
)

// Outcome is the terminal result of a readiness wait.
type Outcome string

const (
	Ready    Outcome = "ready"
	TimedOut Outcome = "timed_out"
	// Exited means the watched process went away before the port opened.
	Exited Outcome = "exited"
)

// Poll configures AwaitReady.
type Poll struct {
	Host         string
	Port         int
	Interval     time.Duration
	MaxAttempts  int
	ProbeTimeout time.Duration
	// Exited, when set, ends the wait early once closed.
	Exited <-chan struct{}
	// Probe defaults to the package Probe.
	Probe ProbeFunc
	// OnAttempt is called after every failed probe with the 1-based attempt number.
	OnAttempt func(attempt int)
}

// AwaitReady probes up to MaxAttempts times, sleeping Interval between
// attempts, and returns the outcome with the number of probes performed.
// There is no sleep before the first attempt, after a successful attempt, or
// after the final attempt. A cancelled context ends the wait as TimedOut.
func AwaitReady(ctx context.Context, p Poll) (Outcome, int) {
	if ctx == nil {
		ctx = context.Background()
	}
	probe := p.Probe
	if probe == nil {
		probe = Probe
	}
	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if probe(ctx, p.Host, p.Port, p.ProbeTimeout) {
			return Ready, attempt
		}
		if p.OnAttempt != nil {
			p.OnAttempt(attempt)
		}
		if attempt == maxAttempts {
			return TimedOut, attempt
		}
		if outcome, stop := sleep(ctx, p.Interval, p.Exited); stop {
			return outcome, attempt
		}
	}
	return TimedOut, maxAttempts
}

func sleep(ctx context.Context, interval time.Duration, exited <-chan struct{}) (Outcome, bool) {
	if interval <= 0 {
		select {
		case <-exited:
			return Exited, true
		case <-ctx.Done():
			return TimedOut, true
		default:
			return "", false
		}
	}
	timer := time.NewTimer(interval)
	defer timer.Stop()
	select {
	case <-timer.C:
		return "", false
	case <-exited:
		return Exited, true
	case <-ctx.Done():
		return TimedOut, true
	}
}
