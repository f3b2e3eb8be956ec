// Package netprobe answers whether something is listening on a TCP address
// and waits, with a bounded fixed-interval retry, for that answer to turn
// positive.
//
// Probe failures are never errors: refusal, timeout and resolution problems
// all mean "not ready yet". The poller's worst-case wait is
// Interval × (MaxAttempts − 1) plus probe latency.
package netprobe
