package netprobe

import (
	"context"
	"net"
	"strconv"
	"time"
)

// DefaultTimeout bounds a single connection attempt when the caller passes zero.
const DefaultTimeout = 500 * time.Millisecond

// ProbeFunc reports whether host:port accepts a TCP connection within timeout.
type ProbeFunc func(ctx context.Context, host string, port int, timeout time.Duration) bool

// Address joins host and port the way the probe dials them.
func Address(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}

// Probe attempts one TCP connection and closes it immediately.
func Probe(ctx context.Context, host string, port int, timeout time.Duration) bool {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if ctx == nil {
		ctx = context.Background()
	}
	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", Address(host, port))
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}
