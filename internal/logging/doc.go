// Package logging builds the slog loggers the launcher and its backend
// supervisor write to.
//
// Console output is one key=value line per record with the component in
// brackets; hints and impacts follow on indented lines. JSON output uses
// short keys, UTC millisecond timestamps and "<key>_ms" durations. Every
// record of a run carries its session ID. Run logs are pruned by age and the
// backend's append-only log is rotated by size.
package logging
