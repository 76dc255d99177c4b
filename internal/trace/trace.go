// Package trace is a minimal build-flag-gated tracing hook, simplified
// from the zap setup in chen760316-code's logger package down to the one
// thing this library needs: a single structured event per carry
// propagation, per Round of either accumulator, and per large-accumulator
// AddSlice call (large-accumulator spills emit none), useful when chasing down
// why a given input sequence produced an unexpected bit pattern.
//
// The release build (default, no tags) compiles Event to a no-op so
// callers never pay for it. Build with -tags xsum_debug to enable it.
package trace

import "go.uber.org/zap"

// Event records a named tracing event with optional structured fields.
// No-op unless built with -tags xsum_debug.
func Event(op string, fields ...zap.Field) {
	event(op, fields...)
}
