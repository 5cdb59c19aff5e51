package monitoring

import (
	"log"
	"time"
)

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger. Tests or production code can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// TimeTrack receives the duration of a completed computation, keyed by a short
// label such as "dp.compute". It defaults to logging through Logf and may be
// replaced to feed a metrics sink instead.
var TimeTrack func(label string, d time.Duration) = func(label string, d time.Duration) {
	Logf("[%s] took %v", label, d)
}

// SetTimeTrack replaces the timing hook. Passing nil will set a no-op hook.
func SetTimeTrack(f func(label string, d time.Duration)) {
	if f == nil {
		TimeTrack = func(string, time.Duration) {}
		return
	}
	TimeTrack = f
}
