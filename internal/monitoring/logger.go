package monitoring

import "log"

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger. Tests or production code can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// Debugf receives per-entity and per-pair detail. It is muted unless
// SetVerbose(true) is called.
var Debugf func(format string, v ...interface{}) = func(string, ...interface{}) {}

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
// When verbose output is enabled Debugf follows the new logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		f = func(string, ...interface{}) {}
	}
	Logf = f
	if verbose {
		Debugf = f
	}
}

var verbose bool

// SetVerbose routes Debugf to Logf when on and mutes it when off.
func SetVerbose(on bool) {
	verbose = on
	if on {
		Debugf = Logf
		return
	}
	Debugf = func(string, ...interface{}) {}
}
