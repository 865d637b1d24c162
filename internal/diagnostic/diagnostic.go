// Package diagnostic provides the severity-levelled event emission used
// by the rest of the core to report recoverable anomalies: decode misses,
// illegal writes, and checksum mismatches. Unmapped accesses are not
// reported. Nothing in
// this package ever aborts execution - emission is the full contract.
package diagnostic

import (
	"github.com/sirupsen/logrus"
)

// Logger is the interface the core reports anomalies through. It mirrors
// the handful of severities the spec calls for (debug/info/warn/error)
// and nothing more - there is no Fatal, because the core never aborts
// from within a running step.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})

	// WithFields returns a Logger that attaches the given structured
	// fields to every subsequent call, e.g. {"pc": pc, "opcode": op}.
	WithFields(fields Fields) Logger
}

// Fields is a set of structured key/value pairs attached to a log line.
type Fields map[string]interface{}

// logrusLogger adapts a *logrus.Logger to the Logger interface. The
// formatter matches the plain, unadorned text format the rest of the
// pack's MMU/IO code configures: no colour, no timestamp, no field
// sorting - cycle-accurate emulation output is noisy enough without it.
type logrusLogger struct {
	entry *logrus.Entry
}

// New returns a Logger backed by logrus, levelled at Debug so that every
// severity the core emits is visible by default.
func New() Logger {
	l := logrus.New()
	l.SetLevel(logrus.DebugLevel)
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}
	return &logrusLogger{entry: logrus.NewEntry(l)}
}

func (l *logrusLogger) Debugf(format string, args ...interface{}) { l.entry.Debugf(format, args...) }
func (l *logrusLogger) Infof(format string, args ...interface{})  { l.entry.Infof(format, args...) }
func (l *logrusLogger) Warnf(format string, args ...interface{})  { l.entry.Warnf(format, args...) }
func (l *logrusLogger) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }

func (l *logrusLogger) WithFields(fields Fields) Logger {
	return &logrusLogger{entry: l.entry.WithFields(logrus.Fields(fields))}
}

// nullLogger discards every call. Used by default in tests so that
// ALU/CPU fixtures don't spam stdout on intentionally malformed input.
type nullLogger struct{}

// Null returns a Logger that discards everything written to it.
func Null() Logger { return nullLogger{} }

func (nullLogger) Debugf(string, ...interface{}) {}
func (nullLogger) Infof(string, ...interface{})  {}
func (nullLogger) Warnf(string, ...interface{})  {}
func (nullLogger) Errorf(string, ...interface{}) {}
func (nullLogger) WithFields(Fields) Logger       { return nullLogger{} }
