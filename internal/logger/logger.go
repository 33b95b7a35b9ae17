package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger our internal "singleton" wrapper around zerolog allowing us
// to redirect every logger to a file or the console at once
type Logger struct {
	zl        *zerolog.Logger
	component string
}

// unexported root logger shared by every component logger
var root Logger

func init() {
	zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().
		Caller().
		Timestamp().
		Logger()

	root = Logger{zl: &zl}
}

// New returns the internal "singleton" logger
func New() Logger {
	return root
}

// NewComponent returns the "singleton" logger tagged with a component name
func NewComponent(name string) Logger {
	return Logger{zl: root.zl, component: name}
}

// GlobalSetLogFile sets all loggers to log to file
func GlobalSetLogFile(f *os.File) {
	GlobalSetOutput(f)
}

// GlobalSetOutput sets all loggers to log to w
func GlobalSetOutput(w io.Writer) {
	*root.zl = root.zl.Output(w)
}

func (l Logger) tag(evt *zerolog.Event) *zerolog.Event {
	if l.component == "" {
		return evt
	}

	return evt.Str("component", l.component)
}

// Info wrapper around zerolog Info
func (l Logger) Info() *zerolog.Event {
	return l.tag(l.zl.Info())
}

// Debug wrapper around zerolog Debug
func (l Logger) Debug() *zerolog.Event {
	return l.tag(l.zl.Debug())
}

// Warn wrapper around zerolog Warn
func (l Logger) Warn() *zerolog.Event {
	return l.tag(l.zl.Warn())
}

// Error wrapper around zerolog Error
func (l Logger) Error() *zerolog.Event {
	return l.tag(l.zl.Error())
}

// Fatal wrapper around zerolog Fatal
func (l Logger) Fatal() *zerolog.Event {
	return l.tag(l.zl.Fatal())
}
