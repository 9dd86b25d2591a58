package evaluator

import (
	"fmt"
	"io"
	"os"

	"github.com/lyraproj/issue/issue"
)

// LogLevel tags the severity of a logged message, grounded on the
// teacher's own level set.
type LogLevel string

const (
	Debug   LogLevel = `debug`
	Info    LogLevel = `info`
	Notice  LogLevel = `notice`
	Warning LogLevel = `warning`
	Err     LogLevel = `err`
)

// Logger is the evaluator's diagnostics sink (SPEC_FULL.md §1/§3.3), kept
// separate from the fatal issue.Reported error channel: a Logger call never
// aborts evaluation.
type Logger interface {
	Log(level LogLevel, args ...interface{})
	Logf(level LogLevel, format string, args ...interface{})
	LogIssue(reported issue.Reported)
}

type stdLogger struct {
	out io.Writer
	err io.Writer
}

// NewStdLogger returns a Logger writing Debug/Info/Notice to stdout and
// Warning/Err (and reported issues) to stderr.
func NewStdLogger() Logger {
	return &stdLogger{out: os.Stdout, err: os.Stderr}
}

func (l *stdLogger) writerFor(level LogLevel) io.Writer {
	switch level {
	case Debug, Info, Notice:
		return l.out
	default:
		return l.err
	}
}

func (l *stdLogger) Log(level LogLevel, args ...interface{}) {
	w := l.writerFor(level)
	fmt.Fprintf(w, `%s: `, level)
	fmt.Fprintln(w, args...)
}

func (l *stdLogger) Logf(level LogLevel, format string, args ...interface{}) {
	w := l.writerFor(level)
	fmt.Fprintf(w, `%s: `, level)
	fmt.Fprintf(w, format+"\n", args...)
}

func (l *stdLogger) LogIssue(reported issue.Reported) {
	fmt.Fprintln(l.err, reported.String())
}

// ArrayLogger captures entries in memory, for test assertions — the same
// shape as the teacher's own test-capture logger.
type ArrayLogger struct {
	Entries []LogEntry
}

type LogEntry struct {
	Level   LogLevel
	Message string
}

func NewArrayLogger() *ArrayLogger { return &ArrayLogger{} }

func (l *ArrayLogger) Log(level LogLevel, args ...interface{}) {
	l.Entries = append(l.Entries, LogEntry{Level: level, Message: fmt.Sprint(args...)})
}

func (l *ArrayLogger) Logf(level LogLevel, format string, args ...interface{}) {
	l.Entries = append(l.Entries, LogEntry{Level: level, Message: fmt.Sprintf(format, args...)})
}

func (l *ArrayLogger) LogIssue(reported issue.Reported) {
	l.Entries = append(l.Entries, LogEntry{Level: Err, Message: reported.String()})
}
