package logging

import (
	"bytes"
	"fmt"
	"io"
	"log"
)

// writer is an io.Writer that splits its input stream into lines and writes
// those lines to an underlying logger.
type writer struct {
	// callback is the logging callback.
	callback func(string)
	// buffer is any incomplete line fragment left over from a previous write.
	buffer []byte
}

// trimCarriageReturn trims any single trailing carriage return from the end of
// a byte slice.
func trimCarriageReturn(buffer []byte) []byte {
	if len(buffer) > 0 && buffer[len(buffer)-1] == '\r' {
		return buffer[:len(buffer)-1]
	}
	return buffer
}

// Write implements io.Writer.Write.
func (w *writer) Write(buffer []byte) (int, error) {
	// Append the data to our internal buffer.
	w.buffer = append(w.buffer, buffer...)

	// Process all lines in the buffer, tracking the number of bytes that we
	// process.
	var processed int
	remaining := w.buffer
	for {
		// Find the index of the next newline character.
		index := bytes.IndexByte(remaining, '\n')
		if index == -1 {
			break
		}

		// Process the line.
		w.callback(string(trimCarriageReturn(remaining[:index])))

		// Update the number of bytes that we've processed.
		processed += index + 1

		// Update the remaining slice.
		remaining = remaining[index+1:]
	}

	// If we managed to process bytes, then truncate our internal buffer.
	if processed > 0 {
		// Compute the number of leftover bytes.
		leftover := len(w.buffer) - processed

		// If there are leftover bytes, then shift them to the front of the
		// buffer.
		if leftover > 0 {
			copy(w.buffer[:leftover], w.buffer[processed:])
		}

		// Truncate the buffer.
		w.buffer = w.buffer[:leftover]
	}

	// Done.
	return len(buffer), nil
}

// Logger is the main logger type. It has the novel property that it still
// functions if nil, but it doesn't log anything in that case. It is designed
// to use the standard logger provided by the log package, so it respects any
// flags set for that logger, and it additionally supports level-based
// filtering and an optional output override. It is safe for concurrent
// usage.
type Logger struct {
	// prefix is any prefix specified for the logger.
	prefix string
	// level is the maximum level this logger (and its subloggers) will emit.
	level Level
	// output is an optional override for where formatted lines are written.
	// If nil, lines are routed through the standard log package (and thus
	// respect log.SetOutput).
	output io.Writer
}

// RootLogger is the root logger from which all other loggers derive. It logs
// at LevelInfo by default.
var RootLogger = &Logger{level: LevelInfo}

// NewLogger creates a new top-level logger that emits at most the specified
// level, writing formatted lines to the specified writer.
func NewLogger(level Level, output io.Writer) *Logger {
	return &Logger{level: level, output: output}
}

// Sublogger creates a new sublogger with the specified name. The sublogger
// inherits its parent's level and output.
func (l *Logger) Sublogger(name string) *Logger {
	// If the logger is nil, then the sublogger will be as well.
	if l == nil {
		return nil
	}

	// Compute the new prefix.
	prefix := name
	if l.prefix != "" {
		prefix = l.prefix + "." + name
	}

	// Create the new logger.
	return &Logger{
		prefix: prefix,
		level:  l.level,
		output: l.output,
	}
}

// emit is the internal logging method.
func (l *Logger) emit(calldepth int, line string) {
	// Add a prefix if necessary.
	if l.prefix != "" {
		line = fmt.Sprintf("[%s] %s", l.prefix, line)
	}

	// Route to the configured destination.
	if l.output != nil {
		fmt.Fprintln(l.output, line)
		return
	}
	log.Output(calldepth, line)
}

// enabled returns whether or not the logger is configured to emit at the
// specified level.
func (l *Logger) enabled(level Level) bool {
	return l != nil && l.level >= level
}

// Trace logs low-level execution information, if tracing is enabled.
func (l *Logger) Trace(v ...any) {
	if l.enabled(LevelTrace) {
		l.emit(4, fmt.Sprint(v...))
	}
}

// Tracef logs low-level execution information, if tracing is enabled.
func (l *Logger) Tracef(format string, v ...any) {
	if l.enabled(LevelTrace) {
		l.emit(4, fmt.Sprintf(format, v...))
	}
}

// Debug logs advanced execution information, if debugging is enabled.
func (l *Logger) Debug(v ...any) {
	if l.enabled(LevelDebug) {
		l.emit(4, fmt.Sprint(v...))
	}
}

// Debugf logs advanced execution information, if debugging is enabled.
func (l *Logger) Debugf(format string, v ...any) {
	if l.enabled(LevelDebug) {
		l.emit(4, fmt.Sprintf(format, v...))
	}
}

// Info logs basic execution information.
func (l *Logger) Info(v ...any) {
	if l.enabled(LevelInfo) {
		l.emit(4, fmt.Sprint(v...))
	}
}

// Infof logs basic execution information.
func (l *Logger) Infof(format string, v ...any) {
	if l.enabled(LevelInfo) {
		l.emit(4, fmt.Sprintf(format, v...))
	}
}

// Println logs information with semantics equivalent to fmt.Println.
func (l *Logger) Println(v ...any) {
	if l.enabled(LevelInfo) {
		l.emit(4, fmt.Sprintln(v...))
	}
}

// Writer returns an io.Writer that writes lines using Println.
func (l *Logger) Writer() io.Writer {
	return &writer{callback: func(s string) { l.Println(s) }}
}

// Warn logs a non-fatal error with a warning prefix and yellow color.
func (l *Logger) Warn(err error) {
	if l.enabled(LevelWarn) {
		l.emit(4, warnColor(fmt.Sprintf("Warning: %v", err)))
	}
}

// Warnf logs a non-fatal, formatted warning message.
func (l *Logger) Warnf(format string, v ...any) {
	if l.enabled(LevelWarn) {
		l.emit(4, warnColor(fmt.Sprintf("Warning: "+format, v...)))
	}
}

// Error logs a fatal error with an error prefix and red color.
func (l *Logger) Error(err error) {
	if l.enabled(LevelError) {
		l.emit(4, errorColor(fmt.Sprintf("Error: %v", err)))
	}
}

// Errorf logs a fatal, formatted error message.
func (l *Logger) Errorf(format string, v ...any) {
	if l.enabled(LevelError) {
		l.emit(4, errorColor(fmt.Sprintf("Error: "+format, v...)))
	}
}
