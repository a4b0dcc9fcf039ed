// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"maps"
	"os"
	"sync"

	"github.com/H0llyW00dzZ/x5c-jwt-verifier/src/internal/helper/gc"
)

const (
	// FormatText selects [CLILogger].
	FormatText = "text"
	// FormatJSON selects [JSONLogger].
	FormatJSON = "json"
)

// ErrUnknownFormat is returned by New for an unsupported log format.
var ErrUnknownFormat = errors.New("logger: unknown log format")

// Logger defines the interface for logging operations.
// It provides methods for different log levels and formatted output.
//
// Diagnostics are kept apart from command results: loggers write to stderr
// unless redirected with SetOutput, and results go to stdout.
type Logger interface {
	// Printf formats and prints a log message.
	Printf(format string, v ...any)
	// Println prints a log message with a newline.
	Println(v ...any)
	// SetOutput sets the output destination for the logger.
	SetOutput(w io.Writer)
}

// New returns the logger for format writing to w.
//
// Parameters:
//   - format: FormatText or FormatJSON
//   - w: Output destination; nil selects stderr
//
// Returns:
//   - Logger: The selected logger
//   - error: ErrUnknownFormat for any other format
func New(format string, w io.Writer) (Logger, error) {
	if w == nil {
		w = os.Stderr
	}

	switch format {
	case FormatText:
		l := NewCLILogger()
		l.SetOutput(w)
		return l, nil
	case FormatJSON:
		return NewJSONLogger(w), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// CLILogger implements Logger using the standard log package.
// It's designed for command-line interface output with human-readable formatting.
type CLILogger struct{ logger *log.Logger }

// NewCLILogger creates a new CLI logger on stderr with timestamps disabled.
func NewCLILogger() *CLILogger {
	l := log.New(os.Stderr, "", 0)
	return &CLILogger{logger: l}
}

// Printf formats and prints a log message using fmt.Printf semantics.
func (c *CLILogger) Printf(format string, v ...any) { c.logger.Printf(format, v...) }

// Println prints a log message with a newline.
func (c *CLILogger) Println(v ...any) { c.logger.Println(v...) }

// SetOutput sets the output destination for the CLI logger.
func (c *CLILogger) SetOutput(w io.Writer) { c.logger.SetOutput(w) }

// JSONLogger implements Logger with one JSON object per line.
//
// Every entry carries "level" and "message" plus the fields attached with
// With. Entries are encoded in pooled buffers and written with a single
// Write call.
//
// JSONLogger is safe for concurrent use by multiple goroutines.
type JSONLogger struct {
	mu     *sync.Mutex
	writer *io.Writer
	fields map[string]any
}

// NewJSONLogger creates a JSON logger writing to writer.
// A nil writer discards output.
func NewJSONLogger(writer io.Writer) *JSONLogger {
	if writer == nil {
		writer = io.Discard
	}
	return &JSONLogger{
		mu:     &sync.Mutex{},
		writer: &writer,
	}
}

// With returns a logger that adds key to every entry. The returned logger
// shares its destination with j.
func (j *JSONLogger) With(key string, value any) *JSONLogger {
	fields := make(map[string]any, len(j.fields)+1)
	maps.Copy(fields, j.fields)
	fields[key] = value

	return &JSONLogger{
		mu:     j.mu,
		writer: j.writer,
		fields: fields,
	}
}

// Printf formats and logs a structured message.
func (j *JSONLogger) Printf(format string, v ...any) { j.write(fmt.Sprintf(format, v...)) }

// Println logs a structured message built with fmt.Sprint semantics.
func (j *JSONLogger) Println(v ...any) { j.write(fmt.Sprint(v...)) }

// SetOutput sets the output destination for j and every logger derived
// from it with With. A nil writer discards output.
func (j *JSONLogger) SetOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	*j.writer = w
}

func (j *JSONLogger) write(msg string) {
	entry := make(map[string]any, len(j.fields)+2)
	maps.Copy(entry, j.fields)
	entry["level"] = "info"
	entry["message"] = msg

	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(entry); err != nil {
		// Unencodable field values still produce an entry.
		buf.Reset()
		fallback, _ := json.Marshal(map[string]string{"level": "info", "message": msg})
		buf.Write(fallback)
		buf.WriteString("\n")
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	_, _ = (*j.writer).Write(buf.Bytes())
}
