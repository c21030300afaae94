// Package logger provides the line loggers the service writes its
// operational output with.  Two structured formats are supported — TSKV
// (tab-separated key=value lines) and JSON — plus a plain development
// format.  The active format is chosen once at startup via LOGGER_TYPE.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Logger writes leveled lines.  Optional values are attached to the line
// in a format-specific way; they are meant for small context payloads
// (ids, counts), not for dumping large structures.
type Logger interface {
	Log(message string, optional ...interface{})
	Warn(message string, optional ...interface{})
	Error(message string, optional ...interface{})
	Debug(message string, optional ...interface{})
}

// Format names accepted by New.
const (
	FormatTSKV = "tskv"
	FormatJSON = "json"
	FormatDev  = "dev"
)

// New returns the logger for the given format name.  Unknown names fall
// back to the development format.
func New(format string) Logger {
	switch strings.ToLower(format) {
	case FormatTSKV:
		return NewTSKV(os.Stdout)
	case FormatJSON:
		return NewJSON(os.Stdout)
	default:
		return NewDev(os.Stdout)
	}
}

// TSKVLogger writes lines of the form
// level=<level>\tmessage=<text>\toptional=<json> with tabs and newlines
// inside the message replaced by spaces so one record stays one line.
type TSKVLogger struct {
	mu  sync.Mutex
	out io.Writer
}

// NewTSKV returns a TSKVLogger writing to out.
func NewTSKV(out io.Writer) *TSKVLogger { return &TSKVLogger{out: out} }

func (l *TSKVLogger) write(level, message string, optional []interface{}) {
	safe := strings.NewReplacer("\t", " ", "\n", " ").Replace(message)
	parts := []string{"level=" + level, "message=" + safe}
	if len(optional) > 0 {
		raw, err := json.Marshal(optional)
		if err != nil {
			raw = []byte(fmt.Sprintf("%q", fmt.Sprint(optional...)))
		}
		parts = append(parts, "optional="+string(raw))
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.out, strings.Join(parts, "\t"))
}

func (l *TSKVLogger) Log(message string, optional ...interface{}) {
	l.write("log", message, optional)
}

func (l *TSKVLogger) Warn(message string, optional ...interface{}) {
	l.write("warn", message, optional)
}

func (l *TSKVLogger) Error(message string, optional ...interface{}) {
	l.write("error", message, optional)
}

func (l *TSKVLogger) Debug(message string, optional ...interface{}) {
	l.write("debug", message, optional)
}

// JSONLogger writes one JSON object per line.
type JSONLogger struct {
	mu  sync.Mutex
	out io.Writer
}

// NewJSON returns a JSONLogger writing to out.
func NewJSON(out io.Writer) *JSONLogger { return &JSONLogger{out: out} }

type jsonRecord struct {
	Level          string        `json:"level"`
	Message        string        `json:"message"`
	OptionalParams []interface{} `json:"optionalParams,omitempty"`
}

func (l *JSONLogger) write(level, message string, optional []interface{}) {
	raw, err := json.Marshal(jsonRecord{Level: level, Message: message, OptionalParams: optional})
	if err != nil {
		raw = []byte(fmt.Sprintf(`{"level":%q,"message":%q}`, level, message))
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.out, string(raw))
}

func (l *JSONLogger) Log(message string, optional ...interface{}) {
	l.write("log", message, optional)
}

func (l *JSONLogger) Warn(message string, optional ...interface{}) {
	l.write("warn", message, optional)
}

func (l *JSONLogger) Error(message string, optional ...interface{}) {
	l.write("error", message, optional)
}

func (l *JSONLogger) Debug(message string, optional ...interface{}) {
	l.write("debug", message, optional)
}

// DevLogger is the plain human-readable format for local runs.
type DevLogger struct {
	mu  sync.Mutex
	out io.Writer
}

// NewDev returns a DevLogger writing to out.
func NewDev(out io.Writer) *DevLogger { return &DevLogger{out: out} }

func (l *DevLogger) write(level, message string, optional []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(optional) > 0 {
		fmt.Fprintf(l.out, "[%s] %s %v\n", level, message, optional)
		return
	}
	fmt.Fprintf(l.out, "[%s] %s\n", level, message)
}

func (l *DevLogger) Log(message string, optional ...interface{}) {
	l.write("log", message, optional)
}

func (l *DevLogger) Warn(message string, optional ...interface{}) {
	l.write("warn", message, optional)
}

func (l *DevLogger) Error(message string, optional ...interface{}) {
	l.write("error", message, optional)
}

func (l *DevLogger) Debug(message string, optional ...interface{}) {
	l.write("debug", message, optional)
}
