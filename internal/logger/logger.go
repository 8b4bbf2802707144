package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

type Logger struct {
	json bool
	out  io.Writer
}

func New(jsonOutput bool) *Logger {
	return &Logger{json: jsonOutput, out: os.Stdout}
}

func newWithWriter(jsonOutput bool, out io.Writer) *Logger {
	return &Logger{json: jsonOutput, out: out}
}

func (l *Logger) write(level string, msg string, fields map[string]any) {
	if !l.json {
		if len(fields) > 0 {
			b, _ := json.Marshal(fields)
			fmt.Fprintf(l.out, "[%s] %s %s\n", level, msg, string(b))
		} else {
			fmt.Fprintf(l.out, "[%s] %s\n", level, msg)
		}
		return
	}
	payload := map[string]any{
		"ts":    time.Now().UTC().Format(time.RFC3339Nano),
		"level": level,
		"msg":   msg,
	}
	for k, v := range fields {
		payload[k] = v
	}
	_ = json.NewEncoder(l.out).Encode(payload)
}

func (l *Logger) Info(msg string, fields map[string]any)  { l.write("INFO", msg, fields) }
func (l *Logger) Warn(msg string, fields map[string]any)  { l.write("WARN", msg, fields) }
func (l *Logger) Error(msg string, fields map[string]any) { l.write("ERROR", msg, fields) }

// JSONEnabled reports whether this logger is configured to emit JSON output.
func (l *Logger) JSONEnabled() bool { return l.json }
