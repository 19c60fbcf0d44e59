package stdout

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/vesla0x1/azstorage/application/ports"
)

var levels = map[string]int{
	"DEBUG": 0,
	"INFO":  1,
	"WARN":  2,
	"ERROR": 3,
}

// Logger implements ports.Logger on a plain writer
type Logger struct {
	fields   map[string]interface{}
	logger   *log.Logger
	minLevel int
	json     bool
}

// NewLogger creates a logger writing to out (stdout when nil). Messages
// below level are dropped; unknown levels mean "info".
func NewLogger(out io.Writer, level string, jsonOutput bool) *Logger {
	if out == nil {
		out = os.Stdout
	}

	minLevel, ok := levels[strings.ToUpper(level)]
	if !ok {
		minLevel = levels["INFO"]
	}

	return &Logger{
		fields:   make(map[string]interface{}),
		logger:   log.New(out, "", 0), // No prefix, we'll format ourselves
		minLevel: minLevel,
		json:     jsonOutput,
	}
}

func (l *Logger) Debug(msg string, fields ...interface{}) {
	l.log("DEBUG", msg, fields...)
}

func (l *Logger) Info(msg string, fields ...interface{}) {
	l.log("INFO", msg, fields...)
}

func (l *Logger) Warn(msg string, fields ...interface{}) {
	l.log("WARN", msg, fields...)
}

func (l *Logger) Error(msg string, fields ...interface{}) {
	l.log("ERROR", msg, fields...)
}

// WithFields returns a new Logger with additional fields
func (l *Logger) WithFields(fields map[string]interface{}) ports.Logger {
	newFields := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		newFields[k] = v
	}
	for k, v := range fields {
		newFields[k] = v
	}

	return &Logger{
		fields:   newFields,
		logger:   l.logger,
		minLevel: l.minLevel,
		json:     l.json,
	}
}

func (l *Logger) log(level string, msg string, fields ...interface{}) {
	if levels[level] < l.minLevel {
		return
	}

	entry := l.createLogEntry(level, msg, fields...)
	if l.json {
		l.logJSON(entry)
	} else {
		l.logText(entry)
	}
}

// createLogEntry builds the log entry
func (l *Logger) createLogEntry(level string, msg string, fields ...interface{}) map[string]interface{} {
	entry := make(map[string]interface{})

	entry["timestamp"] = time.Now().UTC().Format(time.RFC3339)
	entry["level"] = level
	entry["message"] = msg

	for k, v := range l.fields {
		entry[k] = v
	}

	// Parse variadic fields (key1, value1, key2, value2, ...)
	for i := 0; i < len(fields)-1; i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}

		if err, ok := fields[i+1].(error); ok && err != nil {
			entry[key] = err.Error()
		} else {
			entry[key] = fields[i+1]
		}
	}

	return entry
}

func (l *Logger) logJSON(entry map[string]interface{}) {
	jsonBytes, err := json.Marshal(entry)
	if err != nil {
		l.logger.Printf("Failed to marshal log entry: %v", err)
		return
	}
	l.logger.Println(string(jsonBytes))
}

func (l *Logger) logText(entry map[string]interface{}) {
	timestamp := entry["timestamp"]
	level := entry["level"]
	message := entry["message"]
	delete(entry, "timestamp")
	delete(entry, "level")
	delete(entry, "message")

	keys := make([]string, 0, len(entry))
	for k := range entry {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fieldStrs := make([]string, 0, len(keys))
	for _, k := range keys {
		fieldStrs = append(fieldStrs, fmt.Sprintf("%s=%v", k, entry[k]))
	}

	logLine := fmt.Sprintf("%s [%s] %s", timestamp, level, message)
	if len(fieldStrs) > 0 {
		logLine += " | " + strings.Join(fieldStrs, " ")
	}

	l.logger.Println(logLine)
}
