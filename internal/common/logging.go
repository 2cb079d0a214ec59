// Package common holds the arbor-backed logger used by both binaries.
package common

import (
	"encoding/json"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/phuslu/log"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/arbor/models"
	"github.com/ternarybob/arbor/writers"
)

const (
	// DefaultLogFile is used when the file output has no explicit path.
	DefaultLogFile = "logs/market-portal.log"

	timeFormat        = "2006-01-02T15:04:05Z07:00"
	defaultMaxSize    = 500 * 1024
	defaultMaxBackups = 10
)

// Output names accepted in LoggingConfig.Outputs.
const (
	OutputConsole = "console"
	OutputFile    = "file"
)

// LoggingConfig selects the level and writers of a Logger.
type LoggingConfig struct {
	Level      string
	Outputs    []string
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
}

// Logger is the portal logger. Events are built fluently:
//
//	logger.Info().Str("tab", "advice").Msg("tab selected")
type Logger struct {
	arbor.ILogger
}

// NewLoggerFromConfig builds a logger from the [logging] config section.
// Output names are matched case-insensitively; unknown names are skipped and
// an empty list means console only. The memory writer is always attached.
func NewLoggerFromConfig(cfg LoggingConfig) *Logger {
	level := strings.TrimSpace(cfg.Level)
	if level == "" {
		level = "info"
	}

	l := arbor.NewLogger()
	for _, out := range normalizeOutputs(cfg.Outputs) {
		switch out {
		case OutputConsole:
			l = l.WithConsoleWriter(models.WriterConfiguration{
				Type:       models.LogWriterTypeConsole,
				Writer:     os.Stderr,
				TimeFormat: timeFormat,
			})
		case OutputFile:
			l = l.WithFileWriter(fileWriterConfig(cfg))
		}
	}

	l = l.WithMemoryWriter(models.WriterConfiguration{
		Type: models.LogWriterTypeMemory,
	}).WithLevelFromString(level)

	return &Logger{ILogger: l}
}

// normalizeOutputs lowercases, trims and dedupes output names. Env values
// like "console, file" arrive unsplit on whitespace.
func normalizeOutputs(outputs []string) []string {
	seen := make(map[string]bool, len(outputs))
	var out []string
	for _, o := range outputs {
		o = strings.ToLower(strings.TrimSpace(o))
		if o == "" || seen[o] {
			continue
		}
		seen[o] = true
		out = append(out, o)
	}
	if len(out) == 0 {
		return []string{OutputConsole}
	}
	return out
}

func fileWriterConfig(cfg LoggingConfig) models.WriterConfiguration {
	path := cfg.FilePath
	if path == "" {
		path = DefaultLogFile
	}
	maxSize := int64(cfg.MaxSizeMB) * 1024 * 1024
	if maxSize <= 0 {
		maxSize = defaultMaxSize
	}
	backups := cfg.MaxBackups
	if backups <= 0 {
		backups = defaultMaxBackups
	}
	return models.WriterConfiguration{
		Type:       models.LogWriterTypeFile,
		FileName:   path,
		MaxSize:    maxSize,
		MaxBackups: backups,
		TimeFormat: timeFormat,
	}
}

// NewLoggerWithOutput creates a logger writing one text line per event to w.
// Tests use it to assert on log output.
func NewLoggerWithOutput(level string, w io.Writer) *Logger {
	arbor.RegisterWriter(arbor.WRITER_CONSOLE, &textWriter{out: w, level: log.TraceLevel})

	l := arbor.NewLogger().
		WithMemoryWriter(models.WriterConfiguration{Type: models.LogWriterTypeMemory}).
		WithLevelFromString(level)
	return &Logger{ILogger: l}
}

// NewSilentLogger creates a logger that drops every event, including those
// that would reach globally registered writers.
func NewSilentLogger() *Logger {
	return &Logger{ILogger: arbor.NewLogger().WithWriters([]writers.IWriter{discardWriter{}})}
}

// WithCorrelationId returns a Logger tagged with a request correlation ID.
func (l *Logger) WithCorrelationId(id string) *Logger {
	return &Logger{ILogger: l.ILogger.WithCorrelationId(id)}
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error)           { return len(p), nil }
func (discardWriter) WithLevel(_ log.Level) writers.IWriter { return discardWriter{} }
func (discardWriter) GetFilePath() string                   { return "" }
func (discardWriter) Close() error                          { return nil }

// textWriter renders arbor's JSON events as "message k=v ..." lines with
// fields in key order.
type textWriter struct {
	out   io.Writer
	level log.Level
}

func (w *textWriter) Write(p []byte) (int, error) {
	var evt models.LogEvent
	if err := json.Unmarshal(p, &evt); err != nil {
		return w.out.Write(p)
	}
	if evt.Level < w.level {
		return len(p), nil
	}
	if _, err := io.WriteString(w.out, formatEvent(evt)); err != nil {
		return 0, err
	}
	return len(p), nil
}

func formatEvent(evt models.LogEvent) string {
	keys := make([]string, 0, len(evt.Fields))
	for k := range evt.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(evt.Message)
	for _, k := range keys {
		b.WriteByte(' ')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(fieldString(evt.Fields[k]))
	}
	if evt.Error != "" {
		b.WriteString(" error=")
		b.WriteString(strconv.Quote(evt.Error))
	}
	b.WriteByte('\n')
	return b.String()
}

// fieldString quotes strings containing spaces so lines stay splittable.
func fieldString(v interface{}) string {
	switch t := v.(type) {
	case string:
		if strings.ContainsAny(t, " \t\"=") {
			return strconv.Quote(t)
		}
		return t
	case nil:
		return "<nil>"
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return "?"
		}
		return string(b)
	}
}

func (w *textWriter) WithLevel(level log.Level) writers.IWriter {
	w.level = level
	return w
}

func (w *textWriter) GetFilePath() string { return "" }
func (w *textWriter) Close() error        { return nil }
