package logger

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// DefaultFilePath is the session log file, relative to the working directory (project root when run via go run ./cmd/playground).
const DefaultFilePath = "logs/playground.txt"

// maxLines bounds the in-memory history; the file keeps everything.
const maxLines = 512

// timeFormat stamps every line with computer time.
const timeFormat = "2006-01-02 15:04:05"

// Logger is the leveled logging surface the playground packages depend on.
type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// FileLogger formats entries through zerolog, keeps the stamped lines in memory and appends them to
// a file on disk. An empty path keeps lines in memory only.
type FileLogger struct {
	mu   sync.Mutex
	zl   zerolog.Logger
	ring *ring
}

// New returns a FileLogger writing to path and ensures the parent directory exists.
func New(path string, debug bool) *FileLogger {
	r := &ring{}
	out := io.Writer(r)
	if path != "" {
		_ = os.MkdirAll(filepath.Dir(path), 0755)
		out = io.MultiWriter(r, appendFile(path))
	}
	cw := zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    true,
		TimeFormat: timeFormat,
		FormatLevel: func(i any) string {
			return strings.ToUpper(fmt.Sprint(i)) + ":"
		},
	}
	l := &FileLogger{zl: zerolog.New(cw).With().Timestamp().Logger(), ring: r}
	l.SetDebug(debug)
	return l
}

func (l *FileLogger) DebugEnabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.zl.GetLevel() <= zerolog.DebugLevel
}

func (l *FileLogger) SetDebug(enabled bool) {
	level := zerolog.InfoLevel
	if enabled {
		level = zerolog.DebugLevel
	}
	l.mu.Lock()
	l.zl = l.zl.Level(level)
	l.mu.Unlock()
}

func (l *FileLogger) logger() zerolog.Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.zl
}

func (l *FileLogger) Debugf(format string, args ...any) {
	zl := l.logger()
	zl.Debug().Msgf(format, args...)
}

func (l *FileLogger) Infof(format string, args ...any) {
	zl := l.logger()
	zl.Info().Msgf(format, args...)
}

func (l *FileLogger) Warnf(format string, args ...any) {
	zl := l.logger()
	zl.Warn().Msgf(format, args...)
}

func (l *FileLogger) Errorf(format string, args ...any) {
	zl := l.logger()
	zl.Error().Msgf(format, args...)
}

// Lines returns a copy of all stored lines.
func (l *FileLogger) Lines() []string {
	return l.ring.snapshot()
}

// ring keeps the last maxLines lines written to it.
type ring struct {
	mu    sync.Mutex
	lines []string
}

func (r *ring) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, line := range bytes.Split(bytes.TrimRight(p, "\n"), []byte("\n")) {
		r.lines = append(r.lines, string(line))
	}
	if len(r.lines) > maxLines {
		r.lines = r.lines[len(r.lines)-maxLines:]
	}
	return len(p), nil
}

func (r *ring) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.lines))
	copy(out, r.lines)
	return out
}

// appendFile opens path for every write so the file can be rotated or removed while running.
type appendFile string

func (a appendFile) Write(p []byte) (int, error) {
	f, err := os.OpenFile(string(a), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return f.Write(p)
}

type nopLogger struct{}

// NewNop returns a Logger that drops everything.
func NewNop() Logger { return nopLogger{} }

func (nopLogger) DebugEnabled() bool                { return false }
func (nopLogger) SetDebug(enabled bool)             {}
func (nopLogger) Debugf(format string, args ...any) {}
func (nopLogger) Infof(format string, args ...any)  {}
func (nopLogger) Warnf(format string, args ...any)  {}
func (nopLogger) Errorf(format string, args ...any) {}
