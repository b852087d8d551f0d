// Package logger builds the book index's slog logger: JSON lines in production,
// a compact colored console format everywhere else.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	formatJSON    = "json"
	formatConsole = "console"
)

const (
	ansiReset  = "\033[0m"
	ansiDim    = "\033[2m"
	ansiBold   = "\033[1m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiPurple = "\033[35m"
	ansiCyan   = "\033[36m"
)

// Logger is the application logger.
type Logger struct {
	*slog.Logger
}

// Config holds logger configuration.
type Config struct {
	Writer      io.Writer // os.Stderr if nil
	Format      string    // "json" or "console"; picked from Environment if empty
	Environment string
	Level       slog.Level
	AddSource   bool
}

// New creates a logger from cfg.
func New(cfg Config) *Logger {
	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}

	format := cfg.Format
	if format == "" {
		format = formatConsole
		if cfg.Environment == "production" {
			format = formatJSON
		}
	}

	opts := &slog.HandlerOptions{Level: cfg.Level, AddSource: cfg.AddSource}

	var h slog.Handler
	if format == formatJSON {
		opts.ReplaceAttr = shortSource
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = NewConsoleHandler(w, opts)
	}
	return &Logger{Logger: slog.New(h)}
}

// shortSource trims the source file to its base name.
func shortSource(_ []string, a slog.Attr) slog.Attr {
	if src, ok := a.Value.Any().(*slog.Source); ok && a.Key == slog.SourceKey {
		src.File = filepath.Base(src.File)
	}
	return a
}

// ParseLevel converts a level name to a slog.Level. Unknown names map to info.
func ParseLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// ConsoleHandler writes one colored line per record:
//
//	15:04:05 INF message key=value group.key=value
type ConsoleHandler struct {
	w       io.Writer
	mu      *sync.Mutex
	level   slog.Leveler
	source  bool
	preset  string // attrs bound via WithAttrs, already formatted
	groupAt string // dotted group path for record attrs
}

// NewConsoleHandler creates a console handler. A nil opts logs at info.
func NewConsoleHandler(w io.Writer, opts *slog.HandlerOptions) *ConsoleHandler {
	h := &ConsoleHandler{w: w, mu: &sync.Mutex{}, level: slog.LevelInfo}
	if opts != nil {
		if opts.Level != nil {
			h.level = opts.Level
		}
		h.source = opts.AddSource
	}
	return h
}

// Enabled implements slog.Handler.
func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle implements slog.Handler.
func (h *ConsoleHandler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder

	sb.WriteString(ansiDim + r.Time.Format(time.TimeOnly) + ansiReset + " ")
	tag, color := levelTag(r.Level)
	sb.WriteString(color + tag + ansiReset + " ")

	if h.source {
		if src := r.Source(); src != nil && src.File != "" {
			sb.WriteString(ansiDim + filepath.Base(src.File) + ":" + strconv.Itoa(src.Line) + ansiReset + " ")
		}
	}

	sb.WriteString(ansiBold + r.Message + ansiReset)

	var attrs strings.Builder
	attrs.WriteString(h.preset)
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&attrs, h.groupAt, a)
		return true
	})
	if attrs.Len() > 0 {
		sb.WriteString(ansiCyan + attrs.String() + ansiReset)
	}
	sb.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, sb.String())
	return err
}

// WithAttrs implements slog.Handler.
func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var sb strings.Builder
	sb.WriteString(h.preset)
	for _, a := range attrs {
		writeAttr(&sb, h.groupAt, a)
	}
	c := *h
	c.preset = sb.String()
	return &c
}

// WithGroup implements slog.Handler.
func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := *h
	c.groupAt = h.groupAt + name + "."
	return &c
}

// writeAttr appends " key=value" for a, flattening groups and LogValuers
// into dotted keys.
func writeAttr(sb *strings.Builder, prefix string, a slog.Attr) {
	v := a.Value.Resolve()
	if a.Key == "" && v.Kind() != slog.KindGroup {
		return
	}
	if v.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}
		for _, ga := range v.Group() {
			writeAttr(sb, prefix, ga)
		}
		return
	}

	sb.WriteString(" " + prefix + a.Key + "=")
	switch v.Kind() {
	case slog.KindTime:
		sb.WriteString(v.Time().Format(time.RFC3339))
	case slog.KindAny:
		if names, ok := v.Any().([]string); ok {
			sb.WriteString("[" + quoteAll(names) + "]")
			return
		}
		sb.WriteString(v.String())
	default:
		sb.WriteString(v.String())
	}
}

func quoteAll(values []string) string {
	quoted := make([]string, len(values))
	for i, s := range values {
		quoted[i] = strconv.Quote(s)
	}
	return strings.Join(quoted, " ")
}

func levelTag(level slog.Level) (tag, color string) {
	switch {
	case level >= slog.LevelError:
		return "ERR", ansiRed
	case level >= slog.LevelWarn:
		return "WRN", ansiYellow
	case level >= slog.LevelInfo:
		return "INF", ansiGreen
	default:
		return "DBG", ansiPurple
	}
}
