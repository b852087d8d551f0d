package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/bookindex/internal/domain"
)

func TestNew_DefaultWriter(t *testing.T) {
	logger := New(Config{Level: slog.LevelInfo, Format: "json"})
	assert.NotNil(t, logger)
	assert.NotNil(t, logger.Logger)
}

func TestNew_CustomWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Format: "json", Writer: &buf})

	logger.Info("test message")

	assert.Contains(t, buf.String(), "test message")
	assert.Contains(t, buf.String(), "\"level\":\"INFO\"")
}

func TestNew_FormatAutoDetection(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		wantJSON    bool
	}{
		{"production uses json", "production", true},
		{"development uses console", "development", false},
		{"staging uses console", "staging", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(Config{Environment: tt.environment, Writer: &buf})
			logger.Info("hello")

			if tt.wantJSON {
				assert.Contains(t, buf.String(), `"msg":"hello"`)
			} else {
				assert.Contains(t, buf.String(), "INF")
				assert.NotContains(t, buf.String(), `"msg"`)
			}
		})
	}
}

func TestNew_SourceIsBaseName(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Format: "json", Writer: &buf, AddSource: true})

	logger.Info("with source")

	assert.Contains(t, buf.String(), `"file":"logger_test.go"`)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestConsoleHandler_Enabled(t *testing.T) {
	h := NewConsoleHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})

	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))

	def := NewConsoleHandler(&bytes.Buffer{}, nil)
	assert.False(t, def.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, def.Enabled(context.Background(), slog.LevelInfo))
}

func TestConsoleHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	h := NewConsoleHandler(&buf, nil)

	r := slog.NewRecord(time.Now(), slog.LevelWarn, "unknown author", 0)
	r.AddAttrs(slog.String("author", "Alice"), slog.Int("books", 0))
	require.NoError(t, h.Handle(context.Background(), r))

	out := buf.String()
	assert.Contains(t, out, "WRN")
	assert.Contains(t, out, "unknown author")
	assert.Contains(t, out, "author=Alice")
	assert.Contains(t, out, "books=0")
}

func TestConsoleHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewConsoleHandler(&buf, nil))

	log.With("load_id", "load-abc").WithGroup("catalog").Info("loaded", "books", 3)

	out := buf.String()
	assert.Contains(t, out, "load_id=load-abc")
	assert.Contains(t, out, "catalog.books=3")
}

func TestConsoleHandler_ExpandsLogValuer(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewConsoleHandler(&buf, nil))

	log.Info("book added", "book", domain.NewBook("Book A", []string{"Alice", "Bob"}))

	out := buf.String()
	assert.Contains(t, out, "book.title=Book A")
	assert.Contains(t, out, `book.authors=["Alice" "Bob"]`)
}

func TestLevelTag(t *testing.T) {
	tests := []struct {
		level slog.Level
		want  string
	}{
		{slog.LevelDebug, "DBG"},
		{slog.LevelInfo, "INF"},
		{slog.LevelWarn, "WRN"},
		{slog.LevelError, "ERR"},
		{slog.LevelError + 4, "ERR"},
	}

	for _, tt := range tests {
		got, _ := levelTag(tt.level)
		assert.Equal(t, tt.want, got)
	}
}
