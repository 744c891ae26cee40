package logger

import (
	"bytes"
	"context"
	"log/slog"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLogger(cfg Config) (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	base := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(newFilteringHandler(base, cfg.process())), &buf
}

func logTagged(l *slog.Logger, tag, msg string) {
	var pcs [1]uintptr
	runtime.Callers(2, pcs[:])
	r := slog.NewRecord(time.Now(), slog.LevelInfo, msg, pcs[0])
	if tag != "" {
		r.AddAttrs(slog.String(tagKey, tag))
	}
	_ = l.Handler().Handle(context.Background(), r)
}

func TestTagFiltering(t *testing.T) {
	l, buf := newTestLogger(Config{EnabledTags: []string{"History"}})

	logTagged(l, "history", "kept")
	logTagged(l, "store", "dropped-by-tag")
	logTagged(l, "", "dropped-untagged")

	out := buf.String()
	assert.Contains(t, out, "kept")
	assert.NotContains(t, out, "dropped-by-tag")
	assert.NotContains(t, out, "dropped-untagged")
}

func TestDisabledTagWins(t *testing.T) {
	l, buf := newTestLogger(Config{
		EnabledTags:  []string{"store"},
		DisabledTags: []string{"store"},
	})
	logTagged(l, "store", "gone")
	assert.Empty(t, buf.String())
}

func TestPackageAndFileFiltering(t *testing.T) {
	l, buf := newTestLogger(Config{DisabledPackages: []string{"logger"}})
	logTagged(l, "", "from logger package")
	assert.Empty(t, buf.String())

	l, buf = newTestLogger(Config{EnabledFiles: []string{"handler_test.go"}})
	logTagged(l, "", "from this file")
	assert.Contains(t, buf.String(), "from this file")

	l, buf = newTestLogger(Config{EnabledFiles: []string{"other.go"}})
	logTagged(l, "", "not this file")
	assert.Empty(t, buf.String())
}

func TestNoFiltersPassesEverything(t *testing.T) {
	l, buf := newTestLogger(NewConfig())
	logTagged(l, "anything", "one")
	logTagged(l, "", "two")
	assert.Contains(t, buf.String(), "one")
	assert.Contains(t, buf.String(), "two")
}

func TestConfigLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, Config{LogLevel: in}.Level(), "level %q", in)
	}
}

func TestSliceToSet(t *testing.T) {
	assert.Nil(t, sliceToSet(nil))
	assert.Nil(t, sliceToSet([]string{" ", ""}))
	assert.Equal(t, map[string]struct{}{"a": {}, "b": {}}, sliceToSet([]string{"A", " b "}))
}
