package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fluidauth/fluidauth/core/logger"
)

func TestError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.Attr{}, logger.Error(nil), "nil error yields empty attr")

	attr := logger.Error(errors.New("boom"))
	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, "boom", attr.Value.Any().(error).Error())
}

func TestIdentifierAttrs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.Attr{}, logger.Provider(""))
	assert.Equal(t, slog.Attr{}, logger.UserID(""))
	assert.Equal(t, slog.Attr{}, logger.SessionID(""))

	assert.Equal(t, "provider", logger.Provider("google").Key)
	assert.Equal(t, "google", logger.Provider("google").Value.String())
	assert.Equal(t, "u-1", logger.UserID("u-1").Value.String())
	assert.Equal(t, "s-1", logger.SessionID("s-1").Value.String())
}

func TestTimingAttrs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, time.Second, logger.Duration(time.Second).Value.Duration())

	elapsed := logger.Elapsed(time.Now().Add(-time.Minute))
	assert.Equal(t, "elapsed", elapsed.Key)
	assert.GreaterOrEqual(t, elapsed.Value.Duration(), time.Minute)
}

func TestGroup(t *testing.T) {
	t.Parallel()

	attr := logger.Group("session", logger.SessionID("s-1"), logger.UserID("u-1"))
	assert.Equal(t, "session", attr.Key)
	assert.Len(t, attr.Value.Group(), 2)
}
