package pause

import (
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&strings.Builder{}, nil))
}

func TestPauseAndExpiry(t *testing.T) {
	r := NewRegistry(testLogger())

	assert.False(t, r.IsPaused("u1"))

	r.Pause("u1", 50*time.Millisecond)
	assert.True(t, r.IsPaused("u1"))
	assert.False(t, r.IsPaused("u2"))

	time.Sleep(80 * time.Millisecond)
	assert.False(t, r.IsPaused("u1"))
}

func TestPauseOverwriteRestartsClock(t *testing.T) {
	r := NewRegistry(testLogger())

	r.Pause("u1", 30*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	// Re-pausing replaces the earlier, shorter deadline.
	r.Pause("u1", 100*time.Millisecond)
	time.Sleep(40 * time.Millisecond)
	assert.True(t, r.IsPaused("u1"))

	time.Sleep(100 * time.Millisecond)
	assert.False(t, r.IsPaused("u1"))
}
