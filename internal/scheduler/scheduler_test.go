package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReminders struct {
	calls  int
	now    time.Time
	window time.Duration
	err    error
}

func (f *fakeReminders) SendEndingReminders(_ context.Context, now time.Time, window time.Duration) (int, error) {
	f.calls++
	f.now = now
	f.window = window
	return 0, f.err
}

func TestNew_Validation(t *testing.T) {
	_, err := New(&fakeReminders{}, "not a schedule", 3)
	assert.Error(t, err)

	_, err = New(&fakeReminders{}, "@daily", 0)
	assert.Error(t, err)

	s, err := New(&fakeReminders{}, "", 3)
	require.NoError(t, err)
	assert.Len(t, s.cron.Entries(), 1)
}

func TestRunReminders(t *testing.T) {
	rem := &fakeReminders{}
	s, err := New(rem, "@hourly", 3)
	require.NoError(t, err)
	fixed := time.Date(2026, 5, 1, 12, 0, 0, 0, time.FixedZone("BRT", -3*3600))
	s.now = func() time.Time { return fixed }

	s.RunReminders()
	assert.Equal(t, 1, rem.calls)
	assert.Equal(t, 72*time.Hour, rem.window)
	assert.Equal(t, time.UTC, rem.now.Location())
	assert.True(t, rem.now.Equal(fixed))

	rem.err = errors.New("db down")
	assert.NotPanics(t, s.RunReminders)
	assert.Equal(t, 2, rem.calls)
}

func TestStartStop(t *testing.T) {
	s, err := New(&fakeReminders{}, "@every 1h", 1)
	require.NoError(t, err)
	s.Start()
	s.Stop()
}
