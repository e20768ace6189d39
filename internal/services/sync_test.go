package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type countingRefresher struct {
	calls atomic.Int32
	err   error
}

func (r *countingRefresher) Refresh(context.Context) (bool, error) {
	r.calls.Add(1)
	return false, r.err
}

func TestStoreWatcher_PollPropagatesExternalWrites(t *testing.T) {
	ctx := context.Background()
	store := newFlakyStore()

	mine := NewNoteService(store, testCalendar(t), zap.NewNop())
	require.NoError(t, mine.Load(ctx))
	theirs := NewNoteService(store, testCalendar(t), zap.NewNop())
	require.NoError(t, theirs.Load(ctx))

	watcher := NewStoreWatcher(time.Second, zap.NewNop())
	watcher.Register("notes", mine)

	note, err := theirs.AddNote(ctx, CreateNoteInput{Subject: "from another process"})
	require.NoError(t, err)
	_, err = mine.GetNote(note.ID)
	require.ErrorIs(t, err, ErrNoteNotFound)

	watcher.Poll(ctx)
	_, err = mine.GetNote(note.ID)
	assert.NoError(t, err)
}

func TestStoreWatcher_PollLogsFailuresAndContinues(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	watcher := NewStoreWatcher(time.Second, zap.New(core))

	failing := &countingRefresher{err: errStoreDown}
	healthy := &countingRefresher{}
	watcher.Register("failing", failing)
	watcher.Register("healthy", healthy)

	watcher.Poll(context.Background())

	assert.Equal(t, int32(1), failing.calls.Load())
	assert.Equal(t, int32(1), healthy.calls.Load())
	entries := logs.FilterMessage("Refresh failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "failing", entries[0].ContextMap()["service"])
}

func TestStoreWatcher_StartStop(t *testing.T) {
	watcher := NewStoreWatcher(time.Second, zap.NewNop())
	r := &countingRefresher{}
	watcher.Register("counter", r)

	require.NoError(t, watcher.Start())
	assert.Eventually(t, func() bool { return r.calls.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)
	watcher.Stop()

	after := r.calls.Load()
	time.Sleep(1200 * time.Millisecond)
	assert.Equal(t, after, r.calls.Load(), "no ticks after Stop")
}
