package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitRun(t *testing.T, runs <-chan struct{}) {
	t.Helper()
	select {
	case <-runs:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a run")
	}
}

func TestWatcherRunsOnChange(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "basic.itl")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(input, []byte(`{"types": []}`), 0o644))

	runs := make(chan struct{}, 10)
	w, err := New([]string{input}, func(ctx context.Context) error {
		runs <- struct{}{}
		return nil
	}, WithDebounce(20*time.Millisecond), WithRunsPerMinute(6000))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Initial run.
	waitRun(t, runs)

	require.NoError(t, os.WriteFile(other, []byte("ignored"), 0o644))
	require.NoError(t, os.WriteFile(input, []byte(`{"types": [ ]}`), 0o644))
	waitRun(t, runs)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestNewMissingDirectory(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "missing", "basic.itl")}, func(context.Context) error { return nil })
	require.Error(t, err)
}

func TestNewRejectsBadOptions(t *testing.T) {
	input := filepath.Join(t.TempDir(), "basic.itl")
	run := func(context.Context) error { return nil }

	tests := []struct {
		name string
		opt  Option
	}{
		{"zero runs per minute", WithRunsPerMinute(0)},
		{"negative runs per minute", WithRunsPerMinute(-3)},
		{"negative debounce", WithDebounce(-time.Second)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New([]string{input}, run, tt.opt)
			require.Error(t, err)
		})
	}
}
