package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/yaklabco/mdlstyle/internal/watch"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestFile_CallsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".mdl_style.rb")
	require.NoError(t, os.WriteFile(path, []byte("all\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- watch.File(ctx, path, 20*time.Millisecond, func() { calls.Add(1) })
	}()

	// Keep writing until the watcher is installed and reports a change.
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("all\nexclude_rule 'MD013'\n"), 0o644)
		return calls.Load() > 0
	}, 5*time.Second, 100*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestFile_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".mdl_style.rb")
	other := filepath.Join(dir, "README.md")
	require.NoError(t, os.WriteFile(path, []byte("all\n"), 0o644))

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	var calls atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- watch.File(ctx, path, 10*time.Millisecond, func() { calls.Add(1) })
	}()

	for range 5 {
		require.NoError(t, os.WriteFile(other, []byte("# title\n"), 0o644))
		time.Sleep(50 * time.Millisecond)
	}

	require.NoError(t, <-done)
	assert.Zero(t, calls.Load())
}

func TestFile_MissingDirectory(t *testing.T) {
	err := watch.File(context.Background(), filepath.Join(t.TempDir(), "missing", "style.rb"), time.Millisecond, func() {})
	require.Error(t, err)
}
