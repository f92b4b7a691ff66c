package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunLock_AcquireRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warehouse.db.lock")
	l := NewRunLock(path)

	assert.False(t, l.IsHeld())
	require.NoError(t, l.Acquire())
	assert.True(t, l.IsHeld())

	// Lock file records this process's pid.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%d\n", os.Getpid()), string(data))

	require.NoError(t, l.Release())
	assert.False(t, l.IsHeld())

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestRunLock_AcquireIsIdempotent(t *testing.T) {
	l := NewRunLock(filepath.Join(t.TempDir(), "run.lock"))

	require.NoError(t, l.Acquire())
	require.NoError(t, l.Acquire())
	require.NoError(t, l.Release())
}

func TestRunLock_HeldByLiveProcess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.lock")

	// The current process is always alive, so a lock file with our own
	// pid reads as held by another instance.
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("%d\n", os.Getpid())), 0644))

	l := NewRunLock(path)
	err := l.Acquire()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLockHeld))
	assert.False(t, l.IsHeld())
}

func TestRunLock_ReclaimsStaleLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.lock")

	// Pid 0 never maps to a live process.
	require.NoError(t, os.WriteFile(path, []byte("0\n"), 0644))

	l := NewRunLock(path)
	require.NoError(t, l.Acquire())
	assert.True(t, l.IsHeld())
	require.NoError(t, l.Release())
}

func TestRunLock_ReclaimsMalformedLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.lock")
	require.NoError(t, os.WriteFile(path, []byte("not a pid"), 0644))

	l := NewRunLock(path)
	require.NoError(t, l.Acquire())
	require.NoError(t, l.Release())
}

func TestRunLock_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "run.lock")

	l := NewRunLock(path)
	require.NoError(t, l.Acquire())
	require.NoError(t, l.Release())
}

func TestRunLock_ReleaseWithoutAcquire(t *testing.T) {
	l := NewRunLock(filepath.Join(t.TempDir(), "run.lock"))
	assert.NoError(t, l.Release())
}

func TestNewWarehouseLock(t *testing.T) {
	l := NewWarehouseLock("data/warehouse.db")
	assert.Equal(t, "data/warehouse.db.lock", l.Path())
}

func TestWithLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.lock")
	l := NewRunLock(path)

	called := false
	err := l.WithLock(func() error {
		called = true
		assert.True(t, l.IsHeld())
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
	assert.False(t, l.IsHeld())
}

func TestWithLock_PropagatesError(t *testing.T) {
	l := NewRunLock(filepath.Join(t.TempDir(), "run.lock"))

	err := l.WithLock(func() error {
		return fmt.Errorf("stage failed")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stage failed")
	assert.False(t, l.IsHeld())
}

func TestWithLock_ReleasesOnPanic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.lock")
	l := NewRunLock(path)

	assert.Panics(t, func() {
		_ = l.WithLock(func() error {
			panic("boom")
		})
	})
	assert.False(t, l.IsHeld())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
