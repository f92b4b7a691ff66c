// Package lock provides file-based run locking for GoPipeline.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrLockHeld is returned when the lock file belongs to another live
// pipeline process.
var ErrLockHeld = errors.New("run lock is held by another instance")

// RunLock represents an exclusive file lock that prevents concurrent
// pipeline runs from writing the same warehouse. The lock file records
// the holder's pid; a lock left behind by a dead process is treated as
// stale and reclaimed.
type RunLock struct {
	path string
	held bool
}

// NewRunLock creates a lock for the given lock file path. The lock is
// not acquired until Acquire is called.
func NewRunLock(path string) *RunLock {
	return &RunLock{path: path}
}

// NewWarehouseLock creates a run lock guarding the given warehouse
// file. The lock file lives next to the warehouse.
func NewWarehouseLock(warehousePath string) *RunLock {
	return NewRunLock(warehousePath + ".lock")
}

// Acquire attempts to take the lock. It returns ErrLockHeld when a live
// process holds it, and reclaims the lock file when the recorded pid no
// longer exists.
func (l *RunLock) Acquire() error {
	if l.held {
		return nil
	}

	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create lock directory: %w", err)
		}
	}

	if err := l.tryCreate(); err == nil {
		l.held = true
		return nil
	} else if !os.IsExist(err) {
		return fmt.Errorf("failed to create lock file: %w", err)
	}

	pid, err := l.holderPID()
	if err != nil {
		return err
	}
	if pidAlive(pid) {
		return fmt.Errorf("%w: pid %d holds %s", ErrLockHeld, pid, l.path)
	}

	// Stale lock from a dead process; reclaim it.
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove stale lock: %w", err)
	}
	if err := l.tryCreate(); err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%w: lost race for %s", ErrLockHeld, l.path)
		}
		return fmt.Errorf("failed to create lock file: %w", err)
	}
	l.held = true
	return nil
}

// tryCreate atomically creates the lock file with this process's pid.
func (l *RunLock) tryCreate() error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	_, writeErr := fmt.Fprintf(f, "%d\n", os.Getpid())
	closeErr := f.Close()
	if writeErr != nil {
		return writeErr
	}
	return closeErr
}

// holderPID reads the pid recorded in the lock file. A vanished or
// unreadable lock file is reported as pid 0, which is never alive.
func (l *RunLock) holderPID() (int, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read lock file: %w", err)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, nil
	}
	return pid, nil
}

// pidAlive reports whether a process with the given pid exists.
func pidAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	// On Linux the process directory is the cheapest liveness probe.
	_, err := os.Stat(filepath.Join("/proc", strconv.Itoa(pid)))
	return err == nil
}

// Release removes the lock file. Releasing a lock that is not held is
// a no-op.
func (l *RunLock) Release() error {
	if !l.held {
		return nil
	}
	l.held = false
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}
	return nil
}

// IsHeld returns true if this lock is currently held by this instance.
func (l *RunLock) IsHeld() bool {
	return l.held
}

// Path returns the lock file path.
func (l *RunLock) Path() string {
	return l.path
}

// WithLock executes fn while holding the lock, releasing it even when
// fn panics.
func (l *RunLock) WithLock(fn func() error) error {
	if err := l.Acquire(); err != nil {
		return err
	}
	defer func() {
		_ = l.Release()
	}()
	return fn()
}
