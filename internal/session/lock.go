package session

import (
	"errors"
	"fmt"

	"github.com/gofrs/flock"
)

// ErrAlreadyRunning reports that another session holds the lock.
var ErrAlreadyRunning = errors.New("another chdbatch session is already running")

// instanceLock enforces one interactive session per log directory, so two
// sessions never convert or delete the same files at once.
type instanceLock struct {
	path string
	lock *flock.Flock
}

func newInstanceLock(path string) *instanceLock {
	return &instanceLock{path: path, lock: flock.New(path)}
}

func (l *instanceLock) acquire() error {
	ok, err := l.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock %s: %w", l.path, err)
	}
	if !ok {
		return ErrAlreadyRunning
	}
	return nil
}

func (l *instanceLock) release() error {
	return l.lock.Unlock()
}
