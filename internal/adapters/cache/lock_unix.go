//go:build unix

package cache

import (
	"errors"
	"os"
	"syscall"

	"go.trai.ch/impact/internal/core/domain"
)

// lockFile takes a non-blocking exclusive flock(2) on f.
func lockFile(f *os.File) error {
	err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
	if errors.Is(err, syscall.EWOULDBLOCK) {
		return domain.ErrCacheLocked
	}
	return err
}

func unlockFile(f *os.File) error {
	return syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
}
