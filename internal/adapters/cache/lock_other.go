//go:build !unix

package cache

import "os"

// Advisory locking is only implemented on unix; elsewhere concurrent runs rely
// on the atomic rename alone.
func lockFile(_ *os.File) error { return nil }

func unlockFile(_ *os.File) error { return nil }
