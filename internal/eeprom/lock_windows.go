//go:build windows

package eeprom

import (
	"fmt"
	"os"

	"golang.org/x/sys/windows"
)

// withLock runs fn while holding a LockFileEx lock on path+".lock".
func withLock(path string, exclusive bool, fn func() error) error {
	lf, err := os.OpenFile(path+".lock", os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return err
	}
	defer lf.Close()

	var flags uint32
	if exclusive {
		flags = windows.LOCKFILE_EXCLUSIVE_LOCK
	}
	h := windows.Handle(lf.Fd())
	ol := new(windows.Overlapped)
	if err := windows.LockFileEx(h, flags, 0, 1, 0, ol); err != nil {
		return fmt.Errorf("lock eeprom: %w", err)
	}
	defer windows.UnlockFileEx(h, 0, 1, 0, ol) //nolint:errcheck

	return fn()
}
