//go:build !windows

package file

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// mmap truncates the backing file to size and maps it into fm.Data.
func mmap(fm *FileManager, size int64) error {
	if err := fm.File.Truncate(size); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	data, err := unix.Mmap(int(fm.File.Fd()), 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return fmt.Errorf("mmap: %w", err)
	}

	fm.Data = data
	fm.Size = size
	return nil
}

// munmap releases fm's current mapping, if any.
func munmap(fm *FileManager) error {
	if fm.Data == nil {
		return nil
	}

	err := unix.Munmap(fm.Data)
	fm.Data = nil
	if err != nil {
		return fmt.Errorf("munmap: %w", err)
	}
	return nil
}
