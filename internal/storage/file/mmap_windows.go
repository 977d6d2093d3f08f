//go:build windows

package file

import (
	"fmt"
	"sync"
	"syscall"
	"unsafe"
)

// handles tracks the Windows file-mapping handle backing each
// FileManager's current mapping. FileManager itself stays
// platform-independent, so the handle lives here instead of as a
// struct field.
var (
	handlesMu sync.Mutex
	handles   = map[*FileManager]syscall.Handle{}
)

// mmap truncates the backing file to size and maps it into fm.Data.
func mmap(fm *FileManager, size int64) error {
	if err := fm.File.Truncate(size); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	h, err := syscall.CreateFileMapping(syscall.Handle(fm.File.Fd()), nil, syscall.PAGE_READWRITE,
		uint32(size>>32), uint32(size&0xffffffff), nil)
	if err != nil {
		return fmt.Errorf("create file mapping: %w", err)
	}

	addr, err := syscall.MapViewOfFile(h, syscall.FILE_MAP_WRITE, 0, 0, uintptr(size))
	if err != nil {
		syscall.CloseHandle(h)
		return fmt.Errorf("map view of file: %w", err)
	}

	data := unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)

	handlesMu.Lock()
	handles[fm] = h
	handlesMu.Unlock()

	fm.Data = data
	fm.Size = size
	return nil
}

// munmap releases fm's current mapping, if any.
func munmap(fm *FileManager) error {
	if fm.Data == nil {
		return nil
	}

	addr := uintptr(unsafe.Pointer(&fm.Data[0]))
	fm.Data = nil

	var err error
	if e := syscall.UnmapViewOfFile(addr); e != nil {
		err = fmt.Errorf("unmap view of file: %w", e)
	}

	handlesMu.Lock()
	h, ok := handles[fm]
	delete(handles, fm)
	handlesMu.Unlock()

	if ok {
		if e := syscall.CloseHandle(h); e != nil && err == nil {
			err = fmt.Errorf("close handle: %w", e)
		}
	}
	return err
}
