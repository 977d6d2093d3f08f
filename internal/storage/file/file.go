// Package file implements an mmap-backed disk manager: the on-disk
// page store the buffer pool manager reads through and writes back to.
package file

import (
	"errors"
	"fmt"
	"os"

	"github.com/bietkhonhungvandi212/bufferpool/internal/storage/page"
	util "github.com/bietkhonhungvandi212/bufferpool/internal/utils"
)

// MaxMapSize bounds how large the backing file may grow.
const MaxMapSize = 1 << 40

// FileManager is a disk.Manager implementation backed by a memory
// mapped file. Pages are laid out consecutively by id; the mapping is
// grown (unmap, truncate, remap) whenever a write would fall outside
// the current mapping.
type FileManager struct {
	File *os.File
	Data []byte
	Size int64

	nextPageID util.PageID
	freeIDs    []util.PageID
}

// NewFileManager opens (creating if necessary) path, sets its size to
// exactly initialPages pages (truncating a larger file), and maps it
// into memory.
func NewFileManager(path string, initialPages int) (*FileManager, error) {
	if initialPages <= 0 {
		return nil, util.ErrInvalidInitialPages
	}

	initialSize := int64(initialPages) * int64(util.PageSize)

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o666)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	fm := &FileManager{File: f}

	if err := mmap(fm, initialSize); err != nil {
		f.Close()
		return nil, fmt.Errorf("map file: %w", err)
	}

	return fm, nil
}

// ReadPage returns the current on-disk contents of pageID.
func (fm *FileManager) ReadPage(pageID util.PageID) (*page.Page, error) {
	offset := int64(pageID) * int64(util.PageSize)
	if offset < 0 || offset+int64(util.PageSize) > fm.Size {
		return nil, util.ErrPageOutOfBounds
	}

	p, err := page.Deserialize(fm.Data[offset : offset+int64(util.PageSize)])
	if err != nil {
		return nil, fmt.Errorf("deserialize page %d: %w", pageID, err)
	}
	return p, nil
}

// WritePage persists p, growing the mapping if p's offset falls
// outside it.
func (fm *FileManager) WritePage(p *page.Page) error {
	if err := fm.ensureMapped(p.Header.PageID); err != nil {
		return err
	}

	offset := int64(p.Header.PageID) * int64(util.PageSize)
	copy(fm.Data[offset:], p.Serialize())
	return nil
}

// AllocatePage returns a fresh page id, preferring a previously
// deallocated one, and writes a zeroed page so the id can be read back
// before any explicit write.
func (fm *FileManager) AllocatePage() (util.PageID, error) {
	var id util.PageID
	if n := len(fm.freeIDs); n > 0 {
		id = fm.freeIDs[n-1]
		fm.freeIDs = fm.freeIDs[:n-1]
	} else {
		id = fm.nextPageID
		fm.nextPageID++
	}

	if err := fm.WritePage(&page.Page{Header: page.PageHeader{PageID: id}}); err != nil {
		return util.InvalidPageID, fmt.Errorf("allocate page %d: %w", id, err)
	}
	return id, nil
}

// DeallocatePage marks pageID free for reuse by a future AllocatePage.
func (fm *FileManager) DeallocatePage(pageID util.PageID) error {
	fm.freeIDs = append(fm.freeIDs, pageID)
	return nil
}

// ensureMapped grows the mapping, if necessary, to cover pageID.
func (fm *FileManager) ensureMapped(pageID util.PageID) error {
	offset := int64(pageID) * int64(util.PageSize)
	if offset+int64(util.PageSize) <= fm.Size {
		return nil
	}

	newSize := max(fm.Size*2, offset+int64(util.PageSize))
	if newSize > MaxMapSize {
		return util.ErrMaxMapSizeExceeded
	}

	if err := munmap(fm); err != nil {
		return fmt.Errorf("unmap file: %w", err)
	}
	if err := mmap(fm, newSize); err != nil {
		return fmt.Errorf("map file: %w", err)
	}
	return nil
}

// Close unmaps the file and closes the underlying descriptor, syncing
// pending writes first.
func (fm *FileManager) Close() error {
	if fm == nil {
		return nil
	}

	var err error
	if e := munmap(fm); e != nil {
		err = errors.Join(err, fmt.Errorf("unmap file: %w", e))
	}

	if fm.File != nil {
		if e := fm.File.Sync(); e != nil {
			err = errors.Join(err, fmt.Errorf("sync file: %w", e))
		}
		if e := fm.File.Close(); e != nil {
			err = errors.Join(err, fmt.Errorf("close file: %w", e))
		}
		fm.File = nil
	}
	return err
}
