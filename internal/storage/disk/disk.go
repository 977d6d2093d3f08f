// Package disk defines the contract the buffer pool manager relies on
// to read, write, allocate, and deallocate pages. It is the BPM's only
// external collaborator for persistence; the BPM treats it as
// synchronous, logs any error it returns, and reports the affected
// operation as failed.
package disk

import (
	"github.com/bietkhonhungvandi212/bufferpool/internal/storage/page"
	util "github.com/bietkhonhungvandi212/bufferpool/internal/utils"
)

// Manager is the disk manager surface the buffer pool depends on.
type Manager interface {
	// ReadPage returns the current on-disk contents of pageID.
	ReadPage(pageID util.PageID) (*page.Page, error)
	// WritePage persists p's contents under p.Header.PageID.
	WritePage(p *page.Page) error
	// AllocatePage returns a fresh page id, extending storage if needed.
	AllocatePage() (util.PageID, error)
	// DeallocatePage marks pageID free on disk.
	DeallocatePage(pageID util.PageID) error
}
