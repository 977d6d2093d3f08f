package buffer

import (
	"github.com/bietkhonhungvandi212/bufferpool/internal/storage/page"
	util "github.com/bietkhonhungvandi212/bufferpool/internal/utils"
)

// frame is one slot of the buffer pool's fixed frame array. Its page
// field owns the byte buffer callers read and write while holding a
// pin; pinCount and dirty are bookkeeping mutated only while the
// buffer pool manager's lock is held.
type frame struct {
	page     page.Page
	pinCount int32
	dirty    bool
}

func (f *frame) reset() {
	f.page = page.Page{Header: page.PageHeader{PageID: util.InvalidPageID}}
	f.pinCount = 0
	f.dirty = false
}
