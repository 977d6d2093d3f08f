// Package buffer implements the buffer pool manager: a fixed-size
// in-memory cache of disk pages, backed by a pluggable replacement
// policy and a disk manager.
package buffer

import (
	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"github.com/bietkhonhungvandi212/bufferpool/internal/storage/disk"
	"github.com/bietkhonhungvandi212/bufferpool/internal/storage/page"
	util "github.com/bietkhonhungvandi212/bufferpool/internal/utils"

	"sync"
)

// BufferPoolManager orchestrates frame assignment across a fixed pool
// of frames: a page-id to frame-index map, a free-frame list, and a
// replacer for victim selection when the free list is empty. One lock
// guards all of it; the replacer's own lock is always acquired while
// this lock is held, never the other way around.
type BufferPoolManager struct {
	mu sync.Mutex

	poolSize  int
	frames    []frame
	pageTable map[util.PageID]util.FrameID
	freeList  []util.FrameID

	replacer Replacer
	disk     disk.Manager
	log      LogManager

	logger *logrus.Logger
}

// NewBufferPoolManager builds a manager over poolSize frames. replacer
// supplies the eviction policy; logManager is retained but, absent a
// WAL, never consulted.
func NewBufferPoolManager(poolSize int, diskManager disk.Manager, replacer Replacer, logManager LogManager) (*BufferPoolManager, error) {
	if poolSize <= 0 {
		return nil, util.ErrInvalidPoolSize
	}
	if diskManager == nil {
		return nil, util.ErrFileManagerNil
	}

	freeList := make([]util.FrameID, poolSize)
	frames := make([]frame, poolSize)
	for i := range frames {
		frames[i].reset()
		// targetFrame pops from the tail, so fill descending: frame 0
		// ends up on top and is handed out first.
		freeList[i] = util.FrameID(poolSize - 1 - i)
	}

	logger := logrus.New()
	logger.WithFields(logrus.Fields{
		"pool_size":  poolSize,
		"pool_bytes": humanize.Bytes(uint64(poolSize) * uint64(util.PageSize)),
	}).Info("buffer pool manager started")

	return &BufferPoolManager{
		poolSize:  poolSize,
		frames:    frames,
		pageTable: make(map[util.PageID]util.FrameID, poolSize),
		freeList:  freeList,
		replacer:  replacer,
		disk:      diskManager,
		log:       logManager,
		logger:    logger,
	}, nil
}

// FetchPage returns the frame holding pageID, pinning it, reading it
// in from disk first if necessary. ok is false when pageID is not
// resident and no frame (free or victim) is available, or when writing
// back the victim or reading pageID from disk fails.
func (b *BufferPoolManager) FetchPage(pageID util.PageID) (*page.Page, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if frameID, ok := b.pageTable[pageID]; ok {
		b.replacer.Pin(frameID)
		f := &b.frames[frameID]
		f.pinCount++
		return &f.page, true
	}

	frameID, ok := b.targetFrame()
	if !ok {
		b.logger.WithField("page_id", pageID).Warn("fetch_page: no free frame or victim available")
		return nil, false
	}

	if err := b.evict(frameID); err != nil {
		b.logger.WithError(err).WithField("frame_id", frameID).Error("fetch_page: write-back of victim failed")
		b.releaseFrame(frameID)
		return nil, false
	}

	p, err := b.disk.ReadPage(pageID)
	if err != nil {
		b.logger.WithError(err).WithField("page_id", pageID).Error("fetch_page: disk read failed")
		b.releaseFrame(frameID)
		return nil, false
	}

	f := &b.frames[frameID]
	f.page = *p
	f.dirty = false
	f.pinCount = 1

	b.pageTable[pageID] = frameID
	b.replacer.Pin(frameID)

	return &f.page, true
}

// UnpinPage decrements pageID's pin count, reporting isDirty into the
// frame's dirty bit (never cleared here). Returns false if pageID is
// not resident, or its pin count was already zero.
func (b *BufferPoolManager) UnpinPage(pageID util.PageID, isDirty bool) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	frameID, ok := b.pageTable[pageID]
	if !ok {
		return false
	}

	f := &b.frames[frameID]
	if f.pinCount <= 0 {
		return false
	}

	if isDirty {
		f.dirty = true
	}

	f.pinCount--
	if f.pinCount == 0 {
		b.replacer.Unpin(frameID)
	}
	return true
}

// FlushPage writes pageID's current bytes to disk unconditionally and
// clears its dirty bit. Returns false if pageID is invalid or not
// resident.
func (b *BufferPoolManager) FlushPage(pageID util.PageID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if pageID == util.InvalidPageID {
		return false
	}

	frameID, ok := b.pageTable[pageID]
	if !ok {
		return false
	}

	f := &b.frames[frameID]
	if err := b.disk.WritePage(&f.page); err != nil {
		b.logger.WithError(err).WithField("page_id", pageID).Error("flush_page: disk write failed")
		return false
	}
	f.dirty = false
	return true
}

// NewPage allocates a fresh page id from the disk manager and assigns
// it a zeroed, pinned frame. ok is false when no frame (free or victim)
// is available, or when writing back the victim or allocating the page
// id on disk fails.
func (b *BufferPoolManager) NewPage() (*page.Page, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	frameID, ok := b.targetFrame()
	if !ok {
		b.logger.Warn("new_page: no free frame or victim available")
		return nil, false
	}

	if err := b.evict(frameID); err != nil {
		b.logger.WithError(err).WithField("frame_id", frameID).Error("new_page: write-back of victim failed")
		b.releaseFrame(frameID)
		return nil, false
	}

	newID, err := b.disk.AllocatePage()
	if err != nil {
		b.logger.WithError(err).Error("new_page: disk allocation failed")
		b.releaseFrame(frameID)
		return nil, false
	}

	f := &b.frames[frameID]
	f.page = page.Page{Header: page.PageHeader{PageID: newID}}
	f.dirty = false
	f.pinCount = 1

	b.pageTable[newID] = frameID
	b.replacer.Pin(frameID)

	return &f.page, true
}

// DeletePage instructs the disk manager to free pageID. Returns true
// if pageID is not resident (nothing to do) or was successfully
// removed; false if pageID is resident and still pinned.
func (b *BufferPoolManager) DeletePage(pageID util.PageID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	frameID, ok := b.pageTable[pageID]
	if !ok {
		return true
	}

	f := &b.frames[frameID]
	if f.pinCount > 0 {
		return false
	}

	if err := b.disk.DeallocatePage(pageID); err != nil {
		b.logger.WithError(err).WithField("page_id", pageID).Error("delete_page: disk deallocation failed")
		return false
	}

	b.replacer.Pin(frameID) // removes it from the evictable set; no-op if absent
	delete(b.pageTable, pageID)
	f.reset()
	b.freeList = append(b.freeList, frameID)

	return true
}

// FlushAllPages writes every resident frame's bytes to disk and clears
// its dirty bit, holding the manager's lock throughout.
func (b *BufferPoolManager) FlushAllPages() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.frames {
		f := &b.frames[i]
		if f.page.Header.PageID == util.InvalidPageID {
			continue
		}
		if err := b.disk.WritePage(&f.page); err != nil {
			b.logger.WithError(err).WithField("page_id", f.page.Header.PageID).Error("flush_all_pages: disk write failed")
			continue
		}
		f.dirty = false
	}
}

// targetFrame picks a frame to (re)use: the free list first, else a
// replacer victim. ok is false if neither yields one. The free list is
// taken from its tail, so the most recently freed frame is reused
// first; it is not consumed in first-in, first-out order.
func (b *BufferPoolManager) targetFrame() (util.FrameID, bool) {
	if n := len(b.freeList); n > 0 {
		id := b.freeList[n-1]
		b.freeList = b.freeList[:n-1]
		return id, true
	}
	return b.replacer.Victim()
}

// evict prepares frameID for reuse: writes back its current occupant
// if dirty, and removes any stale page-table mapping. A no-op on a
// frame that was already empty (fresh from the free list).
func (b *BufferPoolManager) evict(frameID util.FrameID) error {
	f := &b.frames[frameID]
	if f.page.Header.PageID == util.InvalidPageID {
		return nil
	}

	if f.dirty {
		if err := b.disk.WritePage(&f.page); err != nil {
			return err
		}
		f.dirty = false
	}

	delete(b.pageTable, f.page.Header.PageID)
	return nil
}

// releaseFrame abandons frameID after a failed fetch/new attempt,
// returning it to the free list. Any stale page-table mapping for its
// previous occupant is dropped along with it, so the frame never ends
// up in both the free list and the page table at once.
func (b *BufferPoolManager) releaseFrame(frameID util.FrameID) {
	f := &b.frames[frameID]
	if id := f.page.Header.PageID; id != util.InvalidPageID {
		if mapped, ok := b.pageTable[id]; ok && mapped == frameID {
			delete(b.pageTable, id)
		}
	}
	f.reset()
	b.freeList = append(b.freeList, frameID)
}
