package buffer

import util "github.com/bietkhonhungvandi212/bufferpool/internal/utils"

// Replacer tracks which frames are currently evictable and selects a
// victim among them. It operates purely on frame ids; it knows nothing
// about page identity, dirty bits, or the disk manager — that
// bookkeeping belongs to the buffer pool manager.
type Replacer interface {
	// Victim removes and returns the best eviction candidate. ok is
	// false if no frame is currently evictable.
	Victim() (frameID util.FrameID, ok bool)
	// Pin removes frameID from the evictable set, if present. A pinned
	// frame must never be chosen as a victim.
	Pin(frameID util.FrameID)
	// Unpin marks frameID evictable. Idempotent: unpinning an already
	// evictable frame is a no-op.
	Unpin(frameID util.FrameID)
	// Size reports how many frames are currently evictable.
	Size() int
}
