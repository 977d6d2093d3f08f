package util

// PageID identifies a page in the disk-backed page store. Negative
// values are reserved; InvalidPageID means "no page".
type PageID int64

// InvalidPageID is the sentinel for "no page resident".
const InvalidPageID PageID = -1

// FrameID identifies a slot in the buffer pool's frame array.
type FrameID int

// InvalidFrameID is the sentinel for "no frame".
const InvalidFrameID FrameID = -1

// PageSize is the fixed size, in bytes, of every page on disk.
const PageSize = 4096

// Options configures a database instance built on top of the buffer
// pool manager.
type Options struct {
	Path           string
	PageSize       int
	BufferPoolSize int
	SyncWrites     bool
}

// DefaultOptions returns sane defaults for Options.
func DefaultOptions() Options {
	return Options{
		PageSize:       PageSize,
		BufferPoolSize: 1000, // 4MB default buffer pool
		SyncWrites:     false,
	}
}
