// Package page defines the on-disk page format read and written by the
// disk manager.
package page

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	util "github.com/bietkhonhungvandi212/bufferpool/internal/utils"
)

// HeaderSize is the size, in bytes, of PageHeader once serialized:
// PageID (8) + Checksum (8).
const HeaderSize = 16

// Page is the unit of data read from and written to disk.
type Page struct {
	Header PageHeader
	Data   [util.PageSize - HeaderSize]byte
}

// PageHeader identifies a page and guards its data against corruption.
type PageHeader struct {
	PageID   util.PageID // 8 bytes
	Checksum uint64      // 8 bytes, xxhash of Data
}

// Serialize packs the page into a PageSize byte slice for writing.
func (p *Page) Serialize() []byte {
	buf := make([]byte, util.PageSize)
	binary.LittleEndian.PutUint64(buf[0:8], uint64(p.Header.PageID))
	binary.LittleEndian.PutUint64(buf[8:16], xxhash.Sum64(p.Data[:]))
	copy(buf[HeaderSize:], p.Data[:])
	return buf
}

// Deserialize unpacks a PageSize byte slice into a Page, validating the
// stored checksum against the data it covers.
func Deserialize(data []byte) (*Page, error) {
	if len(data) != util.PageSize {
		return nil, util.ErrPageOutOfBounds
	}

	p := &Page{
		Header: PageHeader{
			PageID:   util.PageID(binary.LittleEndian.Uint64(data[0:8])),
			Checksum: binary.LittleEndian.Uint64(data[8:16]),
		},
	}
	copy(p.Data[:], data[HeaderSize:])

	if xxhash.Sum64(p.Data[:]) != p.Header.Checksum {
		return nil, util.ErrChecksumMismatch
	}
	return p, nil
}
