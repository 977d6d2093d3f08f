package page

import (
	util "github.com/bietkhonhungvandi212/bufferpool/internal/utils"
)

// CreateTestPage builds a Page with the given id and data, for use in
// tests across packages.
func CreateTestPage(pageID util.PageID, data []byte) *Page {
	p := &Page{Header: PageHeader{PageID: pageID}}
	if len(data) > len(p.Data) {
		data = data[:len(p.Data)]
	}
	copy(p.Data[:], data)
	return p
}
