// Command arraydb is a small demonstration of the buffer pool manager
// over a real mmap-backed page file.
package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/bietkhonhungvandi212/bufferpool/internal/storage/buffer"
	"github.com/bietkhonhungvandi212/bufferpool/internal/storage/file"
	util "github.com/bietkhonhungvandi212/bufferpool/internal/utils"
)

func main() {
	logger := logrus.New()

	opts := util.DefaultOptions()
	opts.Path = "arraydb.dat"
	if len(os.Args) > 1 {
		opts.Path = os.Args[1]
	}

	fm, err := file.NewFileManager(opts.Path, 16)
	if err != nil {
		logger.WithError(err).Fatal("open page file")
	}
	defer fm.Close()

	replacer := buffer.NewLRUReplacer(opts.BufferPoolSize)
	bpm, err := buffer.NewBufferPoolManager(opts.BufferPoolSize, fm, replacer, nil)
	if err != nil {
		logger.WithError(err).Fatal("create buffer pool manager")
	}

	p, ok := bpm.NewPage()
	if !ok {
		logger.Fatal("new_page: pool exhausted")
	}
	pageID := p.Header.PageID
	copy(p.Data[:], "hello buffer pool manager")

	if !bpm.UnpinPage(pageID, true) {
		logger.Fatal("unpin_page: unexpected pin-count underflow")
	}
	if !bpm.FlushPage(pageID) {
		logger.Fatal("flush_page: page not resident")
	}

	fetched, ok := bpm.FetchPage(pageID)
	if !ok {
		logger.Fatal("fetch_page: pool exhausted")
	}
	logger.WithFields(logrus.Fields{
		"page_id": pageID,
		"data":    string(fetched.Data[:25]),
	}).Info("round-tripped page through the buffer pool")

	bpm.UnpinPage(pageID, false)
	bpm.FlushAllPages()
}
