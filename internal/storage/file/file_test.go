package file

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bietkhonhungvandi212/bufferpool/internal/storage/page"
	util "github.com/bietkhonhungvandi212/bufferpool/internal/utils"
)

func TestNewFileManager(t *testing.T) {
	tests := []struct {
		name          string
		initialPages  int
		expectedError error
		shouldSucceed bool
	}{
		{"valid creation with 1 page", 1, nil, true},
		{"valid creation with 10 pages", 10, nil, true},
		{"invalid negative pages", -1, util.ErrInvalidInitialPages, false},
		{"zero pages", 0, util.ErrInvalidInitialPages, false},
		{"large but valid page count", 1000, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempFile, cleanup := util.CreateTempFile(t)
			defer cleanup()

			fm, err := NewFileManager(tempFile, tt.initialPages)

			if tt.shouldSucceed {
				require.NoError(t, err)
				require.NotNil(t, fm)
				assert.Equal(t, int64(tt.initialPages)*int64(util.PageSize), fm.Size)
				_, statErr := os.Stat(tempFile)
				assert.NoError(t, statErr)
				fm.Close()
				return
			}

			assert.Nil(t, fm)
			assert.ErrorIs(t, err, tt.expectedError)
		})
	}
}

func TestWriteReadPageRoundTrip(t *testing.T) {
	tempFile, cleanup := util.CreateTempFile(t)
	defer cleanup()

	fm, err := NewFileManager(tempFile, 4)
	require.NoError(t, err)
	defer fm.Close()

	p := page.CreateTestPage(util.PageID(2), []byte("round trip data"))
	require.NoError(t, fm.WritePage(p))

	got, err := fm.ReadPage(util.PageID(2))
	require.NoError(t, err)
	assert.Equal(t, p.Header.PageID, got.Header.PageID)
	assert.Equal(t, p.Data, got.Data)
}

func TestReadPageOutOfBounds(t *testing.T) {
	tempFile, cleanup := util.CreateTempFile(t)
	defer cleanup()

	fm, err := NewFileManager(tempFile, 1)
	require.NoError(t, err)
	defer fm.Close()

	_, err = fm.ReadPage(util.PageID(50))
	assert.ErrorIs(t, err, util.ErrPageOutOfBounds)
}

func TestWritePageGrowsMapping(t *testing.T) {
	tempFile, cleanup := util.CreateTempFile(t)
	defer cleanup()

	fm, err := NewFileManager(tempFile, 1)
	require.NoError(t, err)
	defer fm.Close()

	farPage := page.CreateTestPage(util.PageID(20), []byte("far away"))
	require.NoError(t, fm.WritePage(farPage))

	assert.GreaterOrEqual(t, fm.Size, int64(21)*int64(util.PageSize))

	got, err := fm.ReadPage(util.PageID(20))
	require.NoError(t, err)
	assert.Equal(t, farPage.Data, got.Data)
}

func TestAllocateAndDeallocatePage(t *testing.T) {
	tempFile, cleanup := util.CreateTempFile(t)
	defer cleanup()

	fm, err := NewFileManager(tempFile, 2)
	require.NoError(t, err)
	defer fm.Close()

	id1, err := fm.AllocatePage()
	require.NoError(t, err)
	assert.Equal(t, util.PageID(0), id1)

	id2, err := fm.AllocatePage()
	require.NoError(t, err)
	assert.Equal(t, util.PageID(1), id2)

	// Allocated pages must be readable immediately, even unwritten.
	_, err = fm.ReadPage(id1)
	assert.NoError(t, err)

	require.NoError(t, fm.DeallocatePage(id1))

	id3, err := fm.AllocatePage()
	require.NoError(t, err)
	assert.Equal(t, id1, id3, "deallocated id should be reused before a fresh one")
}

func TestCloseUnmapsAndClosesFile(t *testing.T) {
	tempFile, cleanup := util.CreateTempFile(t)
	defer cleanup()

	fm, err := NewFileManager(tempFile, 1)
	require.NoError(t, err)

	assert.NoError(t, fm.Close())
	assert.Nil(t, fm.Data)
	assert.Nil(t, fm.File)
}
