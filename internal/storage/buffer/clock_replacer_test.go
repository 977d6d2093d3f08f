package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	util "github.com/bietkhonhungvandi212/bufferpool/internal/utils"
)

func TestClockReplacerVictimGivesSecondChance(t *testing.T) {
	c := NewClockReplacer(3)
	c.Unpin(util.FrameID(0))
	c.Unpin(util.FrameID(1))
	c.Unpin(util.FrameID(2))
	assert.Equal(t, 3, c.Size())

	victim, ok := c.Victim()
	assert.True(t, ok)
	assert.Equal(t, util.FrameID(0), victim, "first sweep clears every reference bit; second sweep evicts the frame the hand started on")
}

func TestClockReplacerVictimEmpty(t *testing.T) {
	c := NewClockReplacer(2)
	_, ok := c.Victim()
	assert.False(t, ok)
}

func TestClockReplacerPinRemoves(t *testing.T) {
	c := NewClockReplacer(2)
	c.Unpin(util.FrameID(0))
	c.Unpin(util.FrameID(1))

	c.Pin(util.FrameID(0))
	assert.Equal(t, 1, c.Size())

	victim, ok := c.Victim()
	assert.True(t, ok)
	assert.Equal(t, util.FrameID(1), victim)
}

func TestClockReplacerUnpinIdempotent(t *testing.T) {
	c := NewClockReplacer(2)
	c.Unpin(util.FrameID(0))
	c.Unpin(util.FrameID(0))
	assert.Equal(t, 1, c.Size())
}

func TestClockReplacerOutOfRangeIsNoop(t *testing.T) {
	c := NewClockReplacer(2)
	c.Pin(util.FrameID(99))
	c.Unpin(util.FrameID(-1))
	assert.Equal(t, 0, c.Size())
}
