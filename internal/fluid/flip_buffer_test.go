package fluid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlipBuffer(t *testing.T) {
	fb := NewFlipBuffer("a", "b")
	assert.Equal(t, "a", fb.Front())
	assert.Equal(t, "b", fb.Back())

	fb.Flip()
	assert.Equal(t, "b", fb.Front())
	assert.Equal(t, "a", fb.Back())

	fb.Flip()
	assert.Equal(t, "a", fb.Front(), "two flips restore the starting roles")
	assert.Equal(t, "b", fb.Back())

	x, y := fb.Both()
	assert.Equal(t, "a", x)
	assert.Equal(t, "b", y)
}
