package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssertNoError(t *testing.T) {
	t.Parallel()
	AssertNoError(t, nil)
}

func TestPaintDisc(t *testing.T) {
	t.Parallel()

	l := TwoDiscs()

	var ones, twos int
	for _, v := range l.Data {
		switch v {
		case 1:
			ones++
		case 2:
			twos++
		}
	}
	// Lattice points with i*i + j*j <= 25 and <= 16.
	assert.Equal(t, 81, ones)
	assert.Equal(t, 49, twos)
	assert.Equal(t, int32(1), l.At(15, 7))
	assert.Equal(t, int32(2), l.At(15, 22))
	assert.Equal(t, int32(0), l.At(15, 15))
}

func TestEnclosingDiscCoversChildren(t *testing.T) {
	t.Parallel()

	children := TwoDiscs()
	parent := EnclosingDisc()
	for i, v := range children.Data {
		if v > 0 {
			assert.Equal(t, int32(1), parent.Data[i], "child pixel %d outside parent", i)
		}
	}
}
