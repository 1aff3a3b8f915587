package images

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/cellmeasure/internal/labels"
)

func TestImageSet(t *testing.T) {
	t.Parallel()

	set := NewImageSet()
	img := labels.New[float64](30, 30)
	require.NoError(t, set.Add("DNA", img))
	require.NoError(t, set.Add("Actin", labels.New[float64](30, 30, 3)))
	assert.Error(t, set.Add("", img))
	assert.Error(t, set.Add("Nil", nil))

	got, err := set.Get("DNA")
	require.NoError(t, err)
	assert.Same(t, img, got)

	_, err = set.Get("GFP")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, []string{"Actin", "DNA"}, set.Names())
}
