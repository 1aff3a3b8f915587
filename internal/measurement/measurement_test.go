package measurement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatureNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Location_Center_X", LocationCenterX)
	assert.Equal(t, "Location_Center_Y", LocationCenterY)
	assert.Equal(t, "Location_Center_Z", LocationCenterZ)
	assert.Equal(t, "Number_Object_Number", NumberObjectNumber)
	assert.Equal(t, "Count_Nuclei", CountFeature("Nuclei"))
	assert.Equal(t, "Parent_Cells", ParentFeature("Cells"))
	assert.Equal(t, "Children_Nuclei_Count", ChildrenCountFeature("Nuclei"))

	cat, rest := SplitFeature(ChildrenCountFeature("Nuclei"))
	assert.Equal(t, CategoryChildren, cat)
	assert.Equal(t, "Nuclei_Count", rest)
}

func TestMemoryStore_WriteRead(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	assert.Equal(t, 1, s.Scene())

	in := []float64{7, 22}
	require.NoError(t, s.Write("Nuclei", LocationCenterX, in))
	in[0] = -1

	got, err := s.Read("Nuclei", LocationCenterX)
	require.NoError(t, err)
	assert.Equal(t, []float64{7, 22}, got)

	got[1] = -1
	again, err := s.Read("Nuclei", LocationCenterX)
	require.NoError(t, err)
	assert.Equal(t, []float64{7, 22}, again)

	assert.True(t, s.Has("Nuclei", LocationCenterX))
	assert.False(t, s.Has("Nuclei", LocationCenterY))

	_, err = s.Read("Nuclei", LocationCenterY)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_EmptyColumnIsPresent(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	require.NoError(t, s.Write("Nuclei", NumberObjectNumber, nil))
	assert.True(t, s.Has("Nuclei", NumberObjectNumber))
	got, err := s.Read("Nuclei", NumberObjectNumber)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemoryStore_AppendOnlyPerScene(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	require.NoError(t, s.Write(Image, CountFeature("Nuclei"), []float64{2}))
	err := s.Write(Image, CountFeature("Nuclei"), []float64{3})
	assert.ErrorIs(t, err, ErrDuplicateWrite)

	next, err := s.NextScene()
	require.NoError(t, err)
	assert.Equal(t, 2, next)
	assert.False(t, s.Has(Image, CountFeature("Nuclei")))
	require.NoError(t, s.Write(Image, CountFeature("Nuclei"), []float64{3}))

	first, err := s.ReadScene(1, Image, CountFeature("Nuclei"))
	require.NoError(t, err)
	assert.Equal(t, []float64{2}, first)
}

func TestMemoryStore_ImageLevelSingleValue(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	assert.ErrorIs(t, s.Write(Image, CountFeature("Nuclei"), []float64{1, 2}), ErrImageValueCount)
	assert.ErrorIs(t, s.Write(Image, CountFeature("Nuclei"), nil), ErrImageValueCount)
}

func TestMemoryStore_Listing(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	require.NoError(t, s.Write("Nuclei", LocationCenterY, []float64{1}))
	require.NoError(t, s.Write("Nuclei", LocationCenterX, []float64{1}))
	require.NoError(t, s.Write(Image, CountFeature("Nuclei"), []float64{1}))

	assert.Equal(t, []string{LocationCenterX, LocationCenterY}, s.Features("Nuclei"))
	assert.Equal(t, []string{Image, "Nuclei"}, s.Entities())

	s.Clear()
	assert.Equal(t, 1, s.Scene())
	assert.Empty(t, s.Entities())
}
