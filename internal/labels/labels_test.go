package labels

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labelsOf(t *testing.T, data []int32, shape ...int) *Labels {
	t.Helper()
	l, err := FromSlice(data, shape...)
	require.NoError(t, err)
	return l
}

// =============================================================================
// Downsample
// =============================================================================

func TestMinimalDType_Boundaries(t *testing.T) {
	t.Parallel()

	cases := []struct {
		max  int32
		want DType
	}{
		{0, Int8},
		{1, Int8},
		{127, Int8},
		{128, Int16},
		{32767, Int16},
		{32768, Int32},
		{1 << 30, Int32},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, MinimalDType(tc.max), "max=%d", tc.max)
	}
}

func TestDownsample_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, max := range []int32{127, 128, 32767, 32768} {
		l := labelsOf(t, []int32{0, 1, max, 3}, 2, 2)
		c := Downsample(l)
		assert.Equal(t, MinimalDType(max), c.DType, "max=%d", max)
		assert.Equal(t, 4, c.Len())

		back := c.Expand()
		if diff := cmp.Diff(l, back); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestDownsample_DoesNotRenumber(t *testing.T) {
	t.Parallel()

	l := labelsOf(t, []int32{0, 5, 5, 90}, 2, 2)
	c := Downsample(l)
	assert.Equal(t, Int8, c.DType)
	assert.Equal(t, []int32{0, 5, 5, 90}, c.Expand().Data)
}

func TestDownsample_EmptyMatrix(t *testing.T) {
	t.Parallel()

	c := Downsample(New[int32](0, 0))
	assert.Equal(t, Int8, c.DType)
	assert.Equal(t, 0, c.Len())
}

func TestDType_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "int8", Int8.String())
	assert.Equal(t, "int16", Int16.String())
	assert.Equal(t, "int32", Int32.String())
	assert.Equal(t, 16, Int16.Bits())
}

// =============================================================================
// CheckConsistency
// =============================================================================

func TestCheckConsistency_AllNil(t *testing.T) {
	t.Parallel()
	assert.NoError(t, CheckConsistency(nil, nil, nil))
}

func TestCheckConsistency_Consistent(t *testing.T) {
	t.Parallel()

	a := New[int32](4, 5)
	assert.NoError(t, CheckConsistency(a, a.Clone(), a.Clone()))
	assert.NoError(t, CheckConsistency(a, nil, a.Clone()))
}

func TestCheckConsistency_ShapeMismatch(t *testing.T) {
	t.Parallel()

	big := New[int32](30, 30)
	small := New[int32](20, 30)

	cases := []struct {
		name                   string
		seg, unedited, removed *Labels
		wantIn                 []string
	}{
		{"segmented vs unedited", big, small, nil, []string{"segmented (30, 30)", "unedited segmented (20, 30)"}},
		{"segmented vs small removed", big, nil, small, []string{"segmented (30, 30)", "small removed segmented (20, 30)"}},
		{"unedited vs small removed", nil, big, small, []string{"unedited segmented (30, 30)", "small removed segmented (20, 30)"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckConsistency(tc.seg, tc.unedited, tc.removed)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrShapeMismatch))
			for _, s := range tc.wantIn {
				assert.Contains(t, err.Error(), s)
			}
		})
	}
}

func TestCheckConsistency_Dimensionality(t *testing.T) {
	t.Parallel()

	err := CheckConsistency(New[int32](3, 3, 1), nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDimensionality)
	assert.Contains(t, err.Error(), "has 3")

	err = CheckConsistency(nil, New[int32](9), nil)
	assert.ErrorIs(t, err, ErrDimensionality)
}

func TestCheckConsistency_Negative(t *testing.T) {
	t.Parallel()

	l := labelsOf(t, []int32{0, 1, -2, 3}, 2, 2)
	err := CheckConsistency(nil, nil, l)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNegativeLabel)
	assert.Contains(t, err.Error(), "small removed segmented")
}

// =============================================================================
// CropToCommon
// =============================================================================

func TestCropToCommon_2D(t *testing.T) {
	t.Parallel()

	l := New[int32](10, 8)
	img := New[float64](6, 12)
	for i := range img.Data {
		img.Data[i] = float64(i)
	}

	cl, ci, err := CropToCommon(l, img)
	require.NoError(t, err)
	assert.Equal(t, []int{6, 8}, cl.Shape)
	assert.Equal(t, []int{6, 8}, ci.Shape)
	assert.Equal(t, img.At(5, 7), ci.At(5, 7))
	assert.Equal(t, img.At(2, 3), ci.At(2, 3))
}

func TestCropToCommon_MultichannelPreservesChannels(t *testing.T) {
	t.Parallel()

	l := New[int32](5, 9)
	img := New[float64](7, 4, 3)
	img.Set(42, 4, 3, 2)

	cl, ci, err := CropToCommon(l, img)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 4}, cl.Shape)
	assert.Equal(t, []int{5, 4, 3}, ci.Shape)
	assert.Equal(t, 42.0, ci.At(4, 3, 2))
}

func TestCropToCommon_Volume(t *testing.T) {
	t.Parallel()

	l := New[int32](4, 6, 8)
	l.Set(7, 1, 2, 3)
	img := New[float64](3, 10, 5, 2)

	cl, ci, err := CropToCommon(l, img)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 6, 5}, cl.Shape)
	assert.Equal(t, []int{3, 6, 5, 2}, ci.Shape)
	assert.Equal(t, int32(7), cl.At(1, 2, 3))

	_, _, err = CropToCommon(l, New[float64](3, 3))
	assert.ErrorIs(t, err, ErrDimensionality)
}

// =============================================================================
// ResizeToMatch
// =============================================================================

func TestResizeToMatch_SameShapeReturnsInput(t *testing.T) {
	t.Parallel()

	l := New[int32](4, 4)
	sec := New[float64](4, 4)
	out, mask, err := ResizeToMatch(l, sec)
	require.NoError(t, err)
	assert.Same(t, sec, out)
	for _, v := range mask.Data {
		assert.True(t, v)
	}
}

func TestResizeToMatch_LargerIsCropped(t *testing.T) {
	t.Parallel()

	l := New[int32](3, 4)
	sec := New[int32](5, 6)
	for i := range sec.Data {
		sec.Data[i] = int32(i)
	}

	out, mask, err := ResizeToMatch(l, sec)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4}, out.Shape)
	assert.Equal(t, []int{3, 4}, mask.Shape)
	assert.Equal(t, sec.At(2, 3), out.At(2, 3))
	for _, v := range mask.Data {
		assert.True(t, v)
	}

	out.Set(-1, 0, 0)
	assert.Equal(t, int32(0), sec.At(0, 0), "crop must not alias the input")
}

func TestResizeToMatch_SmallerIsPadded(t *testing.T) {
	t.Parallel()

	l := New[int32](4, 4)
	sec := Filled(2.5, 2, 6, 3)

	out, mask, err := ResizeToMatch(l, sec)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 4, 3}, out.Shape)
	assert.Equal(t, []int{4, 4}, mask.Shape)

	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			inside := r < 2
			assert.Equal(t, inside, mask.At(r, c), "mask at (%d,%d)", r, c)
			want := 0.0
			if inside {
				want = 2.5
			}
			for ch := 0; ch < 3; ch++ {
				assert.Equal(t, want, out.At(r, c, ch))
			}
		}
	}

	out.Set(9, 0, 0, 0)
	assert.Equal(t, 2.5, sec.At(0, 0, 0))
}

func TestResizeToMatch_RejectsOneDimensional(t *testing.T) {
	t.Parallel()

	_, _, err := ResizeToMatch(New[int32](4, 4), New[float64](4))
	assert.ErrorIs(t, err, ErrDimensionality)
}

// =============================================================================
// Indices / Relabel / Centroids / Relate
// =============================================================================

func TestIndicesAndRelabel(t *testing.T) {
	t.Parallel()

	l := labelsOf(t, []int32{0, 9, 4, 4, 0, 12}, 2, 3)
	assert.Equal(t, []int32{4, 9, 12}, Indices(l))

	r := Relabel(l)
	assert.Equal(t, []int32{0, 2, 1, 1, 0, 3}, r.Data)
	assert.Equal(t, []int32{0, 9, 4, 4, 0, 12}, l.Data)
}

func TestCentroids_2D(t *testing.T) {
	t.Parallel()

	l := labelsOf(t, []int32{
		1, 1, 0, 0,
		1, 1, 0, 3,
		0, 0, 0, 3,
	}, 3, 4)

	got, err := Centroids(l)
	require.NoError(t, err)
	want := []Centroid{
		{Label: 1, X: 0.5, Y: 0.5, Z: 0, Area: 4},
		{Label: 3, X: 3, Y: 1.5, Z: 0, Area: 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("centroids mismatch (-want +got):\n%s", diff)
	}
}

func TestCentroids_Volume(t *testing.T) {
	t.Parallel()

	l := New[int32](3, 2, 2)
	l.Set(5, 0, 0, 0)
	l.Set(5, 2, 1, 1)

	got, err := Centroids(l)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, Centroid{Label: 5, X: 0.5, Y: 0.5, Z: 1, Area: 2}, got[0])
}

func TestCentroids_Errors(t *testing.T) {
	t.Parallel()

	_, err := Centroids(New[int32](5))
	assert.ErrorIs(t, err, ErrDimensionality)

	_, err = Centroids(labelsOf(t, []int32{0, -1}, 1, 2))
	assert.ErrorIs(t, err, ErrNegativeLabel)
}

func TestRelate_Majority(t *testing.T) {
	t.Parallel()

	children := labelsOf(t, []int32{
		1, 1, 1, 2,
		1, 0, 2, 2,
		0, 0, 3, 3,
	}, 3, 4)
	parents := labelsOf(t, []int32{
		5, 5, 6, 6,
		5, 0, 6, 6,
		0, 0, 0, 0,
	}, 3, 4)

	rel, err := Relate(children, parents)
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2, 3}, rel.Children)
	assert.Equal(t, []int32{5, 6, 0}, rel.Parents)
	assert.Equal(t, []int32{5, 6}, rel.ParentLabels)
	assert.Equal(t, []int{1, 1}, rel.ChildCounts)
}

func TestRelate_TieMeansNoParent(t *testing.T) {
	t.Parallel()

	children := labelsOf(t, []int32{1, 1, 1, 1}, 1, 4)
	parents := labelsOf(t, []int32{1, 1, 2, 2}, 1, 4)

	rel, err := Relate(children, parents)
	require.NoError(t, err)
	assert.Equal(t, []int32{0}, rel.Parents)
	assert.Equal(t, []int{0, 0}, rel.ChildCounts)
}

func TestRelate_BackgroundDoesNotCompete(t *testing.T) {
	t.Parallel()

	// Three of four child pixels sit on background; the single parent
	// pixel still wins.
	children := labelsOf(t, []int32{1, 1, 1, 1}, 2, 2)
	parents := labelsOf(t, []int32{0, 0, 0, 4}, 2, 2)

	rel, err := Relate(children, parents)
	require.NoError(t, err)
	assert.Equal(t, []int32{4}, rel.Parents)
	assert.Equal(t, []int{1}, rel.ChildCounts)
}

func TestRelateWithin_KeepsParentsOutsideChildren(t *testing.T) {
	t.Parallel()

	children := labelsOf(t, []int32{1, 1, 0, 0}, 1, 4)
	parents := labelsOf(t, []int32{2, 2, 0, 0}, 1, 4)

	rel, err := RelateWithin(children, parents, []int32{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []int32{2}, rel.Parents)
	assert.Equal(t, []int32{1, 2}, rel.ParentLabels)
	assert.Equal(t, []int{0, 1}, rel.ChildCounts)

	rel, err = RelateWithin(children, parents, nil)
	require.NoError(t, err)
	assert.Equal(t, []int32{2}, rel.ParentLabels)
	assert.Equal(t, []int{1}, rel.ChildCounts)
}

func TestRelate_ShapeMismatch(t *testing.T) {
	t.Parallel()

	_, err := Relate(New[int32](2, 2), New[int32](2, 3))
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestShapeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "(30, 30)", ShapeString([]int{30, 30}))
	assert.Equal(t, "(4,)", ShapeString([]int{4}))
	assert.Equal(t, "()", ShapeString(nil))
}
