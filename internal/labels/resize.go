package labels

import "fmt"

// CropToCommon crops l and img to the smallest extent they share along
// each spatial axis, anchored at the origin. l has 2 spatial axes, or 3
// for a volume; img has the same spatial axes plus an optional trailing
// channel axis, which is kept whole. Both results are copies.
func CropToCommon(l *Labels, img *Image) (*Labels, *Image, error) {
	spatial := l.NDim()
	if spatial != 2 && spatial != 3 {
		return nil, nil, fmt.Errorf("%w: labels must be 2-D or 3-D, got shape %s", ErrDimensionality, ShapeString(l.Shape))
	}
	if img.NDim() != spatial && img.NDim() != spatial+1 {
		return nil, nil, fmt.Errorf("%w: image shape %s does not match %d-D labels %s",
			ErrDimensionality, ShapeString(img.Shape), spatial, ShapeString(l.Shape))
	}

	extent := make([]int, spatial)
	for i := range extent {
		extent[i] = min(l.Shape[i], img.Shape[i])
	}
	return Crop(l, extent), Crop(img, extent), nil
}

// ResizeToMatch sizes secondary to the first two axes of l.
//
// It returns the resized array and a mask over l's two spatial axes that
// is false where values were fabricated. When the spatial shapes already
// match, secondary itself is returned. Otherwise the result is a copy:
// cropped when secondary covers l, zero-padded over the uncovered region
// when it does not. Trailing axes of secondary (channels) are preserved.
func ResizeToMatch[T any](l *Labels, secondary *Array[T]) (*Array[T], *Mask, error) {
	if l.NDim() < 2 {
		return nil, nil, fmt.Errorf("%w: labels shape %s has fewer than two axes", ErrDimensionality, ShapeString(l.Shape))
	}
	if secondary.NDim() < 2 {
		return nil, nil, fmt.Errorf("%w: secondary shape %s has fewer than two axes", ErrDimensionality, ShapeString(secondary.Shape))
	}

	rows, cols := l.Shape[0], l.Shape[1]
	srows, scols := secondary.Shape[0], secondary.Shape[1]

	if rows == srows && cols == scols {
		return secondary, Filled(true, rows, cols), nil
	}
	if rows <= srows && cols <= scols {
		return Crop(secondary, []int{rows, cols}), Filled(true, rows, cols), nil
	}

	shape := append([]int{rows, cols}, secondary.Shape[2:]...)
	out := New[T](shape...)
	iMax, jMax := min(rows, srows), min(cols, scols)
	copyRegion(out, secondary, []int{iMax, jMax})

	mask := New[bool](rows, cols)
	for i := 0; i < iMax; i++ {
		row := mask.Data[i*cols : i*cols+jMax]
		for j := range row {
			row[j] = true
		}
	}
	return out, mask, nil
}
