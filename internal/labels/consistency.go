package labels

import (
	"errors"
	"fmt"
)

var (
	// ErrShapeMismatch is returned when two arrays that must align do not.
	ErrShapeMismatch = errors.New("shape mismatch")
	// ErrDimensionality is returned for arrays with the wrong number of axes.
	ErrDimensionality = errors.New("wrong number of dimensions")
	// ErrNegativeLabel is returned when a label matrix holds a negative value.
	ErrNegativeLabel = errors.New("negative label")
	// ErrLabelRange is returned for a value that is not a representable
	// identifier, such as NaN or one above the int32 range.
	ErrLabelRange = errors.New("label out of range")
)

type namedMatrix struct {
	name string
	l    *Labels
}

// CheckConsistency verifies the three matrices of a segmentation agree.
// Any argument may be nil, in which case it is skipped. Present matrices
// must be non-negative and exactly 2-D, and every present pair must share
// a shape. The first violation found is returned.
func CheckConsistency(segmented, unedited, smallRemoved *Labels) error {
	all := []namedMatrix{
		{"segmented", segmented},
		{"unedited segmented", unedited},
		{"small removed segmented", smallRemoved},
	}
	present := make([]namedMatrix, 0, len(all))
	for _, m := range all {
		if m.l != nil {
			present = append(present, m)
		}
	}

	for _, m := range present {
		if at, v, ok := firstNegative(m.l); ok {
			return fmt.Errorf("%w: %s label matrix holds %d at flat index %d", ErrNegativeLabel, m.name, v, at)
		}
	}
	for _, m := range present {
		if m.l.NDim() != 2 {
			return fmt.Errorf("%w: %s label matrix must have two dimensions, has %d", ErrDimensionality, m.name, m.l.NDim())
		}
	}
	for i := 0; i < len(present); i++ {
		for j := i + 1; j < len(present); j++ {
			a, b := present[i], present[j]
			if !SameShape(a.l.Shape, b.l.Shape) {
				return fmt.Errorf("%w: %s %s and %s %s shapes differ",
					ErrShapeMismatch, a.name, ShapeString(a.l.Shape), b.name, ShapeString(b.l.Shape))
			}
		}
	}
	return nil
}

func firstNegative(l *Labels) (int, int32, bool) {
	for i, v := range l.Data {
		if v < 0 {
			return i, v, true
		}
	}
	return 0, 0, false
}
