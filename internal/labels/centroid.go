package labels

import (
	"fmt"
	"slices"
)

// Centroid is the mean pixel coordinate of one labelled object.
// For 2-D matrices Y is the row, X the column and Z is always 0.
// For volumes the axes are (Z, Y, X).
type Centroid struct {
	Label int32
	X     float64
	Y     float64
	Z     float64
	Area  int
}

type coordSums struct {
	x, y, z float64
	n       int
}

// Indices returns the distinct positive identifiers in l, ascending.
func Indices(l *Labels) []int32 {
	seen := make(map[int32]struct{})
	for _, v := range l.Data {
		if v > 0 {
			seen[v] = struct{}{}
		}
	}
	out := make([]int32, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// Centroids computes the centre of every positive identifier in l,
// ordered by ascending identifier.
func Centroids(l *Labels) ([]Centroid, error) {
	nd := l.NDim()
	if nd != 2 && nd != 3 {
		return nil, fmt.Errorf("%w: centroids need 2-D or 3-D labels, got shape %s", ErrDimensionality, ShapeString(l.Shape))
	}

	var rows, cols int
	if nd == 2 {
		rows, cols = l.Shape[0], l.Shape[1]
	} else {
		rows, cols = l.Shape[1], l.Shape[2]
	}

	sums := make(map[int32]*coordSums)
	plane := rows * cols
	for i, v := range l.Data {
		if v == 0 {
			continue
		}
		if v < 0 {
			return nil, fmt.Errorf("%w: %d at flat index %d", ErrNegativeLabel, v, i)
		}
		s, ok := sums[v]
		if !ok {
			s = &coordSums{}
			sums[v] = s
		}
		rem := i % plane
		s.z += float64(i / plane)
		s.y += float64(rem / cols)
		s.x += float64(rem % cols)
		s.n++
	}

	ids := make([]int32, 0, len(sums))
	for id := range sums {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]Centroid, len(ids))
	for i, id := range ids {
		s := sums[id]
		n := float64(s.n)
		out[i] = Centroid{
			Label: id,
			X:     s.x / n,
			Y:     s.y / n,
			Z:     s.z / n,
			Area:  s.n,
		}
	}
	return out, nil
}
