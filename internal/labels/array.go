package labels

import (
	"fmt"
	"strconv"
	"strings"
)

// Array is a dense row-major N-dimensional array.
// The last axis varies fastest: for a 2-D array Shape is (rows, cols).
type Array[T any] struct {
	Shape []int
	Data  []T
}

// Labels is a label matrix: 0 is background, positive values are object
// identifiers.
type Labels = Array[int32]

// Image holds pixel intensities. 2-D images may carry a trailing channel axis.
type Image = Array[float64]

// Mask marks valid (true) and fabricated (false) pixels.
type Mask = Array[bool]

// New allocates a zero-filled array. Negative extents panic.
func New[T any](shape ...int) *Array[T] {
	n := 1
	for _, s := range shape {
		if s < 0 {
			panic(fmt.Sprintf("labels: negative extent in shape %v", shape))
		}
		n *= s
	}
	return &Array[T]{
		Shape: append([]int(nil), shape...),
		Data:  make([]T, n),
	}
}

// FromSlice wraps data (without copying) as an array of the given shape.
func FromSlice[T any](data []T, shape ...int) (*Array[T], error) {
	n := 1
	for _, s := range shape {
		if s < 0 {
			return nil, fmt.Errorf("negative extent in shape %s", ShapeString(shape))
		}
		n *= s
	}
	if n != len(data) {
		return nil, fmt.Errorf("shape %s needs %d elements, got %d", ShapeString(shape), n, len(data))
	}
	return &Array[T]{Shape: append([]int(nil), shape...), Data: data}, nil
}

// Filled allocates an array with every element set to v.
func Filled[T any](v T, shape ...int) *Array[T] {
	a := New[T](shape...)
	for i := range a.Data {
		a.Data[i] = v
	}
	return a
}

// NDim returns the number of axes.
func (a *Array[T]) NDim() int { return len(a.Shape) }

// Size returns the number of elements.
func (a *Array[T]) Size() int { return len(a.Data) }

func (a *Array[T]) strides() []int {
	st := make([]int, len(a.Shape))
	acc := 1
	for i := len(a.Shape) - 1; i >= 0; i-- {
		st[i] = acc
		acc *= a.Shape[i]
	}
	return st
}

// Offset converts a full index into a position in Data.
func (a *Array[T]) Offset(idx ...int) int {
	if len(idx) != len(a.Shape) {
		panic(fmt.Sprintf("labels: index %v has %d axes, array has %d", idx, len(idx), len(a.Shape)))
	}
	off := 0
	for i, v := range idx {
		if v < 0 || v >= a.Shape[i] {
			panic(fmt.Sprintf("labels: index %v out of range for shape %s", idx, ShapeString(a.Shape)))
		}
		off = off*a.Shape[i] + v
	}
	return off
}

// At returns the element at idx.
func (a *Array[T]) At(idx ...int) T { return a.Data[a.Offset(idx...)] }

// Set stores v at idx.
func (a *Array[T]) Set(v T, idx ...int) { a.Data[a.Offset(idx...)] = v }

// Clone returns a deep copy.
func (a *Array[T]) Clone() *Array[T] {
	if a == nil {
		return nil
	}
	return &Array[T]{
		Shape: append([]int(nil), a.Shape...),
		Data:  append([]T(nil), a.Data...),
	}
}

// Crop copies the region [0, extent[i]) of each leading axis named by
// extent. Axes beyond len(extent) are copied whole. The result never
// shares memory with a.
func Crop[T any](a *Array[T], extent []int) *Array[T] {
	if len(extent) > a.NDim() {
		panic(fmt.Sprintf("labels: crop extent %v has more axes than shape %s", extent, ShapeString(a.Shape)))
	}
	shape := make([]int, 0, a.NDim())
	for i, e := range extent {
		if e < 0 || e > a.Shape[i] {
			panic(fmt.Sprintf("labels: crop extent %v exceeds shape %s", extent, ShapeString(a.Shape)))
		}
		shape = append(shape, e)
	}
	shape = append(shape, a.Shape[len(extent):]...)
	out := New[T](shape...)
	copyRegion(out, a, extent)
	return out
}

// copyRegion copies src into dst over the leading-axis region given by
// extent. dst and src must agree on every axis after len(extent).
func copyRegion[T any](dst, src *Array[T], extent []int) {
	k := len(extent)
	inner := 1
	for _, s := range src.Shape[k:] {
		inner *= s
	}
	if inner == 0 {
		return
	}
	for _, e := range extent {
		if e == 0 {
			return
		}
	}
	ds, ss := dst.strides(), src.strides()
	idx := make([]int, k)
	for {
		do, so := 0, 0
		for i := 0; i < k; i++ {
			do += idx[i] * ds[i]
			so += idx[i] * ss[i]
		}
		copy(dst.Data[do:do+inner], src.Data[so:so+inner])

		i := k - 1
		for ; i >= 0; i-- {
			idx[i]++
			if idx[i] < extent[i] {
				break
			}
			idx[i] = 0
		}
		if i < 0 {
			return
		}
	}
}

// SameShape reports whether two shapes are identical.
func SameShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ShapeString formats a shape the way error messages print it: "(30, 30)".
func ShapeString(shape []int) string {
	parts := make([]string, len(shape))
	for i, s := range shape {
		parts[i] = strconv.Itoa(s)
	}
	if len(parts) == 1 {
		return "(" + parts[0] + ",)"
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
