// Package testutil provides shared test utilities and fixtures.
//
// This package centralises the label-matrix scenes used across the
// labels, objects, module and pipeline tests so every package measures
// the same geometry.
package testutil

import (
	"testing"

	"github.com/banshee-data/cellmeasure/internal/labels"
)

// SceneSize is the edge length of the square test scenes.
const SceneSize = 30

// PaintDisc sets every pixel of l within squared radius r2 of (row, col)
// to value. The test is i*i + j*j <= r2 over integer offsets.
func PaintDisc(l *labels.Labels, row, col, r2 int, value int32) {
	rows, cols := l.Shape[0], l.Shape[1]
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			i, j := r-row, c-col
			if i*i+j*j <= r2 {
				l.Data[r*cols+c] = value
			}
		}
	}
}

// TwoDiscs returns the 30x30 scene with object 1 centred at (15, 7),
// radius 5, and object 2 centred at (15, 22), radius 4.
func TwoDiscs() *labels.Labels {
	l := labels.New[int32](SceneSize, SceneSize)
	PaintDisc(l, 15, 7, 25, 1)
	PaintDisc(l, 15, 22, 16, 2)
	return l
}

// EnclosingDisc returns the 30x30 parent scene: a single object of
// radius 14 centred at (15, 15) that contains both TwoDiscs objects.
func EnclosingDisc() *labels.Labels {
	l := labels.New[int32](SceneSize, SceneSize)
	PaintDisc(l, 15, 15, 196, 1)
	return l
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}
