// Package module implements the measurement components that turn a
// segmentation into per-object and per-scene measurements.
//
// Both components share one measurement routine (centroid location,
// object number, image-level count and, when a parent set is bound,
// parent/child lineage). They differ only in the LabelSource that
// produces the output label matrix: ObjectProcessing transforms an
// existing object set, ImageSegmentation segments an image.
package module
