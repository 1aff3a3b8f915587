package objects

import (
	"github.com/banshee-data/cellmeasure/internal/labels"
)

// Objects is one segmentation result held at three editing stages.
//
// Each matrix is stored in its downsampled encoding and replaced
// wholesale. Readers always receive a fresh copy.
type Objects struct {
	segmented    *labels.Compact
	unedited     *labels.Compact
	smallRemoved *labels.Compact

	// ParentImageName is the image the segmentation was derived from,
	// empty when the objects came from another object set.
	ParentImageName string
}

// New returns an empty entity.
func New() *Objects {
	return &Objects{}
}

// FromSegmented returns an entity whose segmented matrix is l.
func FromSegmented(l *labels.Labels) (*Objects, error) {
	o := New()
	if err := o.SetSegmented(l); err != nil {
		return nil, err
	}
	return o, nil
}

func expand(c *labels.Compact) *labels.Labels {
	if c == nil {
		return nil
	}
	return c.Expand()
}

// SetSegmented replaces the final label matrix. The entity is unchanged
// if l is inconsistent with the other stages.
func (o *Objects) SetSegmented(l *labels.Labels) error {
	if err := labels.CheckConsistency(l, expand(o.unedited), expand(o.smallRemoved)); err != nil {
		return err
	}
	o.segmented = compact(l)
	return nil
}

// SetUnedited replaces the matrix as it was before any filtering or edits.
func (o *Objects) SetUnedited(l *labels.Labels) error {
	if err := labels.CheckConsistency(expand(o.segmented), l, expand(o.smallRemoved)); err != nil {
		return err
	}
	o.unedited = compact(l)
	return nil
}

// SetSmallRemoved replaces the matrix with only small objects filtered.
func (o *Objects) SetSmallRemoved(l *labels.Labels) error {
	if err := labels.CheckConsistency(expand(o.segmented), expand(o.unedited), l); err != nil {
		return err
	}
	o.smallRemoved = compact(l)
	return nil
}

func compact(l *labels.Labels) *labels.Compact {
	if l == nil {
		return nil
	}
	return labels.Downsample(l)
}

// HasSegmented reports whether the final matrix has been set.
func (o *Objects) HasSegmented() bool { return o.segmented != nil }

// HasUnedited reports whether an unedited matrix was set explicitly.
func (o *Objects) HasUnedited() bool { return o.unedited != nil }

// HasSmallRemoved reports whether a small-removed matrix was set explicitly.
func (o *Objects) HasSmallRemoved() bool { return o.smallRemoved != nil }

// Segmented returns a copy of the final label matrix, or nil if unset.
func (o *Objects) Segmented() *labels.Labels {
	return expand(o.segmented)
}

// UneditedSegmented returns the pre-edit matrix, falling back to the
// segmented matrix when none was recorded.
func (o *Objects) UneditedSegmented() *labels.Labels {
	if o.unedited != nil {
		return o.unedited.Expand()
	}
	return o.Segmented()
}

// SmallRemovedSegmented returns the small-removed matrix, falling back
// to the unedited one when none was recorded.
func (o *Objects) SmallRemovedSegmented() *labels.Labels {
	if o.smallRemoved != nil {
		return o.smallRemoved.Expand()
	}
	return o.UneditedSegmented()
}

// DType returns the storage width of the segmented matrix.
func (o *Objects) DType() labels.DType {
	if o.segmented == nil {
		return 0
	}
	return o.segmented.DType
}

// Shape returns the shape of the segmented matrix.
func (o *Objects) Shape() []int {
	if o.segmented == nil {
		return nil
	}
	return append([]int(nil), o.segmented.Shape...)
}

// Indices returns the object identifiers present, ascending.
func (o *Objects) Indices() []int32 {
	if o.segmented == nil {
		return nil
	}
	return labels.Indices(o.segmented.Expand())
}

// Count returns the number of distinct objects.
func (o *Objects) Count() int {
	return len(o.Indices())
}

// RelateChildren maps each object in children onto the object in o it
// overlaps most. When the two segmentations differ in size the parent
// matrix is reconciled to the children's shape first; pixels outside the
// parent's extent count as background. The parent rows always cover every
// object in o, including those cropped away.
func (o *Objects) RelateChildren(children *Objects) (*labels.Relationship, error) {
	parent := o.Segmented()
	child := children.Segmented()
	if parent == nil || child == nil {
		return nil, ErrNoSegmentation
	}
	parentLabels := labels.Indices(parent)
	if !labels.SameShape(parent.Shape, child.Shape) {
		resized, _, err := labels.ResizeToMatch(child, parent)
		if err != nil {
			return nil, err
		}
		parent = resized
	}
	return labels.RelateWithin(child, parent, parentLabels)
}
