package measurement

import "strings"

// Image is the entity name for whole-scene features. Image-level
// features hold exactly one value per scene.
const Image = "Image"

// Feature categories.
const (
	CategoryLocation = "Location"
	CategoryNumber   = "Number"
	CategoryCount    = "Count"
	CategoryParent   = "Parent"
	CategoryChildren = "Children"
)

// Feature names within a category.
const (
	FeatureCenterX      = "Center_X"
	FeatureCenterY      = "Center_Y"
	FeatureCenterZ      = "Center_Z"
	FeatureObjectNumber = "Object_Number"
)

// Full per-object feature names.
const (
	LocationCenterX    = CategoryLocation + "_" + FeatureCenterX
	LocationCenterY    = CategoryLocation + "_" + FeatureCenterY
	LocationCenterZ    = CategoryLocation + "_" + FeatureCenterZ
	NumberObjectNumber = CategoryNumber + "_" + FeatureObjectNumber
)

// CountFeature names the image-level object count of entity.
func CountFeature(entity string) string {
	return CategoryCount + "_" + entity
}

// ParentFeature names the per-child column holding the identifier of the
// child's object in parent.
func ParentFeature(parent string) string {
	return CategoryParent + "_" + parent
}

// ChildrenCountFeature names the per-parent column counting objects of
// child assigned to each parent.
func ChildrenCountFeature(child string) string {
	return CategoryChildren + "_" + child + "_Count"
}

// SplitFeature splits a feature name into its category and remainder.
func SplitFeature(feature string) (category, rest string) {
	category, rest, _ = strings.Cut(feature, "_")
	return category, rest
}

// ColumnType is the declared value type of a measurement column.
type ColumnType string

const (
	ColumnFloat   ColumnType = "float"
	ColumnInteger ColumnType = "integer"
)

// Column describes one measurement a component contributes.
type Column struct {
	Entity  string
	Feature string
	Type    ColumnType
}
