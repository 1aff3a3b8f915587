package labels

import "fmt"

// Relationship is the many-to-one mapping of child objects onto parent
// objects by majority pixel overlap.
//
// Children and Parents are parallel: Parents[i] is the parent assigned to
// Children[i], or 0 when the child has none. ParentLabels lists one row
// per parent object and ChildCounts[i] counts the children assigned to
// ParentLabels[i].
type Relationship struct {
	Children     []int32
	Parents      []int32
	ParentLabels []int32
	ChildCounts  []int
}

// Relate assigns every object in children to the parent object it shares
// the most pixels with. Background pixels in either matrix are ignored.
//
// A child that touches no parent object, or whose best overlap is shared
// equally by two or more parents, gets no parent (0) and is left out of
// every parent's child count.
func Relate(children, parents *Labels) (*Relationship, error) {
	return RelateWithin(children, parents, nil)
}

// RelateWithin is Relate with the parent rows fixed to parentLabels, for
// when parents was cropped from a larger matrix and some parent objects
// fall outside it. Those parents keep their row with a count of 0. A nil
// parentLabels means the identifiers present in parents.
func RelateWithin(children, parents *Labels, parentLabels []int32) (*Relationship, error) {
	if !SameShape(children.Shape, parents.Shape) {
		return nil, fmt.Errorf("%w: children %s and parents %s",
			ErrShapeMismatch, ShapeString(children.Shape), ShapeString(parents.Shape))
	}

	histogram := make(map[int32]map[int32]int)
	for i, c := range children.Data {
		p := parents.Data[i]
		if c <= 0 || p <= 0 {
			continue
		}
		h, ok := histogram[c]
		if !ok {
			h = make(map[int32]int)
			histogram[c] = h
		}
		h[p]++
	}

	rel := &Relationship{
		Children:     Indices(children),
		ParentLabels: parentLabels,
	}
	if rel.ParentLabels == nil {
		rel.ParentLabels = Indices(parents)
	}
	rel.Parents = make([]int32, len(rel.Children))
	for i, c := range rel.Children {
		rel.Parents[i] = majority(histogram[c])
	}

	row := make(map[int32]int, len(rel.ParentLabels))
	for i, p := range rel.ParentLabels {
		row[p] = i
	}
	rel.ChildCounts = make([]int, len(rel.ParentLabels))
	for _, p := range rel.Parents {
		if i, ok := row[p]; ok && p != 0 {
			rel.ChildCounts[i]++
		}
	}
	return rel, nil
}

// majority returns the parent with the strictly largest overlap count,
// or 0 when there is no overlap or the top count is tied.
func majority(counts map[int32]int) int32 {
	var best int32
	bestCount, tied := 0, false
	for p, n := range counts {
		switch {
		case n > bestCount:
			best, bestCount, tied = p, n, false
		case n == bestCount:
			tied = true
		}
	}
	if tied {
		return 0
	}
	return best
}
