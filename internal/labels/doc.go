// Package labels owns the label-matrix layer of the object data model.
//
// Responsibilities: dense N-d arrays, label matrix encoding (Downsample),
// structural invariant checks (CheckConsistency), size reconciliation
// between label matrices and secondary arrays (CropToCommon,
// ResizeToMatch), and the per-object reductions every measurement is
// built on (Centroids, Relate).
// Key types: Array, Labels, Image, Mask, Compact, Relationship.
//
// Dependency rule: this is the leaf package. It never imports objects,
// measurement or module code, and holds no storage or logging.
package labels
