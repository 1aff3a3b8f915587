// Package objects owns the segmented-object layer of the data model.
//
// Responsibilities: the Objects entity (a segmentation at its segmented,
// unedited and small-removed editing stages) and the ObjectSet registry
// through which pipeline stages share those entities by name.
//
// Dependency rule: objects may depend on labels, never on measurement
// or module code.
package objects
