// Package measurement owns the measurement layer of the data model.
//
// Responsibilities: the Store contract (per entity/feature columns of
// float64 values, one row per object per scene), the feature naming
// conventions shared by every component, column descriptors, and the
// in-memory Store used by tests and single-run tools.
//
// Dependency rule: measurement depends on nothing else in this module.
// No SQL/database code is allowed in this package; see storage/sqlite.
package measurement
