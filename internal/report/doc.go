// Package report renders measurements for people: console tables,
// per-feature summaries and centroid scatter charts (HTML and PNG).
//
// Dependency rule: report reads from a measurement.Store and never writes
// to it.
package report
