// Package sqlite persists measurements in a SQLite database.
//
// Every scene's columns are kept: a row in measurement_features marks an
// (entity, feature) pair as written, and measurements holds its values in
// object order. NaN values are stored as NULL.
//
// The schema is managed by golang-migrate from migrations embedded in the
// binary, so a database can be created or upgraded without a migrations
// directory on disk.
package sqlite
