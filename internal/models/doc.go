// Package models defines the value entities of the shelf library catalog.
//
// The package contains two categories of types:
//
// 1. Records: entities registered into a catalog by their callers
//   - [Book] : Descriptive book metadata with checkout state
//   - [Member] : Library member holding an ordered list of book ids
//
// 2. Derived values: produced by catalog operations
//   - [Transaction] : One append-only log entry (checkout, return or release)
//   - [Stats] : Aggregate counts over a catalog
//   - [Result] : Outcome of a mutating operation
//
// Books and members reference each other by id rather than by pointer.
// The owning catalog resolves ids, so neither side owns the other.
package models
