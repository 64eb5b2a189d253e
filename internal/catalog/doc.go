// Package catalog implements the in-memory library catalog.
//
// A [Catalog] owns its books, members and an append-only transaction log.
// Books move through two states:
//
//	Available -> CheckedOut -> Available
//
// Every mutation returns a [models.Result] instead of an error: unknown ids,
// double checkouts and double returns are tolerated and reported, never fatal.
// Advisory notices for the latter two go to the catalog's [log.Logger].
//
// Removing a book or a member detaches any outstanding checkout first and
// records a release transaction, so a book is never left pointing at an
// unregistered member and no member holds an unregistered book.
//
// A Catalog is safe for concurrent use.
package catalog
