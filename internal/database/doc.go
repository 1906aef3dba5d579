// Package database owns the GORM/sqlite bootstrap for the library catalog:
// connection setup, schema migration and default genre seeding.
//
// Entity-specific queries live in the sub-packages (books, catalog, users,
// copies, loans, reservations), one repository per concern.
package database
