// Package catalog implements the schema-adaptive metadata extractor: it
// opens a single device's photo-metadata SQLite file, probes the
// (device-specific) table and column names, and loads the album/photo graph.
package catalog

import "errors"

var (
	// ErrNotFound is returned when the database file does not exist or is
	// unreachable.
	ErrNotFound = errors.New("catalog: database file not found")
	// ErrDatabaseOpen is returned when the SQLite driver fails to open the
	// file.
	ErrDatabaseOpen = errors.New("catalog: failed to open database")
	// ErrSchemaUnknown is returned when the assets table, or one of the two
	// foreign-key columns, cannot be identified.
	ErrSchemaUnknown = errors.New("catalog: unable to determine database schema")
	// ErrSchemaAmbiguous is returned when more than one assets-table
	// candidate is found.
	ErrSchemaAmbiguous = errors.New("catalog: database schema is ambiguous")
	// ErrAlbumNotFound is returned by GetAlbumByName when no album with the
	// given name exists.
	ErrAlbumNotFound = errors.New("catalog: album not found")
)
