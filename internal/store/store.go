// Package store persists pinned box locations.
package store

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"librarybox.klederson.com/internal/geo"
)

var (
	// ErrNotFound is returned when a record ID does not exist.
	ErrNotFound = eris.New("store: record not found")
	// ErrConflict is returned when a save races another writer: the ID is
	// already taken on insert, or the stored version moved on update.
	ErrConflict = eris.New("store: record changed on server")
	// ErrTransient marks failures worth retrying later, such as a locked database.
	ErrTransient = eris.New("store: transient failure")
)

// Record is one pinned box.
type Record struct {
	ID        string
	Address   string
	BoxType   string
	Location  geo.Location
	Version   int64 // zero for records never saved
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Merge copies the locally edited fields onto r, keeping r's identity and
// version so the result can be saved over the server copy. Zero fields in
// local are not edits.
func (r *Record) Merge(local *Record) {
	if local.Address != "" {
		r.Address = local.Address
	}
	if local.BoxType != "" {
		r.BoxType = local.BoxType
	}
	if local.Location != (geo.Location{}) {
		r.Location = local.Location
	}
}

// Store is the pin database.
type Store interface {
	// Save inserts a record with Version 0 or updates one whose Version
	// matches the stored copy. On success the record's Version advances.
	Save(ctx context.Context, rec *Record) error
	Fetch(ctx context.Context, id string) (*Record, error)
	List(ctx context.Context) ([]Record, error)
	ListLocations(ctx context.Context) ([]geo.Location, error)
	Close() error
}
