package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/ewkb"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"librarybox.klederson.com/internal/geo"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// pragmas run on every connection the pool opens.
var pragmas = []string{
	"journal_mode(WAL)",
	"busy_timeout(5000)",
	"synchronous(NORMAL)",
}

// NewSQLite opens a SQLite database at the given path in WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", withPragmas(dsn))
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	if err := db.Ping(); err != nil {
		db.Close() //nolint:errcheck
		return nil, eris.Wrap(err, "sqlite: ping")
	}
	return &SQLiteStore{db: db}, nil
}

// withPragmas appends the pragmas as _pragma DSN parameters, which the
// driver applies to each new connection.
func withPragmas(dsn string) string {
	var b strings.Builder
	b.WriteString(dsn)
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	for _, p := range pragmas {
		b.WriteString(sep)
		b.WriteString("_pragma=")
		b.WriteString(p)
		sep = "&"
	}
	return b.String()
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS box_locations (
	id         TEXT PRIMARY KEY,
	address    TEXT NOT NULL DEFAULT '',
	box_type   TEXT NOT NULL DEFAULT '',
	location   BLOB NOT NULL,
	lat        REAL NOT NULL,
	lng        REAL NOT NULL,
	version    INTEGER NOT NULL DEFAULT 1,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_box_locations_lat_lng ON box_locations(lat, lng);
`

// Migrate creates the schema.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Save(ctx context.Context, rec *Record) error {
	if rec.ID == "" {
		return eris.New("sqlite: record without id")
	}
	loc, err := encodeLocation(rec.Location)
	if err != nil {
		return err
	}
	now := time.Now().UTC()

	if rec.Version == 0 {
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO box_locations (id, address, box_type, location, lat, lng, version, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, 1, ?, ?)
			 ON CONFLICT(id) DO NOTHING`,
			rec.ID, rec.Address, rec.BoxType, loc, rec.Location.Lat, rec.Location.Lng, now, now,
		)
		if err != nil {
			return classify(err, "sqlite: insert record")
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return eris.Wrapf(ErrConflict, "sqlite: insert record %s", rec.ID)
		}
		rec.Version = 1
		rec.CreatedAt = now
		rec.UpdatedAt = now
		zap.L().Debug("sqlite: inserted record", zap.String("id", rec.ID))
		return nil
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE box_locations
		 SET address = ?, box_type = ?, location = ?, lat = ?, lng = ?, version = version + 1, updated_at = ?
		 WHERE id = ? AND version = ?`,
		rec.Address, rec.BoxType, loc, rec.Location.Lat, rec.Location.Lng, now, rec.ID, rec.Version,
	)
	if err != nil {
		return classify(err, "sqlite: update record")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := s.Fetch(ctx, rec.ID); err != nil {
			return err
		}
		return eris.Wrapf(ErrConflict, "sqlite: update record %s at version %d", rec.ID, rec.Version)
	}
	rec.Version++
	rec.UpdatedAt = now
	zap.L().Debug("sqlite: updated record", zap.String("id", rec.ID), zap.Int64("version", rec.Version))
	return nil
}

func (s *SQLiteStore) Fetch(ctx context.Context, id string) (*Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, address, box_type, location, version, created_at, updated_at
		 FROM box_locations WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, eris.Wrapf(ErrNotFound, "sqlite: fetch record %s", id)
	}
	if err != nil {
		return nil, classify(err, "sqlite: fetch record")
	}
	return rec, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, address, box_type, location, version, created_at, updated_at
		 FROM box_locations ORDER BY created_at, id`)
	if err != nil {
		return nil, classify(err, "sqlite: list records")
	}
	defer rows.Close() //nolint:errcheck

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan record")
		}
		out = append(out, *rec)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate records")
}

// ListLocations returns every pinned location in insertion order.
func (s *SQLiteStore) ListLocations(ctx context.Context) ([]geo.Location, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT location FROM box_locations ORDER BY created_at, id`)
	if err != nil {
		return nil, classify(err, "sqlite: list locations")
	}
	defer rows.Close() //nolint:errcheck

	var out []geo.Location
	for rows.Next() {
		var blob []byte
		if err := rows.Scan(&blob); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan location")
		}
		loc, err := decodeLocation(blob)
		if err != nil {
			return nil, err
		}
		out = append(out, loc)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate locations")
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*Record, error) {
	var (
		rec  Record
		blob []byte
	)
	if err := row.Scan(&rec.ID, &rec.Address, &rec.BoxType, &blob, &rec.Version, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	loc, err := decodeLocation(blob)
	if err != nil {
		return nil, err
	}
	rec.Location = loc
	return &rec, nil
}

func encodeLocation(loc geo.Location) ([]byte, error) {
	if !loc.Valid() {
		return nil, eris.Wrapf(geo.ErrInvalidCoordinates, "sqlite: encode %s", loc)
	}
	data, err := ewkb.Marshal(loc.Point(), ewkb.NDR)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: encode location")
	}
	return data, nil
}

func decodeLocation(data []byte) (geo.Location, error) {
	g, err := ewkb.Unmarshal(data)
	if err != nil {
		return geo.Location{}, eris.Wrap(err, "sqlite: decode location")
	}
	p, ok := g.(*geom.Point)
	if !ok {
		return geo.Location{}, eris.Errorf("sqlite: location is %T, not a point", g)
	}
	return geo.FromPoint(p)
}

// classify tags lock contention as transient so callers can report it
// separately from hard failures.
func classify(err error, msg string) error {
	text := err.Error()
	if strings.Contains(text, "database is locked") || strings.Contains(text, "SQLITE_BUSY") {
		return eris.Wrapf(ErrTransient, "%s: %v", msg, err)
	}
	return eris.Wrap(err, msg)
}
