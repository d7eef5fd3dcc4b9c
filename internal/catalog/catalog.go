// Package catalog maintains a SQLite index of WAD contents, so collections
// of archives can be searched by lump name without re-reading the files.
package catalog

import (
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"
	_ "modernc.org/sqlite"

	"github.com/ernie/doom-tools/internal/wad"
)

const schema = `
CREATE TABLE IF NOT EXISTS wads (
	id         INTEGER PRIMARY KEY,
	path       TEXT NOT NULL UNIQUE,
	magic      TEXT NOT NULL,
	lump_count INTEGER NOT NULL,
	indexed_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS lumps (
	wad_id  INTEGER NOT NULL REFERENCES wads(id) ON DELETE CASCADE,
	idx     INTEGER NOT NULL,
	name    TEXT NOT NULL,
	offset  INTEGER NOT NULL,
	size    INTEGER NOT NULL,
	digest  TEXT NOT NULL,
	PRIMARY KEY (wad_id, idx)
);
CREATE INDEX IF NOT EXISTS lumps_by_name ON lumps(name);
CREATE TABLE IF NOT EXISTS maps (
	wad_id INTEGER NOT NULL REFERENCES wads(id) ON DELETE CASCADE,
	marker TEXT NOT NULL,
	roles  INTEGER NOT NULL,
	PRIMARY KEY (wad_id, marker)
);
`

// Catalog is an open catalog database.
type Catalog struct {
	db     *sql.DB
	logger *zap.Logger
}

// LumpRecord is one indexed lump as returned by queries.
type LumpRecord struct {
	WadPath string
	Index   int
	Name    string
	Offset  int
	Size    int
	Digest  string
}

// WadRecord is one indexed archive.
type WadRecord struct {
	Path      string
	Magic     string
	LumpCount int
	Maps      int
}

// Open opens or creates a catalog database at path.
func Open(path string, logger *zap.Logger) (*Catalog, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	// SQLite keeps foreign keys off unless the connection asks; the
	// schema's ON DELETE CASCADE does nothing without this.
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create catalog schema: %w", err)
	}
	return &Catalog{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Index records an archive's directory and map units, replacing any earlier
// entry for the same path. Lump payloads are digested with BLAKE2b so
// identical content is detectable across archives.
func (c *Catalog) Index(path string, a *wad.Archive) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("begin catalog transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(`DELETE FROM wads WHERE path = ?`, path); err != nil {
		return fmt.Errorf("clear previous index for %s: %w", path, err)
	}

	res, err := tx.Exec(
		`INSERT INTO wads (path, magic, lump_count, indexed_at) VALUES (?, ?, ?, ?)`,
		path, a.Header.Magic, a.Header.LumpCount, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert wad %s: %w", path, err)
	}
	wadID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("wad id for %s: %w", path, err)
	}

	insertLump, err := tx.Prepare(
		`INSERT INTO lumps (wad_id, idx, name, offset, size, digest) VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("prepare lump insert: %w", err)
	}
	defer insertLump.Close()

	for i, e := range a.Entries {
		sum := blake2b.Sum256(a.LumpData(e))
		digest := hex.EncodeToString(sum[:])
		if _, err := insertLump.Exec(wadID, i, e.Name, e.Offset, e.Size, digest); err != nil {
			return fmt.Errorf("insert lump %q: %w", e.Name, err)
		}
	}

	units, _ := a.Maps()
	for _, u := range units {
		if _, err := tx.Exec(
			`INSERT INTO maps (wad_id, marker, roles) VALUES (?, ?, ?)`,
			wadID, u.Marker, len(u.Lumps),
		); err != nil {
			return fmt.Errorf("insert map %q: %w", u.Marker, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit catalog transaction: %w", err)
	}
	c.logger.Info("indexed archive",
		zap.String("path", path),
		zap.Int("lumps", len(a.Entries)),
		zap.Int("maps", len(units)))
	return nil
}

// FindLumps returns every indexed lump with the given name, across all
// archives, in insertion order.
func (c *Catalog) FindLumps(name string) ([]LumpRecord, error) {
	rows, err := c.db.Query(`
		SELECT w.path, l.idx, l.name, l.offset, l.size, l.digest
		FROM lumps l JOIN wads w ON w.id = l.wad_id
		WHERE l.name = ?
		ORDER BY w.id, l.idx`, name)
	if err != nil {
		return nil, fmt.Errorf("query lumps %q: %w", name, err)
	}
	defer rows.Close()

	var records []LumpRecord
	for rows.Next() {
		var r LumpRecord
		if err := rows.Scan(&r.WadPath, &r.Index, &r.Name, &r.Offset, &r.Size, &r.Digest); err != nil {
			return nil, fmt.Errorf("scan lump row: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Wads lists the indexed archives.
func (c *Catalog) Wads() ([]WadRecord, error) {
	rows, err := c.db.Query(`
		SELECT w.path, w.magic, w.lump_count,
		       (SELECT COUNT(*) FROM maps m WHERE m.wad_id = w.id)
		FROM wads w ORDER BY w.id`)
	if err != nil {
		return nil, fmt.Errorf("query wads: %w", err)
	}
	defer rows.Close()

	var records []WadRecord
	for rows.Next() {
		var r WadRecord
		if err := rows.Scan(&r.Path, &r.Magic, &r.LumpCount, &r.Maps); err != nil {
			return nil, fmt.Errorf("scan wad row: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Duplicates returns lump names that appear with identical content in more
// than one archive, with the number of archives sharing each digest.
func (c *Catalog) Duplicates() (map[string]int, error) {
	rows, err := c.db.Query(`
		SELECT name, COUNT(DISTINCT wad_id) AS n
		FROM lumps
		WHERE size > 0
		GROUP BY name, digest
		HAVING n > 1`)
	if err != nil {
		return nil, fmt.Errorf("query duplicates: %w", err)
	}
	defer rows.Close()

	dupes := make(map[string]int)
	for rows.Next() {
		var name string
		var n int
		if err := rows.Scan(&name, &n); err != nil {
			return nil, fmt.Errorf("scan duplicate row: %w", err)
		}
		dupes[name] = n
	}
	return dupes, rows.Err()
}
