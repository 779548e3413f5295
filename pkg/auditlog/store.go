package auditlog

import (
	"database/sql"
	"fmt"

	uuid "github.com/satori/go.uuid"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ZentaChain/erldist/pkg/handshake"
)

// Entry is one row of the handshake audit trail.
type Entry struct {
	ID        string
	PeerName  string
	Flags     uint64
	Creation  uint32
	Timestamp int64
}

// Store is a SQLite-backed handshake audit trail. It implements
// handshake.AuditRecorder, so it can be plugged directly into a
// ClientSideHandshake or ServerSideHandshake's Audit field.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the SQLite database at path and
// ensures its schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("auditlog: open database: %v", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("auditlog: enable WAL mode: %v", err)
	}
	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initSchema() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS handshakes (
		id TEXT PRIMARY KEY,
		peer_name TEXT NOT NULL,
		flags INTEGER NOT NULL,
		creation INTEGER NOT NULL,
		timestamp INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_handshakes_peer ON handshakes(peer_name, timestamp DESC);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("auditlog: create schema: %v", err)
	}
	return nil
}

// RecordHandshake implements handshake.AuditRecorder. Failures are
// discarded without being logged (see the interface's doc comment);
// RecordHandshakeErr exposes the same write with its error for callers
// that want it.
func (s *Store) RecordHandshake(entry handshake.AuditEntry) {
	_ = s.RecordHandshakeErr(entry)
}

// RecordHandshakeErr stores entry and returns any database error.
func (s *Store) RecordHandshakeErr(entry handshake.AuditEntry) error {
	id, err := uuid.NewV4()
	if err != nil {
		return fmt.Errorf("auditlog: generate id: %v", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO handshakes (id, peer_name, flags, creation, timestamp) VALUES (?, ?, ?, ?, ?)`,
		id.String(),
		entry.PeerName,
		uint64(entry.Flags),
		uint32(entry.Creation),
		entry.Timestamp.Unix(),
	)
	if err != nil {
		return fmt.Errorf("auditlog: insert handshake: %v", err)
	}
	return nil
}

// Recent returns the most recent handshakes for peerName, newest first,
// up to limit rows.
func (s *Store) Recent(peerName string, limit int) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT id, peer_name, flags, creation, timestamp FROM handshakes
		 WHERE peer_name = ? ORDER BY timestamp DESC LIMIT ?`,
		peerName, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("auditlog: query recent: %v", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.PeerName, &e.Flags, &e.Creation, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("auditlog: scan row: %v", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
