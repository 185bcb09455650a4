// Package store persists save slots in SQLite. Slots hold the JSON payload
// produced by the save package; the pure-Go modernc.org/sqlite driver keeps
// the binary free of CGO.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"imperium/internal/game/mechanics"
)

// SlotKindAuto marks the rolling autosave written every turn; SlotKindManual
// marks player-named saves.
const (
	SlotKindAuto   = "auto"
	SlotKindManual = "manual"
)

// Slot is one stored save. CreatedAt is unix nanoseconds; the sqlite
// driver round-trips integers losslessly where timestamps get mangled.
type Slot struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	Kind      string `db:"kind"`
	Turn      int    `db:"turn"`
	Nation    string `db:"nation"`
	Ironman   bool   `db:"ironman"`
	Payload   string `db:"payload"`
	CreatedAt int64  `db:"created_at"`
}

// Created returns the slot creation time.
func (s *Slot) Created() time.Time {
	return time.Unix(0, s.CreatedAt).UTC()
}

// Store wraps the SQLite connection holding the save slots.
type Store struct {
	db *sqlx.DB
}

// Open opens or creates the slot database at path, creating parent
// directories and running migrations.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("store: create directory %s: %w", dir, err)
		}
	}
	db, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS slots (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		kind TEXT NOT NULL,
		turn INTEGER NOT NULL,
		nation TEXT NOT NULL,
		ironman INTEGER NOT NULL,
		payload TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_slots_kind ON slots(kind);
	`
	_, err := s.db.Exec(schema)
	return err
}

// WriteManual stores a player-named save and returns its slot id. Blocked
// in ironman sessions.
func (s *Store) WriteManual(name, nation string, turn int, ironman bool, payload string) (string, error) {
	if !mechanics.IronmanAllows(ironman, mechanics.OpManualSave, true) {
		return "", fmt.Errorf("store: manual saves are disabled in ironman")
	}
	return s.insert(name, SlotKindManual, nation, turn, ironman, payload)
}

// WriteAuto replaces the rolling autosave for the nation. Permitted in
// every mode.
func (s *Store) WriteAuto(nation string, turn int, ironman bool, payload string) (string, error) {
	if _, err := s.db.Exec(`DELETE FROM slots WHERE kind = ? AND nation = ?`, SlotKindAuto, nation); err != nil {
		return "", fmt.Errorf("store: clear autosave: %w", err)
	}
	return s.insert("autosave", SlotKindAuto, nation, turn, ironman, payload)
}

func (s *Store) insert(name, kind, nation string, turn int, ironman bool, payload string) (string, error) {
	id := uuid.New().String()
	_, err := s.db.Exec(
		`INSERT INTO slots (id, name, kind, turn, nation, ironman, payload, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, name, kind, turn, nation, ironman, payload, time.Now().UnixNano(),
	)
	if err != nil {
		return "", fmt.Errorf("store: insert slot: %w", err)
	}
	return id, nil
}

// Load returns the slot payload by id. Loading a manual slot in an ironman
// session is refused; the autosave is always loadable.
func (s *Store) Load(id string, sessionIronman bool) (*Slot, error) {
	var slot Slot
	if err := s.db.Get(&slot, `SELECT * FROM slots WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("store: load slot %s: %w", id, err)
	}
	op := mechanics.OpReload
	if slot.Kind == SlotKindManual && sessionIronman {
		op = mechanics.OpUndo
	}
	if !mechanics.IronmanAllows(sessionIronman, op, slot.Kind == SlotKindAuto) {
		return nil, fmt.Errorf("store: loading slot %s is not permitted in ironman", id)
	}
	return &slot, nil
}

// Latest returns the most recent slot for the nation, autosave included,
// or nil when none exists.
func (s *Store) Latest(nation string) (*Slot, error) {
	var slot Slot
	err := s.db.Get(&slot,
		`SELECT * FROM slots WHERE nation = ? ORDER BY created_at DESC LIMIT 1`, nation)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: latest slot for %s: %w", nation, err)
	}
	return &slot, nil
}

// List returns every slot, newest first, without payloads.
func (s *Store) List() ([]Slot, error) {
	var slots []Slot
	err := s.db.Select(&slots,
		`SELECT id, name, kind, turn, nation, ironman, '' AS payload, created_at
		 FROM slots ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("store: list slots: %w", err)
	}
	return slots, nil
}

// Delete removes a slot by id.
func (s *Store) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM slots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete slot %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("store: no slot with id %s", id)
	}
	return nil
}
