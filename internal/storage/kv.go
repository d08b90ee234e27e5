package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// Get returns the value stored under key, or nil if the key is absent.
func (s *Store) Get(key string) ([]byte, error) {
	var value []byte
	switch err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value); {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("storage: cannot read %s: %w", key, err)
	}
	return value, nil
}

const upsertKV = `INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

// Put stores value under key, replacing any previous value.
func (s *Store) Put(key string, value []byte) error {
	if _, err := s.db.Exec(upsertKV, key, value); err != nil {
		return fmt.Errorf("storage: cannot write %s: %w", key, err)
	}
	return nil
}

// Update replaces the value under key with the result of fn in one
// transaction, so concurrent updates of the same key are applied in turn.
// fn receives nil when the key is absent. An error from fn leaves the
// stored value unchanged and is returned as is.
func (s *Store) Update(key string, fn func(old []byte) ([]byte, error)) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin update of %s: %w", key, err)
	}
	defer tx.Rollback()

	var old []byte
	err = tx.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&old)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("storage: cannot read %s: %w", key, err)
	}

	value, err := fn(old)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(upsertKV, key, value); err != nil {
		return fmt.Errorf("storage: cannot write %s: %w", key, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("storage: cannot delete %s: %w", key, err)
	}
	return nil
}
