package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const opTimeout = 5 * time.Second

// Store is the settings and saved-listings repository
type Store struct {
	db *sql.DB
}

// New wraps an open database whose schema is in place
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// OpenStore opens path, ensures the schema and returns a Store
func OpenStore(path string) (*Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return New(db), nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// GetSetting returns the value stored under key
func (s *Store) GetSetting(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("querying setting %s: %w", key, err)
	}
	return value, true, nil
}

// PutSetting stores value under key, replacing any previous value
func (s *Store) PutSetting(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storing setting %s: %w", key, err)
	}
	return nil
}

// Get implements session.KeyValueStore
func (s *Store) Get(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return s.GetSetting(ctx, key)
}

// Set implements session.KeyValueStore
func (s *Store) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return s.PutSetting(ctx, key, value)
}

// SavedIDs returns every saved listing id, oldest first
func (s *Store) SavedIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT listing_id FROM saved_listings ORDER BY saved_at, listing_id`)
	if err != nil {
		return nil, fmt.Errorf("querying saved listings: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning saved listing: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// MarkSaved adds or removes id from the saved listings
func (s *Store) MarkSaved(ctx context.Context, id string, saved bool) error {
	var err error
	if saved {
		_, err = s.db.ExecContext(ctx, `INSERT OR IGNORE INTO saved_listings (listing_id) VALUES (?)`, id)
	} else {
		_, err = s.db.ExecContext(ctx, `DELETE FROM saved_listings WHERE listing_id = ?`, id)
	}
	if err != nil {
		return fmt.Errorf("updating saved listing %s: %w", id, err)
	}
	return nil
}

// LoadSaved implements session.SavedRepository
func (s *Store) LoadSaved() ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return s.SavedIDs(ctx)
}

// SetSaved implements session.SavedRepository
func (s *Store) SetSaved(id string, saved bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return s.MarkSaved(ctx, id, saved)
}
