package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/milongahq/tangotune/internal/catalog"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) LoadCatalog(ctx context.Context) ([]catalog.Track, []catalog.Performer, error) {
	performers, err := s.ListPerformers(ctx)
	if err != nil {
		return nil, nil, err
	}
	tracks, err := s.ListTracks(ctx)
	if err != nil {
		return nil, nil, err
	}
	return tracks, performers, nil
}

// ReplaceCatalog swaps the whole catalog in one transaction; a failed import
// leaves the previous catalog untouched.
func (s *SQLiteStore) ReplaceCatalog(ctx context.Context, tracks []catalog.Track, performers []catalog.Performer) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Tracks reference performers; delete them first.
	if _, err := tx.ExecContext(ctx, `DELETE FROM tracks`); err != nil {
		return fmt.Errorf("clearing tracks: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM performers`); err != nil {
		return fmt.Errorf("clearing performers: %w", err)
	}

	for _, p := range performers {
		tags, _ := json.Marshal(p.Tags)
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO performers (name, tags, active, level)
			VALUES (?, ?, ?, ?)
		`, p.Name, string(tags), boolToInt(p.Active), p.Level); err != nil {
			return fmt.Errorf("inserting performer %q: %w", p.Name, err)
		}
	}
	for _, t := range tracks {
		tags, _ := json.Marshal(t.Tags)
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO tracks (id, title, performer_name, audio_ref, tags)
			VALUES (?, ?, ?, ?, ?)
		`, t.ID, t.Title, t.PerformerName, t.AudioRef, string(tags)); err != nil {
			return fmt.Errorf("inserting track %q: %w", t.Title, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) ListPerformers(ctx context.Context) ([]catalog.Performer, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, tags, active, level FROM performers ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var performers []catalog.Performer
	for rows.Next() {
		var p catalog.Performer
		var tags string
		var active int
		if err := rows.Scan(&p.Name, &tags, &active, &p.Level); err != nil {
			return nil, err
		}
		p.Active = active != 0
		if err := json.Unmarshal([]byte(tags), &p.Tags); err != nil {
			return nil, fmt.Errorf("decoding tags for %q: %w", p.Name, err)
		}
		performers = append(performers, p)
	}
	return performers, rows.Err()
}

func (s *SQLiteStore) UpdatePerformer(ctx context.Context, name string, active bool, level int) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE performers SET active = ?, level = ? WHERE name = ?
	`, boolToInt(active), level, name)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) ListTracks(ctx context.Context) ([]catalog.Track, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, performer_name, audio_ref, tags FROM tracks ORDER BY title
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tracks []catalog.Track
	for rows.Next() {
		var t catalog.Track
		var tags string
		if err := rows.Scan(&t.ID, &t.Title, &t.PerformerName, &t.AudioRef, &tags); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(tags), &t.Tags); err != nil {
			return nil, fmt.Errorf("decoding tags for %q: %w", t.Title, err)
		}
		tracks = append(tracks, t)
	}
	return tracks, rows.Err()
}

func (s *SQLiteStore) CountTracks(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tracks`).Scan(&count)
	return count, err
}

func (s *SQLiteStore) AdminByEmail(ctx context.Context, email string) (string, string, error) {
	var adminID, passwordHash string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, password_hash FROM admins WHERE email = ?
	`, email).Scan(&adminID, &passwordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", "", ErrNotFound
	}
	return adminID, passwordHash, err
}

func (s *SQLiteStore) CreateAdmin(ctx context.Context, email, passwordHash string) (string, error) {
	var adminID string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO admins (id, email, password_hash)
		VALUES (lower(hex(randomblob(8))), ?, ?)
		RETURNING id
	`, email, passwordHash).Scan(&adminID)
	return adminID, err
}

func (s *SQLiteStore) CountAdmins(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admins`).Scan(&count)
	return count, err
}

func (s *SQLiteStore) CreateAdminSession(ctx context.Context, adminID string) (string, error) {
	var sessionID string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO admin_sessions (admin_id)
		VALUES (?)
		RETURNING id
	`, adminID).Scan(&sessionID)
	return sessionID, err
}

func (s *SQLiteStore) DeleteAdminSession(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM admin_sessions WHERE id = ?`, sessionID)
	return err
}

func (s *SQLiteStore) AdminFromSession(ctx context.Context, sessionID string) (adminSession, error) {
	var sess adminSession
	err := s.db.QueryRowContext(ctx, `
		SELECT a.id, a.email
		FROM admin_sessions s
		JOIN admins a ON a.id = s.admin_id
		WHERE s.id = ?
	`, sessionID).Scan(&sess.AdminID, &sess.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return adminSession{}, errNoAdminSession
	}
	return sess, err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
