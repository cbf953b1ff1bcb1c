// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bookmark persists named snippets. The index is a SQLite database
// with one row per bookmark keyed by name; content lives in one blob file
// per distinct content id, shared by every bookmark with that content.
package bookmark

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/capture/internal/contentid"
	"github.com/pdiddy/capture/pkg/types"
)

const (
	dbFile           = "index.db"
	singleLinePrefix = "line-"
)

// Store manages the bookmark index and content blobs under one directory.
// It is safe for concurrent use, including by several processes sharing
// one directory.
type Store struct {
	db     *sql.DB
	dir    string
	logger *logrus.Logger

	// mu serializes Create and Delete within one process. Across
	// processes the index write lock orders them.
	mu sync.Mutex
}

// NewStore opens or creates the index at cfg.Dir/index.db and creates the
// schema if it does not exist. A nil logger discards log output.
func NewStore(cfg types.StoreConfig, logger *logrus.Logger) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = types.DefaultStoreDir
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, types.IOError("creating store directory", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_txlock=immediate")
	if err != nil {
		return nil, types.IOError("opening database", err)
	}

	s := &Store{db: db, dir: dir, logger: logger}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, types.IOError("creating schema", err)
	}

	logger.WithFields(logrus.Fields{"path": dbPath}).Debug("opened bookmark index")
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Dir returns the store directory.
func (s *Store) Dir() string { return s.dir }

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS bookmarks (
			name TEXT PRIMARY KEY,
			id TEXT NOT NULL,
			lang TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bookmarks_id ON bookmarks(id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Create stores lines under name. An existing name is rejected with
// KindAlreadyExists and left untouched. Content identical to another
// bookmark's shares its blob.
func (s *Store) Create(ctx context.Context, name string, lines []string, lang types.Language) (types.Bookmark, error) {
	const op = "creating bookmark"

	if strings.TrimSpace(name) == "" {
		return types.Bookmark{}, types.InvalidInputf(op, "empty bookmark name")
	}
	if len(lines) == 0 {
		return types.Bookmark{}, types.InvalidInputf(op, "bookmark %q has no content", name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.exists(ctx, name)
	if err != nil {
		return types.Bookmark{}, err
	}
	if exists {
		return types.Bookmark{}, types.NewError(types.KindAlreadyExists, op, name, nil)
	}

	b := types.Bookmark{
		ID:        contentid.Of(lines),
		Name:      name,
		Language:  lang,
		Content:   lines,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.insert(ctx, b); err != nil {
		return types.Bookmark{}, err
	}

	// The blob is written after the row commits. A Delete running in
	// another process either sees this row and keeps the blob, or removed
	// the blob before this insert could take the write lock.
	created, err := s.writeBlob(b.ID, lines)
	if err != nil {
		if _, rmErr := s.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE name = ?`, b.Name); rmErr != nil {
			s.logger.WithError(rmErr).WithField("name", b.Name).Warn("could not remove bookmark without content")
		}
		return types.Bookmark{}, err
	}

	s.logger.WithFields(logrus.Fields{
		"name":  b.Name,
		"id":    b.ID,
		"lang":  b.Language.Extension(),
		"lines": len(lines),
		"blob":  created,
	}).Debug("created bookmark")

	return b, nil
}

func (s *Store) insert(ctx context.Context, b types.Bookmark) error {
	const op = "creating bookmark"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return types.IOError(op, fmt.Errorf("beginning transaction: %w", err))
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO bookmarks (name, id, lang, created_at) VALUES (?, ?, ?, ?)`,
		b.Name, b.ID, b.Language.Extension(), b.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		if isConstraintViolation(err) {
			return types.NewError(types.KindAlreadyExists, op, b.Name, nil)
		}
		return types.IOError(op, fmt.Errorf("inserting %s: %w", b.Name, err))
	}

	if err := tx.Commit(); err != nil {
		return types.IOError(op, fmt.Errorf("committing: %w", err))
	}
	return nil
}

// isConstraintViolation reports whether err is a SQLite primary key or
// unique constraint failure, which is how a concurrent duplicate name
// surfaces.
func isConstraintViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

func (s *Store) exists(ctx context.Context, name string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM bookmarks WHERE name = ?`, name,
	).Scan(&count)
	if err != nil {
		return false, types.IOError("looking up bookmark", err)
	}
	return count > 0, nil
}

// Get returns the bookmark named name. The boolean is false when no such
// bookmark exists.
func (s *Store) Get(ctx context.Context, name string) (types.Bookmark, bool, error) {
	var (
		b             types.Bookmark
		lang, created string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT name, id, lang, created_at FROM bookmarks WHERE name = ?`, name,
	).Scan(&b.Name, &b.ID, &lang, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Bookmark{}, false, nil
	}
	if err != nil {
		return types.Bookmark{}, false, types.IOError("getting bookmark", err)
	}

	if err := s.hydrate(&b, lang, created); err != nil {
		return types.Bookmark{}, false, err
	}
	return b, true, nil
}

// Delete removes the bookmark named name, and its blob when no other
// bookmark shares the content.
func (s *Store) Delete(ctx context.Context, name string) error {
	const op = "deleting bookmark"

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return types.IOError(op, fmt.Errorf("beginning transaction: %w", err))
	}
	defer tx.Rollback()

	var id string
	err = tx.QueryRowContext(ctx, `SELECT id FROM bookmarks WHERE name = ?`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return types.NewError(types.KindNotFound, op, name, nil)
	}
	if err != nil {
		return types.IOError(op, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM bookmarks WHERE name = ?`, name); err != nil {
		return types.IOError(op, fmt.Errorf("deleting %s: %w", name, err))
	}

	var refs int
	if err := tx.QueryRowContext(ctx, `SELECT count(*) FROM bookmarks WHERE id = ?`, id).Scan(&refs); err != nil {
		return types.IOError(op, err)
	}

	// The blob goes while the write lock is held, so no Create can commit
	// a new reference to it in between.
	if refs == 0 {
		if err := os.Remove(s.blobPath(id)); err != nil && !os.IsNotExist(err) {
			return types.IOError(op, fmt.Errorf("removing blob %s: %w", id, err))
		}
	}

	if err := tx.Commit(); err != nil {
		return types.IOError(op, fmt.Errorf("committing: %w", err))
	}

	s.logger.WithFields(logrus.Fields{"name": name, "id": id, "shared": refs > 0}).Debug("deleted bookmark")
	return nil
}

// List returns every bookmark ordered by name. A non-empty filter is a
// glob matched against names.
func (s *Store) List(ctx context.Context, filter string) ([]types.Bookmark, error) {
	match, err := compileFilter(filter)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT name, id, lang, created_at FROM bookmarks ORDER BY name`)
	if err != nil {
		return nil, types.IOError("listing bookmarks", err)
	}
	defer rows.Close()

	type row struct {
		b             types.Bookmark
		lang, created string
	}
	var pending []row
	for rows.Next() {
		var r row
		if err := rows.Scan(&r.b.Name, &r.b.ID, &r.lang, &r.created); err != nil {
			return nil, types.IOError("scanning bookmark", err)
		}
		if match(r.b.Name) {
			pending = append(pending, r)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, types.IOError("listing bookmarks", err)
	}

	bookmarks := make([]types.Bookmark, 0, len(pending))
	for _, r := range pending {
		b := r.b
		if err := s.hydrate(&b, r.lang, r.created); err != nil {
			return nil, err
		}
		bookmarks = append(bookmarks, b)
	}
	return bookmarks, nil
}

func (s *Store) hydrate(b *types.Bookmark, lang, created string) error {
	b.Language = types.LanguageFromExtension(lang)
	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return types.IOError("reading bookmark", fmt.Errorf("created_at of %s: %w", b.Name, err))
	}
	b.CreatedAt = t
	content, err := s.readBlob(b.ID)
	if err != nil {
		return err
	}
	b.Content = content
	return nil
}

// blobPath derives the content file for id. Folded ids are hex digests and
// name their blob directly. A single-line snippet's id is the line itself,
// so its blob is named by the digest of the id under a prefix that keeps it
// apart from folded ids.
func (s *Store) blobPath(id string) string {
	if contentid.IsDigest(id) {
		return filepath.Join(s.dir, id)
	}
	sum := sha256.Sum256([]byte(id))
	return filepath.Join(s.dir, singleLinePrefix+hex.EncodeToString(sum[:]))
}
