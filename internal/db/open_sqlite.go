//go:build !mem

package db

import (
	"context"
	"database/sql"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mithrel/showcase/pkg/api"
)

type sqliteStore struct{ db *sql.DB }

const projectColumns = `slug, id, title, category, tech_stack, project_url, github_url, created_at, development_process, design_inspiration`

func (s *sqliteStore) PutProject(ctx context.Context, p api.Project) (PutResult, error) {
	if err := ValidSlug(p.Slug); err != nil {
		return PutUnchanged, err
	}
	dev, err := encodeDocument(p.DevelopmentProcess)
	if err != nil {
		return PutUnchanged, err
	}
	design, err := encodeDocument(p.DesignInspiration)
	if err != nil {
		return PutUnchanged, err
	}
	hash := p.Hash()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PutUnchanged, err
	}
	defer tx.Rollback()

	result := PutCreated
	var curID, curHash string
	err = tx.QueryRowContext(ctx, `SELECT id, hash FROM projects WHERE slug=?`, p.Slug).Scan(&curID, &curHash)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return PutUnchanged, err
	case curID != "" && p.ID != "" && curID != p.ID:
		return PutUnchanged, ErrConflict
	case curHash == hash:
		return PutUnchanged, nil
	default:
		result = PutUpdated
	}

	if _, err = tx.ExecContext(ctx, `INSERT INTO projects(`+projectColumns+`, hash, synced_at) VALUES(?,?,?,?,?,?,?,?,?,?,?,?)
ON CONFLICT(slug) DO UPDATE SET
  id=excluded.id, title=excluded.title, category=excluded.category, tech_stack=excluded.tech_stack,
  project_url=excluded.project_url, github_url=excluded.github_url, created_at=excluded.created_at,
  development_process=excluded.development_process, design_inspiration=excluded.design_inspiration,
  hash=excluded.hash, synced_at=excluded.synced_at`,
		p.Slug, p.ID, p.Title, p.Category, p.TechStack, p.ProjectURL, p.GithubURL, p.CreatedAt.UTC(),
		dev, design, hash, time.Now().UTC()); err != nil {
		return PutUnchanged, err
	}

	// Media projection
	if _, err = tx.ExecContext(ctx, `DELETE FROM media WHERE project_slug=?`, p.Slug); err != nil {
		return PutUnchanged, err
	}
	if err = insertMediaTx(ctx, tx, p.Slug, mediaDemo, p.DemoMedia); err != nil {
		return PutUnchanged, err
	}
	if err = insertMediaTx(ctx, tx, p.Slug, mediaInspiration, p.InspirationMedia); err != nil {
		return PutUnchanged, err
	}
	if err := tx.Commit(); err != nil {
		return PutUnchanged, err
	}
	return result, nil
}

func (s *sqliteStore) GetProject(ctx context.Context, slug string) (api.Project, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE slug=?`, slug)
	p, err := scanProject(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return api.Project{}, ErrNotFound
		}
		return api.Project{}, err
	}
	if err := s.loadMedia(ctx, &p); err != nil {
		return api.Project{}, err
	}
	return p, nil
}

// ListProjects returns projects newest first, optionally restricted to one
// category (matched case-insensitively).
func (s *sqliteStore) ListProjects(ctx context.Context, q api.ListQuery) ([]api.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects`
	args := []any{}
	if c := strings.TrimSpace(q.Category); c != "" {
		query += ` WHERE category = ? COLLATE NOCASE`
		args = append(args, c)
	}
	query += ` ORDER BY created_at DESC, slug ASC`
	if q.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, q.Limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	var out []api.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			_ = rows.Close()
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	_ = rows.Close()

	for i := range out {
		if err := s.loadMedia(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *sqliteStore) DeleteProject(ctx context.Context, slug string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, `DELETE FROM media WHERE project_slug=?`, slug); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE slug=?`, slug)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

func (s *sqliteStore) Categories(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT category FROM projects WHERE category <> '' ORDER BY category COLLATE NOCASE`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(r rowScanner) (api.Project, error) {
	var p api.Project
	var dev, design []byte
	if err := r.Scan(&p.Slug, &p.ID, &p.Title, &p.Category, &p.TechStack, &p.ProjectURL, &p.GithubURL, &p.CreatedAt, &dev, &design); err != nil {
		return api.Project{}, err
	}
	var err error
	if p.DevelopmentProcess, err = decodeDocument(dev); err != nil {
		return api.Project{}, err
	}
	if p.DesignInspiration, err = decodeDocument(design); err != nil {
		return api.Project{}, err
	}
	return p, nil
}

const (
	mediaDemo        = "demo"
	mediaInspiration = "inspiration"
)

func insertMediaTx(ctx context.Context, tx *sql.Tx, slug, list string, items []api.MediaItem) error {
	for i, m := range items {
		if _, err := tx.ExecContext(ctx, `INSERT INTO media(project_slug, list, position, id, title, type, url, caption, alt_text, created_at) VALUES(?,?,?,?,?,?,?,?,?,?)`,
			slug, list, i, m.ID, m.Title, string(m.Type), m.File.URL, m.Caption, m.AltText, m.CreatedAt.UTC()); err != nil {
			return err
		}
	}
	return nil
}

func (s *sqliteStore) loadMedia(ctx context.Context, p *api.Project) error {
	rows, err := s.db.QueryContext(ctx, `SELECT list, id, title, type, url, caption, alt_text, created_at FROM media WHERE project_slug=? ORDER BY list, position`, p.Slug)
	if err != nil {
		return err
	}
	defer rows.Close()
	p.DemoMedia, p.InspirationMedia = nil, nil
	for rows.Next() {
		var list, typ string
		var m api.MediaItem
		if err := rows.Scan(&list, &m.ID, &m.Title, &typ, &m.File.URL, &m.Caption, &m.AltText, &m.CreatedAt); err != nil {
			return err
		}
		m.Type = api.MediaType(typ)
		if list == mediaDemo {
			p.DemoMedia = append(p.DemoMedia, m)
		} else {
			p.InspirationMedia = append(p.InspirationMedia, m)
		}
	}
	return rows.Err()
}

// openSQLite connects to a SQLite database using modernc.org/sqlite driver and ensures schema exists.
func openSQLite(ctx context.Context, dsn string) (Store, io.Closer, error) {
	path := strings.TrimPrefix(dsn, "sqlite://")
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, nil, err
	}
	dbh, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, nil, err
	}
	// set WAL mode
	if _, err := dbh.ExecContext(ctx, `PRAGMA journal_mode=WAL;`); err != nil {
		_ = dbh.Close()
		return nil, nil, err
	}
	// enforce foreign keys
	if _, err := dbh.ExecContext(ctx, `PRAGMA foreign_keys=ON;`); err != nil {
		_ = dbh.Close()
		return nil, nil, err
	}
	if err := migrate(ctx, dbh); err != nil {
		_ = dbh.Close()
		return nil, nil, err
	}
	return &sqliteStore{db: dbh}, dbh, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS projects (
  slug TEXT PRIMARY KEY,
  id TEXT NOT NULL,
  title TEXT NOT NULL,
  category TEXT NOT NULL,
  tech_stack TEXT NOT NULL,
  project_url TEXT NOT NULL,
  github_url TEXT NOT NULL,
  created_at TIMESTAMP NOT NULL,
  development_process BLOB,
  design_inspiration BLOB,
  hash TEXT NOT NULL,
  synced_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_projects_category_created ON projects(category, created_at DESC, slug);
CREATE TABLE IF NOT EXISTS media (
  project_slug TEXT NOT NULL,
  list TEXT NOT NULL,
  position INTEGER NOT NULL,
  id TEXT NOT NULL,
  title TEXT NOT NULL,
  type TEXT NOT NULL,
  url TEXT NOT NULL,
  caption TEXT NOT NULL,
  alt_text TEXT NOT NULL,
  created_at TIMESTAMP NOT NULL,
  PRIMARY KEY(project_slug, list, position),
  FOREIGN KEY(project_slug) REFERENCES projects(slug) ON DELETE CASCADE
);
`)
	return err
}
