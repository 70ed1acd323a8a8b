package db

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/mithrel/showcase/pkg/api"
)

// Store is the local catalog of projects pulled from the content store.
type Store interface {
	// PutProject inserts or replaces the project with p.Slug and reports
	// whether anything changed.
	PutProject(ctx context.Context, p api.Project) (PutResult, error)
	GetProject(ctx context.Context, slug string) (api.Project, error)
	ListProjects(ctx context.Context, q api.ListQuery) ([]api.Project, error)
	DeleteProject(ctx context.Context, slug string) error
	Categories(ctx context.Context) ([]string, error)
}

// PutResult describes the effect of a PutProject call.
type PutResult int

const (
	PutUnchanged PutResult = iota
	PutCreated
	PutUpdated
)

func (r PutResult) String() string {
	switch r {
	case PutCreated:
		return "created"
	case PutUpdated:
		return "updated"
	default:
		return "unchanged"
	}
}

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// Open returns a Store for dsn. "memory://" selects the in-memory store;
// "sqlite://<path>" or a bare path selects SQLite.
func Open(ctx context.Context, dsn string) (Store, io.Closer, error) {
	if dsn == "memory://" || dsn == ":memory:" {
		return NewMemStore(), nop{}, nil
	}
	if !strings.HasPrefix(dsn, "sqlite://") {
		dsn = "sqlite://" + dsn
	}
	return openSQLite(ctx, dsn)
}

// ErrInvalidSlug rejects slugs that cannot be used as a single path segment.
var ErrInvalidSlug = errors.New("invalid slug")

// ValidSlug reports whether slug can name one project/<slug>/ directory and
// one URL path segment.
func ValidSlug(slug string) error {
	if strings.TrimSpace(slug) == "" {
		return errors.New("slug is required")
	}
	if slug == "." || strings.Contains(slug, "..") {
		return fmt.Errorf("%w %q: contains ..", ErrInvalidSlug, slug)
	}
	for _, r := range slug {
		switch {
		case r == '/', r == '\\', r == '?', r == '#', r == '%':
			return fmt.Errorf("%w %q: contains %q", ErrInvalidSlug, slug, r)
		case unicode.IsControl(r), unicode.IsSpace(r):
			return fmt.Errorf("%w %q: contains whitespace or control characters", ErrInvalidSlug, slug)
		}
	}
	return nil
}
