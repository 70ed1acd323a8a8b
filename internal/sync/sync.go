package sync

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/mithrel/showcase/internal/db"
	"github.com/mithrel/showcase/pkg/api"
)

// Source is the upstream the catalog is pulled from. *content.Client
// satisfies it.
type Source interface {
	Projects(ctx context.Context) ([]api.Project, error)
	ProjectBySlug(ctx context.Context, slug string) (api.Project, error)
}

// Report counts what a sync did to the catalog, by slug.
type Report struct {
	Created   []string `json:"created"`
	Updated   []string `json:"updated"`
	Unchanged []string `json:"unchanged"`
	Removed   []string `json:"removed"`
}

// Changed reports whether the catalog differs from before the sync.
func (r Report) Changed() bool {
	return len(r.Created)+len(r.Updated)+len(r.Removed) > 0
}

type Service struct {
	source Source
	store  db.Store
	log    *log.Logger
}

func New(source Source, store db.Store, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{source: source, store: store, log: logger}
}

// SyncNow mirrors the upstream project set into the store. Every listed
// project is refetched in full, in slug order, so its documents are included;
// projects the upstream no longer lists are removed. A failure on one project
// does not stop the others; the first error is returned after the pass.
func (s *Service) SyncNow(ctx context.Context) (Report, error) {
	var rep Report
	listed, err := s.source.Projects(ctx)
	if err != nil {
		return rep, fmt.Errorf("list projects: %w", err)
	}
	s.log.Printf("sync: %d projects upstream", len(listed))

	var firstErr error
	upstream := api.Index(listed)
	for _, slug := range upstream.Slugs() {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		if slug == "" {
			continue
		}
		full, err := s.source.ProjectBySlug(ctx, slug)
		if err != nil {
			s.log.Printf("sync: fetch %s failed: %v", slug, err)
			if firstErr == nil {
				firstErr = fmt.Errorf("fetch %s: %w", slug, err)
			}
			continue
		}
		res, err := s.store.PutProject(ctx, full)
		if err != nil {
			s.log.Printf("sync: store %s failed: %v", slug, err)
			if firstErr == nil {
				firstErr = fmt.Errorf("store %s: %w", slug, err)
			}
			continue
		}
		switch res {
		case db.PutCreated:
			rep.Created = append(rep.Created, full.Slug)
		case db.PutUpdated:
			rep.Updated = append(rep.Updated, full.Slug)
		default:
			rep.Unchanged = append(rep.Unchanged, full.Slug)
		}
	}

	// Removal is skipped after any failed fetch or store.
	if firstErr != nil {
		return rep, firstErr
	}
	local, err := s.store.ListProjects(ctx, api.ListQuery{})
	if err != nil {
		return rep, fmt.Errorf("list catalog: %w", err)
	}
	for _, p := range local {
		if _, ok := upstream[p.Slug]; ok {
			continue
		}
		if err := s.store.DeleteProject(ctx, p.Slug); err != nil && !errors.Is(err, db.ErrNotFound) {
			return rep, fmt.Errorf("remove %s: %w", p.Slug, err)
		}
		rep.Removed = append(rep.Removed, p.Slug)
	}
	sort.Strings(rep.Removed)
	s.log.Printf("sync: created=%d updated=%d unchanged=%d removed=%d",
		len(rep.Created), len(rep.Updated), len(rep.Unchanged), len(rep.Removed))
	return rep, nil
}
