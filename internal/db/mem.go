package db

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/mithrel/showcase/pkg/api"
)

type memStore struct {
	mu     sync.RWMutex
	bySlug map[string]api.Project
	hashes map[string]string
}

// NewMemStore returns a Store that keeps the catalog in process memory.
func NewMemStore() Store {
	return newMemStore()
}

func newMemStore() *memStore {
	return &memStore{bySlug: make(map[string]api.Project), hashes: make(map[string]string)}
}

func (m *memStore) PutProject(ctx context.Context, p api.Project) (PutResult, error) {
	if err := ValidSlug(p.Slug); err != nil {
		return PutUnchanged, err
	}
	hash := p.Hash()
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.bySlug[p.Slug]
	if !ok {
		m.bySlug[p.Slug] = p
		m.hashes[p.Slug] = hash
		return PutCreated, nil
	}
	if cur.ID != "" && p.ID != "" && cur.ID != p.ID {
		return PutUnchanged, ErrConflict
	}
	if m.hashes[p.Slug] == hash {
		return PutUnchanged, nil
	}
	m.bySlug[p.Slug] = p
	m.hashes[p.Slug] = hash
	return PutUpdated, nil
}

func (m *memStore) GetProject(ctx context.Context, slug string) (api.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.bySlug[slug]
	if !ok {
		return api.Project{}, ErrNotFound
	}
	return p, nil
}

func (m *memStore) ListProjects(ctx context.Context, q api.ListQuery) ([]api.Project, error) {
	m.mu.RLock()
	out := make([]api.Project, 0, len(m.bySlug))
	for _, p := range m.bySlug {
		if q.Category != "" && !strings.EqualFold(p.Category, strings.TrimSpace(q.Category)) {
			continue
		}
		out = append(out, p)
	}
	m.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].Slug < out[j].Slug
	})
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (m *memStore) DeleteProject(ctx context.Context, slug string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bySlug[slug]; !ok {
		return ErrNotFound
	}
	delete(m.bySlug, slug)
	delete(m.hashes, slug)
	return nil
}

func (m *memStore) Categories(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := make(map[string]struct{})
	var out []string
	for _, p := range m.bySlug {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i]) < strings.ToLower(out[j]) })
	return out, nil
}

type nop struct{}

func (nop) Close() error { return nil }
