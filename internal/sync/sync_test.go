package sync_test

import (
	"bytes"
	"context"
	"errors"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/showcase/internal/db"
	"github.com/mithrel/showcase/internal/sync"
	"github.com/mithrel/showcase/pkg/api"
)

type fakeSource struct {
	projects map[string]api.Project
	order    []string
	failSlug string
}

func (f *fakeSource) Projects(ctx context.Context) ([]api.Project, error) {
	out := make([]api.Project, 0, len(f.order))
	for _, slug := range f.order {
		p := f.projects[slug]
		out = append(out, api.Project{ID: p.ID, Slug: p.Slug, Title: p.Title})
	}
	return out, nil
}

func (f *fakeSource) ProjectBySlug(ctx context.Context, slug string) (api.Project, error) {
	if slug == f.failSlug {
		return api.Project{}, errors.New("upstream down")
	}
	p, ok := f.projects[slug]
	if !ok {
		return api.Project{}, errors.New("missing")
	}
	return p, nil
}

func (f *fakeSource) put(p api.Project) {
	if _, ok := f.projects[p.Slug]; !ok {
		f.order = append(f.order, p.Slug)
	}
	f.projects[p.Slug] = p
}

func (f *fakeSource) drop(slug string) {
	delete(f.projects, slug)
	for i, s := range f.order {
		if s == slug {
			f.order = append(f.order[:i], f.order[i+1:]...)
			return
		}
	}
}

func project(slug, title string) api.Project {
	return api.Project{
		ID:                 "id-" + slug,
		Slug:               slug,
		Title:              title,
		Category:           "web",
		DevelopmentProcess: map[string]any{"document": []any{map[string]any{"text": "hello"}}},
		CreatedAt:          time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestSyncNow(t *testing.T) {
	ctx := context.Background()
	store := db.NewMemStore()
	src := &fakeSource{projects: map[string]api.Project{}}
	src.put(project("alpha", "Alpha"))
	src.put(project("beta", "Beta"))

	var logs bytes.Buffer
	svc := sync.New(src, store, log.New(&logs, "", 0))

	rep, err := svc.SyncNow(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, rep.Created)
	assert.True(t, rep.Changed())

	got, err := store.GetProject(ctx, "alpha")
	require.NoError(t, err)
	assert.NotNil(t, got.DevelopmentProcess, "full project should be stored, not the summary")

	rep, err = svc.SyncNow(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, rep.Unchanged)
	assert.False(t, rep.Changed())

	src.put(project("beta", "Beta v2"))
	src.drop("alpha")
	rep, err = svc.SyncNow(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"beta"}, rep.Updated)
	assert.Equal(t, []string{"alpha"}, rep.Removed)

	_, err = store.GetProject(ctx, "alpha")
	assert.True(t, errors.Is(err, db.ErrNotFound))
	assert.Contains(t, logs.String(), "removed=1")
}

func TestSyncNowKeepsCatalogOnFailure(t *testing.T) {
	ctx := context.Background()
	store := db.NewMemStore()
	_, err := store.PutProject(ctx, project("stale", "Stale"))
	require.NoError(t, err)

	src := &fakeSource{projects: map[string]api.Project{}, failSlug: "broken"}
	src.put(project("fine", "Fine"))
	src.put(project("broken", "Broken"))

	var logs bytes.Buffer
	rep, err := sync.New(src, store, log.New(&logs, "", 0)).SyncNow(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch broken")
	assert.Equal(t, []string{"fine"}, rep.Created)
	assert.Empty(t, rep.Removed)

	_, err = store.GetProject(ctx, "stale")
	assert.NoError(t, err)
	assert.Contains(t, logs.String(), "fetch broken failed")
}

func TestSyncNowRejectsUnsafeSlugs(t *testing.T) {
	ctx := context.Background()
	store := db.NewMemStore()
	_, err := store.PutProject(ctx, project("stale", "Stale"))
	require.NoError(t, err)

	src := &fakeSource{projects: map[string]api.Project{}}
	src.put(project("zeta", "Zeta"))
	src.put(project("../escaped", "Escaped"))
	src.put(project("alpha", "Alpha"))

	rep, err := sync.New(src, store, log.New(&bytes.Buffer{}, "", 0)).SyncNow(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, db.ErrInvalidSlug), err.Error())
	assert.Equal(t, []string{"alpha", "zeta"}, rep.Created)
	assert.Empty(t, rep.Removed)

	_, err = store.GetProject(ctx, "stale")
	assert.NoError(t, err)
}
