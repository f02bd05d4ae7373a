package repository_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"

	"github.com/viant/scopegraph/config"
	"github.com/viant/scopegraph/graph"
	"github.com/viant/scopegraph/parse"
	"github.com/viant/scopegraph/repository"
)

const fixtureTemplate = `<unit language="C++">
<class><name>Widget%d</name><block>
<function><type><name>void</name></type><name>render</name><parameter_list></parameter_list><block>
<expr_stmt><expr><call><name>draw</name><argument_list></argument_list></call></expr></expr_stmt>
</block></function>
</block></class>
</unit>`

func writeFixture(t *testing.T, dir string, i int) string {
	t.Helper()
	path := filepath.Join(dir, fmt.Sprintf("widget%d.cpp", i))
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf(fixtureTemplate, i)), 0644))
	return path
}

func newTestRepository() *repository.Repository {
	cfg := config.Default()
	cfg.Parallelism = 4
	return repository.New(cfg, parse.NewRegistry(), afs.New(), nil)
}

func TestRepository_IngestAdded_ThenFindMethodCalls(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, 1)

	repo := newTestRepository()
	require.NoError(t, repo.Ingest(context.Background(), repository.FileEvent{Kind: repository.FileAdded, Path: path}))

	root := repo.Root()
	require.Len(t, root.Children, 1)
	assert.Equal(t, "Widget1", root.Children[0].Name)

	calls, err := repo.FindMethodCalls(root.Children[0].PrimaryLocation())
	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, "draw", calls[0].CalleeName)
}

func TestRepository_IngestDeleted_RemovesContributions(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, 2)

	repo := newTestRepository()
	ctx := context.Background()
	require.NoError(t, repo.Ingest(ctx, repository.FileEvent{Kind: repository.FileAdded, Path: path}))
	require.NoError(t, repo.Ingest(ctx, repository.FileEvent{Kind: repository.FileDeleted, Path: path}))

	assert.Len(t, repo.Root().Children, 0)
}

func TestRepository_BulkInit_ConcurrentIngestMatchesFileCount(t *testing.T) {
	dir := t.TempDir()
	const n = 20
	var paths []string
	for i := 0; i < n; i++ {
		paths = append(paths, writeFixture(t, dir, i))
	}

	repo := newTestRepository()
	require.NoError(t, repo.BulkInit(context.Background(), paths))
	assert.True(t, repo.IsReady())
	assert.Len(t, repo.Root().Children, n)
}

func TestRepository_TryLockGlobalScope_TimesOutWhenHeld(t *testing.T) {
	repo := newTestRepository()
	// The first acquisition holds the exclusive lock, so a second attempt
	// must give up once its timeout elapses; the unlock must release it.
	unlock, ok := repo.TryLockGlobalScope(10 * time.Millisecond)
	require.True(t, ok)

	_, held := repo.TryLockGlobalScope(10 * time.Millisecond)
	assert.False(t, held)
	unlock()

	unlock2, ok2 := repo.TryLockGlobalScope(10 * time.Millisecond)
	require.True(t, ok2)
	unlock2()
}

func TestRepository_Clear_ResetsToEmptyAndNotReady(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, 4)

	repo := newTestRepository()
	require.NoError(t, repo.BulkInit(context.Background(), []string{path}))
	require.True(t, repo.IsReady())
	require.Len(t, repo.Root().Children, 1)

	repo.Clear()

	assert.False(t, repo.IsReady())
	assert.Len(t, repo.Root().Children, 0)
}

func TestRepository_Ingest_EmitsOriginatingFileEventKind(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, 5)

	repo := newTestRepository()
	require.NoError(t, repo.Ingest(context.Background(), repository.FileEvent{Kind: repository.FileAdded, Path: path}))

	select {
	case ev := <-repo.Events():
		require.Equal(t, repository.EventFileProcessed, ev.Kind)
		assert.Equal(t, repository.FileAdded, ev.FileEventKind)
	case <-time.After(time.Second):
		t.Fatal("expected a FileProcessed event")
	}
}

func TestRepository_IsReadyChanged_FiresOnTransition(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, 3)

	repo := newTestRepository()
	changed := repo.IsReadyChanged()

	require.NoError(t, repo.BulkInit(context.Background(), []string{path}))

	select {
	case <-changed:
	case <-time.After(time.Second):
		t.Fatal("expected IsReadyChanged to fire")
	}
	assert.True(t, repo.IsReady())
}
