package workspace_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/scopegraph/graph"
	"github.com/viant/scopegraph/workspace"
)

func TestLocator_DetectRoot_FindsNearestMarker(t *testing.T) {
	dir := t.TempDir()
	projectDir := filepath.Join(dir, "proj")
	srcDir := filepath.Join(projectDir, "src", "pkg")
	require.NoError(t, os.MkdirAll(srcDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, "CMakeLists.txt"), []byte("project(demo)\n"), 0644))

	file := filepath.Join(srcDir, "widget.cpp")
	require.NoError(t, os.WriteFile(file, []byte("// empty\n"), 0644))

	root, err := workspace.New().DetectRoot(context.Background(), file)
	require.NoError(t, err)
	require.NotNil(t, root)
	assert.Equal(t, projectDir, root.Path)
	assert.Equal(t, "CMakeLists.txt", root.Marker)
	assert.Equal(t, graph.LanguageCPP, root.Language)
}

func TestLocator_DetectRoot_JavaMarkerDetectsPomArtifact(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pom.xml"), []byte(`<project><artifactId>demo-app</artifactId></project>`), 0644))

	root, err := workspace.New().DetectRoot(context.Background(), dir)
	require.NoError(t, err)
	require.NotNil(t, root)
	assert.Equal(t, graph.LanguageJava, root.Language)
	assert.Equal(t, "demo-app", root.Name)
}

func TestLocator_DetectRoot_NoMarkerReturnsNil(t *testing.T) {
	dir := t.TempDir()
	root, err := workspace.New().DetectRoot(context.Background(), dir)
	require.NoError(t, err)
	assert.Nil(t, root)
}
