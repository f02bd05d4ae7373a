// Package workspace locates the project root that contains a given source
// file, so a caller (chiefly cmd/scopegraphd) can decide what to bulk-ingest
// without the user spelling out every path by hand.
package workspace

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/viant/afs"
	"golang.org/x/mod/modfile"

	"github.com/viant/scopegraph/graph"
)

// Root describes a detected project root: its directory, the marker file
// that identified it, and the dominant source language inferred from that
// marker (best effort — a root can legitimately mix languages, e.g. a C
// project with a Java JNI shim).
type Root struct {
	Path     string
	Marker   string
	Language graph.Language
	Name     string
}

// Locator finds project roots by walking upward from a file or directory
// looking for build-system marker files. Markers are checked in order, so
// list more specific build files ahead of generic VCS markers.
type Locator struct {
	markers []string
	fs      afs.Service
}

// New returns a Locator configured with markers for C, C++, Java, and C#
// build tooling, falling back to generic VCS/module markers when none of
// the language-specific ones are present.
func New() *Locator {
	return &Locator{
		markers: []string{
			"CMakeLists.txt",
			"configure.ac",
			"Makefile",
			"meson.build",
			"pom.xml",
			"build.gradle",
			"build.gradle.kts",
			"*.csproj",
			"*.sln",
			"go.mod",
			".git",
		},
		fs: afs.New(),
	}
}

// DetectRoot walks upward from path (a file or directory) looking for the
// nearest marker. Returns nil, nil if no marker is found before the
// filesystem root.
func (l *Locator) DetectRoot(ctx context.Context, path string) (*Root, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	startDir := absPath
	if info, err := os.Stat(absPath); err == nil && !info.IsDir() {
		startDir = filepath.Dir(absPath)
	}

	dir := startDir
	for {
		if marker, ok := l.matchMarker(dir); ok {
			root := &Root{Path: dir, Marker: marker, Language: languageForMarker(marker)}
			root.Name = l.extractName(ctx, root)
			return root, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

func (l *Locator) matchMarker(dir string) (string, bool) {
	for _, marker := range l.markers {
		if strings.Contains(marker, "*") {
			matches, _ := filepath.Glob(filepath.Join(dir, marker))
			if len(matches) > 0 {
				return marker, true
			}
			continue
		}
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return marker, true
		}
	}
	return "", false
}

func languageForMarker(marker string) graph.Language {
	switch marker {
	case "CMakeLists.txt", "configure.ac", "Makefile", "meson.build":
		return graph.LanguageCPP
	case "pom.xml", "build.gradle", "build.gradle.kts":
		return graph.LanguageJava
	case "*.csproj", "*.sln":
		return graph.LanguageCSharp
	default:
		return ""
	}
}

// extractName best-effort reads a human-readable project name out of the
// marker file itself, falling back to the root directory's base name.
func (l *Locator) extractName(ctx context.Context, root *Root) string {
	switch root.Marker {
	case "pom.xml":
		if name := l.extractXMLTag(ctx, filepath.Join(root.Path, "pom.xml"), "artifactId"); name != "" {
			return name
		}
	case "build.gradle", "build.gradle.kts":
		if name := l.extractGradleName(ctx, filepath.Join(root.Path, root.Marker)); name != "" {
			return name
		}
	case "*.csproj", "*.sln":
		matches, _ := filepath.Glob(filepath.Join(root.Path, root.Marker))
		if len(matches) > 0 {
			return strings.TrimSuffix(filepath.Base(matches[0]), filepath.Ext(matches[0]))
		}
	case "go.mod":
		if name := l.extractGoModuleName(ctx, filepath.Join(root.Path, "go.mod")); name != "" {
			return name
		}
	}
	return filepath.Base(root.Path)
}

var artifactIDPattern = regexp.MustCompile(`<([\w:.-]+)>([^<]+)</[\w:.-]+>`)

func (l *Locator) extractXMLTag(ctx context.Context, path, tag string) string {
	data, err := l.fs.DownloadWithURL(ctx, path)
	if err != nil {
		return ""
	}
	for _, m := range artifactIDPattern.FindAllSubmatch(data, -1) {
		if string(m[1]) == tag {
			return string(m[2])
		}
	}
	return ""
}

var gradleNamePattern = regexp.MustCompile(`(?:rootProject|project)\.name\s*=\s*['"]([^'"]+)['"]`)

func (l *Locator) extractGradleName(ctx context.Context, path string) string {
	data, err := l.fs.DownloadWithURL(ctx, path)
	if err != nil {
		return ""
	}
	matches := gradleNamePattern.FindSubmatch(data)
	if len(matches) < 2 {
		return ""
	}
	return string(matches[1])
}

func (l *Locator) extractGoModuleName(ctx context.Context, path string) string {
	data, err := l.fs.DownloadWithURL(ctx, path)
	if err != nil {
		return ""
	}
	mod, err := modfile.Parse(path, data, nil)
	if err != nil || mod.Module == nil {
		return ""
	}
	return mod.Module.Mod.Path
}

// FindGitOrigin reads the origin remote URL from dir's .git/config, if any,
// so callers can label a workspace by its remote rather than its path.
func FindGitOrigin(dir string) string {
	configPath := filepath.Join(dir, ".git", "config")
	file, err := os.Open(configPath)
	if err != nil {
		return ""
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	foundOrigin := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.Contains(line, `[remote "origin"]`) {
			foundOrigin = true
			continue
		}
		if foundOrigin && strings.HasPrefix(line, "url = ") {
			return strings.TrimPrefix(line, "url = ")
		}
	}
	return ""
}
