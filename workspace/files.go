package workspace

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"

	"github.com/viant/scopegraph/graph"
)

// srcExtension maps a file extension to the inferred source language. Its keys
// decide which files SourceFiles collects; the language values are only a
// hint, since the parse registry dispatches on the language attribute baked
// into each file unit's <unit> element, not on extension.
var srcExtension = map[string]graph.Language{
	".c":    graph.LanguageC,
	".h":    graph.LanguageC,
	".cpp":  graph.LanguageCPP,
	".cc":   graph.LanguageCPP,
	".cxx":  graph.LanguageCPP,
	".hpp":  graph.LanguageCPP,
	".java": graph.LanguageJava,
	".cs":   graph.LanguageCSharp,
}

// SourceFiles walks root (a directory of srcML-emitted XML files mirroring
// the original source tree) collecting every file whose extension is a
// recognized source extension.
func SourceFiles(ctx context.Context, fs afs.Service, root string) ([]string, error) {
	var paths []string
	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if info.IsDir() {
			return true, nil
		}
		if _, ok := srcExtension[filepath.Ext(info.Name())]; ok {
			paths = append(paths, url.Join(baseURL, parent, info.Name()))
		}
		return true, nil
	}
	if err := fs.Walk(ctx, root, visitor); err != nil {
		return nil, err
	}
	return paths, nil
}
