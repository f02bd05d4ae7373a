package parse

import (
	"errors"
	"fmt"
	"io"

	"github.com/viant/scopegraph/errs"
	"github.com/viant/scopegraph/graph"
)

// Language re-exports graph.Language: the parser surface and the scope
// graph tag the same four-value set.
type Language = graph.Language

// Parser lowers one decoded file unit into a scope tree rooted at a
// Program-surrogate, unmerged. Implementations must be pure of global state
// and safe to invoke concurrently on distinct inputs.
type Parser interface {
	ParseFileUnit(filePath string, unit *Element) (*graph.Scope, error)
}

// Registry dispatches a decoded file unit to the parser registered for its
// root "language" attribute. Installed once at construction and read-only
// thereafter (§5's "shared resources" guarantee).
type Registry struct {
	parsers map[Language]Parser
}

// NewRegistry returns a Registry with the four reference parsers installed.
func NewRegistry() *Registry {
	r := &Registry{parsers: make(map[Language]Parser)}
	r.Register(graph.LanguageC, NewCParser())
	r.Register(graph.LanguageCPP, NewCPPParser())
	r.Register(graph.LanguageJava, NewJavaParser())
	r.Register(graph.LanguageCSharp, NewCSharpParser())
	return r
}

// Register installs (or replaces) the parser for lang.
func (r *Registry) Register(lang Language, p Parser) {
	r.parsers[lang] = p
}

// Parser returns the parser registered for lang, and whether one is
// registered.
func (r *Registry) Parser(lang Language) (Parser, bool) {
	p, ok := r.parsers[lang]
	return p, ok
}

// ParseFileUnit decodes and lowers a single file unit, dispatching on the
// unit's own "language" attribute. Returns errs.UnknownLanguageError when no
// parser is registered for that language; the caller decides (via
// config.Config.StrictUnknownLanguage) whether that is recovered or
// surfaced.
func (r *Registry) ParseFileUnit(filePath string, unit *Element) (*graph.Scope, error) {
	lang := Language(unit.Attr("language"))
	parser, ok := r.parsers[lang]
	if !ok {
		return nil, &errs.UnknownLanguageError{FilePath: filePath, Language: string(lang)}
	}
	tree, err := parser.ParseFileUnit(filePath, unit)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}
	return tree, nil
}

// ParseReader decodes a srcML-style document from r and dispatches it to
// the registered parser for its language attribute, combining
// DecodeFileUnit and ParseFileUnit for the common case of reading directly
// from a file (used by the ingest pipeline's producer pool).
func (r *Registry) ParseReader(filePath string, data io.Reader) (*graph.Scope, error) {
	unit, err := DecodeFileUnit(data)
	if err != nil {
		return nil, &errs.ParseError{FilePath: filePath, XPath: "/", Message: "decode file unit", Err: err}
	}
	tree, err := r.ParseFileUnit(filePath, unit)
	if err != nil {
		var unknown *errs.UnknownLanguageError
		if errors.As(err, &unknown) {
			return nil, unknown
		}
		return nil, &errs.ParseError{FilePath: filePath, XPath: unit.XPath, Message: "lower file unit", Err: err}
	}
	return tree, nil
}
