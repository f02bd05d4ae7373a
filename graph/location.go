package graph

import "strings"

// Location is the primary identity for de-duplication: a span inside one
// contributing file's syntactic XML (see spec §3, §6).
type Location struct {
	FilePath    string
	XPath       string
	StartLine   int
	StartColumn int
	Length      int
	Raw         string // source text span, when the parser captured one
}

// Less orders locations by file path, then start line, then start column
// (invariant 2 and 4: primary location is the lexically smallest; cross-file
// children are interleaved by this order).
func (l Location) Less(other Location) bool {
	if l.FilePath != other.FilePath {
		return l.FilePath < other.FilePath
	}
	if l.StartLine != other.StartLine {
		return l.StartLine < other.StartLine
	}
	return l.StartColumn < other.StartColumn
}

// Contains reports whether l fully spans other, first trying an XPath-prefix
// match and falling back to a file+line-range containment check (§4.1
// GetScopeForLocation).
func (l Location) Contains(other Location) bool {
	if l.FilePath != other.FilePath {
		return false
	}
	if l.XPath != "" && other.XPath != "" {
		if l.XPath == other.XPath {
			return true
		}
		return len(other.XPath) > len(l.XPath) &&
			other.XPath[:len(l.XPath)] == l.XPath &&
			other.XPath[len(l.XPath)] == '/'
	}
	if l.StartLine > other.StartLine {
		return false
	}
	if l.StartLine == other.StartLine && l.StartColumn > other.StartColumn {
		return false
	}
	endLine, endCol := l.end()
	otherEndLine, otherEndCol := other.end()
	if endLine < otherEndLine {
		return false
	}
	if endLine == otherEndLine && endCol < otherEndCol {
		return false
	}
	return true
}

// end computes the (line, column) of the last byte this location spans, by
// counting newlines in Raw when the parser captured the source text for this
// node. Without Raw (e.g. a hand-built query location), Length is treated as
// a same-line column delta, which is only correct for single-line spans.
func (l Location) end() (line, col int) {
	if l.Raw == "" {
		return l.StartLine, l.StartColumn + l.Length
	}
	if idx := strings.LastIndexByte(l.Raw, '\n'); idx >= 0 {
		return l.StartLine + strings.Count(l.Raw, "\n"), len(l.Raw) - idx - 1
	}
	return l.StartLine, l.StartColumn + l.Length
}

// Equal reports whether l and other identify the same span (§3: Location is
// the de-duplication identity).
func (l Location) Equal(other Location) bool {
	return l.FilePath == other.FilePath && l.XPath == other.XPath &&
		l.StartLine == other.StartLine && l.StartColumn == other.StartColumn &&
		l.Length == other.Length
}

// UnionLocations appends locs b onto a, skipping any already present in a
// (by Equal), used by Merge rule 1 to union a coalesced node's locations.
func UnionLocations(a, b []Location) []Location {
	result := make([]Location, len(a), len(a)+len(b))
	copy(result, a)
	for _, l := range b {
		found := false
		for _, existing := range a {
			if existing.Equal(l) {
				found = true
				break
			}
		}
		if !found {
			result = append(result, l)
		}
	}
	return result
}

// MinLocation returns the lexically smallest of a non-empty set of locations.
func MinLocation(locs []Location) Location {
	min := locs[0]
	for _, l := range locs[1:] {
		if l.Less(min) {
			min = l
		}
	}
	return min
}
