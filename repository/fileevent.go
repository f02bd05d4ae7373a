package repository

// FileEventKind is the event-source taxonomy the ingest pipeline consumes
// (§4.5, §6): Added, Changed, Deleted, Renamed.
type FileEventKind int

const (
	FileAdded FileEventKind = iota
	FileChanged
	FileDeleted
	FileRenamed
)

// FileEvent carries one filesystem change. OldPath is only meaningful for
// FileRenamed.
type FileEvent struct {
	Kind    FileEventKind
	Path    string
	OldPath string
}
