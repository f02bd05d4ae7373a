package repository

// EventKind tags the notifications the repository emits to observers (§6
// "Events emitted").
type EventKind int

const (
	EventFileProcessed EventKind = iota
	EventErrorRaised
	EventIsReadyChanged
)

// Event is a single notification sent on Repository.Events(). FileEventKind
// is only meaningful on an EventFileProcessed notification: it carries the
// FileEventKind (Added/Changed/Deleted/Renamed) that triggered the file's
// processing (§6 FileProcessed{Kind, Path}).
type Event struct {
	Kind          EventKind
	FilePath      string
	Err           error
	Ready         bool
	FileEventKind FileEventKind
}
