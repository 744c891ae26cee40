package commands

// NoteAPI is the part of the app the export commands drive. Both methods
// return the resolved path that was written.
type NoteAPI interface {
	ExportNote(path string) (string, error)
	ExportProject(path string) (string, error)
	SetStatusMessage(format string, args ...interface{})
}
