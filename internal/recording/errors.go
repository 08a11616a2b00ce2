package recording

// InvalidRecordingError reports why a path cannot be used as a recording
// directory. Reason states what went wrong; Recovery, when non-empty, tells
// the user how to fix it.
type InvalidRecordingError struct {
	Reason   string
	Recovery string
}

func (e *InvalidRecordingError) Error() string {
	message := "InvalidRecordingError: " + e.Reason
	if e.Recovery != "" {
		message += "\n" + e.Recovery
	}
	return message
}
