package xpgsql

// Status is the execution status of a statement result, mirroring the
// driver-level result status codes.
type Status int

const (
	// StatusEmptyQuery means the statement string was empty.
	StatusEmptyQuery Status = iota
	// StatusCommandOK means a command that returns no rows completed.
	StatusCommandOK
	// StatusTuplesOK means the statement returned rows (possibly zero).
	StatusTuplesOK
	// StatusCopyOut and StatusCopyIn mark in-progress COPY transfers.
	StatusCopyOut
	StatusCopyIn
	// StatusBadResponse means the server's response was not understood.
	StatusBadResponse
	// StatusNonfatalError is a notice or warning-level error.
	StatusNonfatalError
	// StatusFatalError means the statement failed.
	StatusFatalError
)

// StatusConnectionBad marks connection-level failures: the statement never
// produced a result, so no statement-level diagnostics exist.
const StatusConnectionBad Status = -1

var statusNames = map[Status]string{
	StatusEmptyQuery:    "empty query",
	StatusCommandOK:     "command ok",
	StatusTuplesOK:      "tuples ok",
	StatusCopyOut:       "copy out",
	StatusCopyIn:        "copy in",
	StatusBadResponse:   "bad response",
	StatusNonfatalError: "nonfatal error",
	StatusFatalError:    "fatal error",
	StatusConnectionBad: "bad connection",
}

// String returns the symbolic name of the status.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown status"
}
