package domain

import "fmt"

// RemoteError wraps a failure talking to the remote spreadsheet service.
// These surface to the caller verbatim: there is no retry, no backoff, and no
// partial-write rollback behind them.
type RemoteError struct {
	Op    string
	Sheet string
	Err   error
}

func (e *RemoteError) Error() string {
	if e.Sheet == "" {
		return fmt.Sprintf("remote store: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("remote store: %s %q: %v", e.Op, e.Sheet, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }
