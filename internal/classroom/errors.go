package classroom

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDanglingReference means a submission points at an assignment that does not exist.
	ErrDanglingReference = errors.New("dangling assignment reference")
	// ErrInvalidInput rejects records that break an entity invariant.
	ErrInvalidInput = errors.New("invalid input")
)

// ItemFailure records why one submission in a batch was left ungraded.
type ItemFailure struct {
	Index        int    `json:"index"`
	SubmissionID string `json:"submission_id"`
	Err          error  `json:"-"`
	Message      string `json:"error"`
}

func (f ItemFailure) Error() string {
	return fmt.Sprintf("submission %s (#%d): %v", f.SubmissionID, f.Index, f.Err)
}

func (f ItemFailure) Unwrap() error { return f.Err }
