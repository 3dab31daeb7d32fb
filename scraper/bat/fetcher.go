package bat

import (
	"context"
	"errors"
	"fmt"
)

// ErrRetrieval marks any failure to obtain page markup.
var ErrRetrieval = errors.New("retrieval error")

// Fetcher returns the raw markup of a page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// RetrievalError describes a failed fetch. It matches ErrRetrieval with errors.Is.
type RetrievalError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *RetrievalError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("retrieval error: %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("retrieval error: %s: %v", e.URL, e.Err)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

func (e *RetrievalError) Is(target error) bool {
	return target == ErrRetrieval
}
