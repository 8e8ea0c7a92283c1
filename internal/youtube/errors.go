package youtube

import (
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/googleapi"
)

// APIError reports a non-2xx response from the Data API.
type APIError struct {
	Op      string
	Status  int
	Message string
	err     error
}

func (e *APIError) Error() string {
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		return fmt.Sprintf("youtube %s returned %d", e.Op, e.Status)
	}
	return fmt.Sprintf("youtube %s returned %d: %s", e.Op, e.Status, msg)
}

func (e *APIError) Unwrap() error { return e.err }

// wrapError converts googleapi failures into *APIError and annotates
// everything else (transport errors, cancellation) with the operation name.
func wrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return &APIError{Op: op, Status: gerr.Code, Message: gerr.Message, err: err}
	}
	return fmt.Errorf("youtube %s: %w", op, err)
}
