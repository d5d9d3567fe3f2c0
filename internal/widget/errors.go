package widget

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidation matches every *ValidationError with errors.Is.
var ErrValidation = errors.New("validation failed")

// ErrRemote matches every *RemoteError with errors.Is.
var ErrRemote = errors.New("remote call failed")

// ValidationError reports required fields that were left empty. It is raised
// before any remote call is made.
type ValidationError struct {
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// RemoteError is a failed or rejected remote call. Message is what the user sees.
type RemoteError struct {
	Op      string
	Message string
	Err     error
}

func (e *RemoteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *RemoteError) Unwrap() error { return e.Err }

func (e *RemoteError) Is(target error) bool { return target == ErrRemote }

// UserMessage extracts the text to show for err.
func UserMessage(err error) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	var rerr *RemoteError
	if errors.As(err, &rerr) && rerr.Message != "" {
		return rerr.Message
	}
	return err.Error()
}

var (
	// ErrWrongScreen is returned when an action is not available on the visible screen.
	ErrWrongScreen = errors.New("action not available on this screen")
	// ErrInFlight is returned when a submit is attempted while a call is outstanding.
	ErrInFlight = errors.New("a call is already in flight")
)

// NewRemoteError wraps a failed call. The message shown to the user comes from
// err when it carries one (a UserMessage method), otherwise fallback is used.
func NewRemoteError(op, fallback string, err error) *RemoteError {
	msg := fallback
	var carrier interface{ UserMessage() string }
	if errors.As(err, &carrier) && carrier.UserMessage() != "" {
		msg = carrier.UserMessage()
	}
	return &RemoteError{Op: op, Message: msg, Err: err}
}
