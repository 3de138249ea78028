package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrNotFound indicates a document lookup against the ERP store found nothing.
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// IsNotFound reports whether err is (or wraps) an ErrNotFound.
func IsNotFound(err error) bool {
	var nf *ErrNotFound
	return stderrors.As(err, &nf)
}

// ErrUnauthorized indicates a rejected API key.
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	return e.Message
}

// ErrValidation is a user-correctable input problem, surfaced synchronously
// to the invoking user rather than logged and swallowed.
type ErrValidation struct {
	Message string
}

func (e *ErrValidation) Error() string {
	return e.Message
}

// NewValidation builds an ErrValidation with a formatted message.
func NewValidation(format string, args ...interface{}) error {
	return &ErrValidation{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) an ErrValidation.
func IsValidation(err error) bool {
	var ve *ErrValidation
	return stderrors.As(err, &ve)
}

// ErrHub carries a business exception reported by the carrier hub inside an
// otherwise successful response. The hub's own message is shown to the user.
type ErrHub struct {
	Message string
}

func (e *ErrHub) Error() string {
	return e.Message
}

// IsHub reports whether err is (or wraps) an ErrHub.
func IsHub(err error) bool {
	var he *ErrHub
	return stderrors.As(err, &he)
}

// ErrInvalidStateTransition indicates a document lifecycle move that the
// draft/submitted/cancelled workflow does not allow.
type ErrInvalidStateTransition struct {
	From string
	To   string
}

func (e *ErrInvalidStateTransition) Error() string {
	return fmt.Sprintf("invalid state transition from %s to %s", e.From, e.To)
}
