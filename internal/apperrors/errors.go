package apperrors

import (
	"errors"
	"fmt"
)

// NotFoundError is returned by data-access functions when the requested
// record does not exist.
type NotFoundError struct {
	Resource string
	ID       any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Resource, e.ID)
}

func NewCampaignNotFound(id int) error {
	return &NotFoundError{Resource: "campaign", ID: id}
}

func NewSenderNotFound(id int) error {
	return &NotFoundError{Resource: "sender", ID: id}
}

func NewCustomerNotFound(id int) error {
	return &NotFoundError{Resource: "customer", ID: id}
}

func NewMessageNotFound(id int) error {
	return &NotFoundError{Resource: "outbound message", ID: id}
}

func NewUserNotFound(id string) error {
	return &NotFoundError{Resource: "user", ID: id}
}

// IsNotFound reports whether err wraps a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// ValidationError carries one message per rejected field.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0]
	}
	return fmt.Sprintf("validation failed: %d errors", len(e.Errors))
}

func NewValidation(msgs ...string) error {
	return &ValidationError{Errors: msgs}
}

// AsValidation unwraps err into a ValidationError, if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}
