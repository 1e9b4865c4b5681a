package application

import "fmt"

// CodeDuplicateEmail is the machine-readable code clients branch on when a
// registration or profile update collides with an existing email address.
const CodeDuplicateEmail = "01"

// ValidationError is a user-facing rejection of the submitted data. Message
// is safe to show verbatim; Code is optional.
type ValidationError struct {
	Message string
	Code    string
}

func (e *ValidationError) Error() string { return e.Message }

// AuthError is a failed credential check. Handlers report these with status
// 200 and an error-shaped body, matching the client contract.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// IDMismatchError rejects an update whose payload id disagrees with the URL.
type IDMismatchError struct {
	PayloadID string
	RouteID   string
}

func (e *IDMismatchError) Error() string {
	return fmt.Sprintf("id in payload (%s) does not match id in URL (%s)", e.PayloadID, e.RouteID)
}

// NotFoundError reports a record that does not exist in the store.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }
