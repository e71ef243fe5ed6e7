package approval

import "fmt"

// AuthorizationError rejects an approval mutation attempted by a caller who
// is neither the owning guide's user nor an admin. Mutations fail closed:
// the error is returned before any write happens.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("authorization: %s", e.Message)
}

func NewAuthorizationError(msg string) error {
	return &AuthorizationError{Message: msg}
}
