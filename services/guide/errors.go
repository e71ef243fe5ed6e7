package guide

import "fmt"

// OwnershipError rejects profile or listing mutations by callers who do not
// own the guide record (and are not admins).
type OwnershipError struct {
	GuideID string
}

func (e *OwnershipError) Error() string {
	return fmt.Sprintf("caller does not own guide %s", e.GuideID)
}
