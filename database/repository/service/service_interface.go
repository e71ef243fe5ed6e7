package serviceRepo

import "pescalia/models"

// ServiceRepository defines methods for service-listing data access. The
// persisted approval flag is a tri-state (true/false/null); every pending
// filter in the implementation must treat anything but an explicit true as
// pending.
type ServiceRepository interface {
	// GetByID retrieves a service by its unique ID.
	GetByID(id string) (*models.Service, error)
	// ListByGuide returns a guide's services; pending listings are included
	// only when includePending is set.
	ListByGuide(guideID string, includePending bool) ([]models.Service, error)
	// ListPending returns every pending service on the platform.
	ListPending() ([]models.Service, error)
	// CountPendingByGuide returns the number of pending services for a guide.
	CountPendingByGuide(guideID string) (int64, error)
	// Create inserts a new service record.
	Create(service *models.Service) error
	// Update modifies an existing service record.
	Update(service *models.Service) error
	// Delete removes a service record by its ID.
	Delete(id string) error
	// SetApproval writes the approval flag for one service. It reports
	// whether the normalized state actually changed (false over a missing
	// flag is still pending), so callers can distinguish a transition from
	// an idempotent no-op.
	SetApproval(id string, approved bool) (transitioned bool, err error)
	// ApproveAllForGuide approves every pending service of a guide and
	// returns the number of services actually transitioned.
	ApproveAllForGuide(guideID string) (int64, error)
	// ApproveAllPending approves every pending service on the platform and
	// returns the number of services actually transitioned.
	ApproveAllPending() (int64, error)
}
