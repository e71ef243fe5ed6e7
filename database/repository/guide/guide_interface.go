package guideRepo

import (
	"pescalia/models"

	"go.mongodb.org/mongo-driver/bson"
)

// GuideRepository defines methods for guide data access.
type GuideRepository interface {
	// GetByID retrieves a guide by its unique ID.
	GetByID(id string) (*models.Guide, error)
	// GetAll retrieves all guides with an optional projection.
	GetAll(projection bson.M) ([]models.Guide, error)
	// GetMostRecentByOwner resolves the "current" guide for a user who may
	// (defectively) own several guide records: highest createdAt wins.
	GetMostRecentByOwner(ownerUserID string) (*models.Guide, error)
	// Create inserts a new guide record.
	Create(guide *models.Guide) error
	// Update modifies an existing guide record.
	Update(guide *models.Guide) error
	// UpdateWithDocument patches a guide document with the specified update document.
	UpdateWithDocument(id string, updateDoc bson.M) error
	// Delete removes a guide record by its ID.
	Delete(id string) error
}
