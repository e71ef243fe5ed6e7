package bookingRepo

import "pescalia/models"

// BookingRepository persists confirmed booking records.
type BookingRepository interface {
	// Create inserts a confirmed booking record.
	Create(booking *models.Booking) error
	// GetByID retrieves a booking by its confirmation identifier.
	GetByID(id string) (*models.Booking, error)
	// ListByUser returns a user's bookings, newest first.
	ListByUser(userID string) ([]models.Booking, error)
	// ListByGuide returns a guide's bookings, newest first.
	ListByGuide(guideID string) ([]models.Booking, error)
}
