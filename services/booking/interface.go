package booking

import (
	"context"

	bookingRepo "pescalia/database/repository/booking"
	guideRepo "pescalia/database/repository/guide"
	serviceRepo "pescalia/database/repository/service"
	"pescalia/models"
	"pescalia/services/notification"

	"go.uber.org/zap"
)

// WizardService drives the four-step booking wizard. Every operation takes
// the caller's AuthContext explicitly; sessions are only ever visible to the
// user who opened them.
type WizardService interface {
	StartSession(ctx context.Context, auth models.AuthContext, serviceID string) (*models.BookingSession, error)
	GetSession(ctx context.Context, auth models.AuthContext, sessionID string) (*models.BookingSession, error)
	SelectService(ctx context.Context, auth models.AuthContext, sessionID, serviceID string) (*models.BookingSession, error)
	SetSchedule(ctx context.Context, auth models.AuthContext, sessionID, date, timeSlot string, people int) (*models.BookingSession, error)
	SetContact(ctx context.Context, auth models.AuthContext, sessionID string, customer models.CustomerInfo) (*models.BookingSession, error)
	Advance(ctx context.Context, auth models.AuthContext, sessionID string) (*models.BookingSession, error)
	Back(ctx context.Context, auth models.AuthContext, sessionID string) (*models.BookingSession, error)
	Confirm(ctx context.Context, auth models.AuthContext, sessionID, paymentMethod string, termsAccepted bool) (*models.Booking, error)
	Cancel(ctx context.Context, auth models.AuthContext, sessionID string) error
}

// ReminderScheduler enqueues a trip reminder for a confirmed booking.
// Scheduling failures are logged and swallowed by the caller.
type ReminderScheduler interface {
	ScheduleTripReminder(booking *models.Booking) error
}

// DefaultWizardService implements WizardService.
type DefaultWizardService struct {
	Services  serviceRepo.ServiceRepository
	Guides    guideRepo.GuideRepository
	Bookings  bookingRepo.BookingRepository
	Store     SessionStore
	Payments  PaymentProcessor
	Reminders ReminderScheduler                // optional
	Notifier  notification.NotificationService // optional
	Logger    *zap.Logger
}
