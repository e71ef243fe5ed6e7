package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	serviceRepo "pescalia/database/repository/service"
	"pescalia/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StartSession opens a new wizard session at step 1 for the given service.
// The aggregate starts with a single participant, so the initial total is the
// service price itself.
func (s *DefaultWizardService) StartSession(ctx context.Context, auth models.AuthContext, serviceID string) (*models.BookingSession, error) {
	if serviceID == "" {
		return nil, NewValidationError("serviceId", "must not be empty")
	}

	svc, err := s.loadBookableService(auth, serviceID)
	if err != nil {
		return nil, err
	}

	session := &models.BookingSession{
		SessionID: uuid.New().String(),
		UserID:    auth.UserID,
		Step:      models.StepService,
		CreatedAt: time.Now(),
	}
	applyServiceSelection(session, svc)

	if err := s.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// GetSession returns the caller's session.
func (s *DefaultWizardService) GetSession(ctx context.Context, auth models.AuthContext, sessionID string) (*models.BookingSession, error) {
	return s.loadOwnSession(ctx, auth, sessionID)
}

// SelectService replaces the selected service at step 1. The participant
// count resets to one and the total is recomputed from the new selection, so
// a previously selected service can never leak into the price.
func (s *DefaultWizardService) SelectService(ctx context.Context, auth models.AuthContext, sessionID, serviceID string) (*models.BookingSession, error) {
	session, err := s.loadOwnSession(ctx, auth, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != models.StepService {
		return nil, NewValidationError("step", "service can only be selected at step 1")
	}
	if serviceID == "" {
		return nil, NewValidationError("serviceId", "must not be empty")
	}

	svc, err := s.loadBookableService(auth, serviceID)
	if err != nil {
		return nil, err
	}
	applyServiceSelection(session, svc)

	if err := s.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// SetSchedule records date, departure slot and participant count at step 2.
// The total is recomputed from the currently selected service's price on
// every change; invalid input rejects without touching the session.
func (s *DefaultWizardService) SetSchedule(ctx context.Context, auth models.AuthContext, sessionID, date, timeSlot string, people int) (*models.BookingSession, error) {
	session, err := s.loadOwnSession(ctx, auth, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != models.StepSchedule {
		return nil, NewValidationError("step", "schedule can only be set at step 2")
	}
	if err := ValidateDate(date, time.Now()); err != nil {
		return nil, err
	}
	if err := ValidateTimeSlot(timeSlot); err != nil {
		return nil, err
	}
	if err := ValidatePeople(people, session.ServiceMaxPeople); err != nil {
		return nil, err
	}

	session.Date = date
	session.Time = timeSlot
	session.People = people
	session.TotalPrice = session.ServicePrice * int64(people)

	if err := s.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// SetContact records the customer contact block at step 3.
func (s *DefaultWizardService) SetContact(ctx context.Context, auth models.AuthContext, sessionID string, customer models.CustomerInfo) (*models.BookingSession, error) {
	session, err := s.loadOwnSession(ctx, auth, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != models.StepContact {
		return nil, NewValidationError("step", "contact info can only be set at step 3")
	}
	if customer.Name == "" {
		return nil, NewValidationError("name", "must not be empty")
	}
	if customer.Email == "" {
		return nil, NewValidationError("email", "must not be empty")
	}
	if customer.Phone == "" {
		return nil, NewValidationError("phone", "must not be empty")
	}

	session.Customer = customer

	if err := s.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Advance moves the wizard one step forward if the current step's guard
// passes. A rejected advance leaves the stored session untouched.
func (s *DefaultWizardService) Advance(ctx context.Context, auth models.AuthContext, sessionID string) (*models.BookingSession, error) {
	session, err := s.loadOwnSession(ctx, auth, sessionID)
	if err != nil {
		return nil, err
	}
	if err := advance(session); err != nil {
		return nil, err
	}
	if err := s.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Back moves the wizard one step back. Data entered on later steps stays in
// the aggregate.
func (s *DefaultWizardService) Back(ctx context.Context, auth models.AuthContext, sessionID string) (*models.BookingSession, error) {
	session, err := s.loadOwnSession(ctx, auth, sessionID)
	if err != nil {
		return nil, err
	}
	back(session)
	if err := s.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Confirm finalizes the wizard: validates the payment step guard, creates a
// payment intent, persists the booking together with the terms-acceptance
// timestamp, and discards the session. The returned booking's ID is the
// confirmation identifier.
func (s *DefaultWizardService) Confirm(ctx context.Context, auth models.AuthContext, sessionID, paymentMethod string, termsAccepted bool) (*models.Booking, error) {
	session, err := s.loadOwnSession(ctx, auth, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != models.StepPayment {
		return nil, NewValidationError("step", "confirmation is only possible at step 4")
	}
	if err := ValidatePaymentMethod(paymentMethod); err != nil {
		return nil, err
	}
	if !termsAccepted {
		return nil, NewValidationError("terms", "terms and conditions must be accepted")
	}
	// Earlier steps were guarded on advance; re-check so a malformed session
	// can never turn into a booking.
	if session.Date == "" || session.Time == "" || session.Customer.Name == "" ||
		session.Customer.Email == "" || session.Customer.Phone == "" {
		return nil, NewValidationError("session", "incomplete booking data")
	}

	intentID, err := s.Payments.CreateIntent(ctx, session.TotalPrice, "clp", map[string]string{
		"serviceId": session.ServiceID,
		"guideId":   session.GuideID,
		"userId":    session.UserID,
	})
	if err != nil {
		return nil, fmt.Errorf("payment initialization failed: %w", err)
	}

	booking := &models.Booking{
		ID:              uuid.New().String(),
		GuideID:         session.GuideID,
		ServiceID:       session.ServiceID,
		UserID:          session.UserID,
		Date:            session.Date,
		Time:            session.Time,
		People:          session.People,
		TotalPrice:      session.TotalPrice,
		PaymentMethod:   paymentMethod,
		PaymentIntentID: intentID,
		Customer:        session.Customer,
		TermsAcceptedAt: time.Now(),
		Status:          models.BookingStatusConfirmed,
		CreatedAt:       time.Now(),
	}
	if err := s.Bookings.Create(booking); err != nil {
		return nil, fmt.Errorf("failed to persist booking: %w", err)
	}

	if err := s.Store.Delete(ctx, sessionID); err != nil {
		s.Logger.Warn("failed to discard confirmed session", zap.String("sessionId", sessionID), zap.Error(err))
	}

	s.afterConfirm(ctx, booking, session.ServiceTitle)
	return booking, nil
}

// Cancel abandons the session.
func (s *DefaultWizardService) Cancel(ctx context.Context, auth models.AuthContext, sessionID string) error {
	if _, err := s.loadOwnSession(ctx, auth, sessionID); err != nil {
		return err
	}
	return s.Store.Delete(ctx, sessionID)
}

// afterConfirm runs the best-effort side effects of a confirmed booking:
// trip reminder scheduling and a push to the guide. Failures are logged.
func (s *DefaultWizardService) afterConfirm(ctx context.Context, booking *models.Booking, serviceTitle string) {
	if s.Reminders != nil {
		if err := s.Reminders.ScheduleTripReminder(booking); err != nil {
			s.Logger.Warn("failed to schedule trip reminder", zap.String("bookingId", booking.ID), zap.Error(err))
		}
	}
	if s.Notifier != nil {
		guide, err := s.Guides.GetByID(booking.GuideID)
		if err != nil {
			s.Logger.Warn("failed to load guide for booking notification", zap.String("guideId", booking.GuideID), zap.Error(err))
			return
		}
		body := fmt.Sprintf("%s on %s at %s for %d people", serviceTitle, booking.Date, booking.Time, booking.People)
		if err := s.Notifier.NotifyGuide(ctx, guide, "New booking confirmed", body, map[string]string{
			"bookingId": booking.ID,
		}); err != nil {
			s.Logger.Warn("failed to notify guide of booking", zap.String("guideId", booking.GuideID), zap.Error(err))
		}
	}
}

// loadOwnSession fetches a session and hides sessions owned by other users.
func (s *DefaultWizardService) loadOwnSession(ctx context.Context, auth models.AuthContext, sessionID string) (*models.BookingSession, error) {
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != auth.UserID {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// loadBookableService fetches a service for booking. Pending listings are
// only bookable by their owner or an admin; everyone else sees them as
// missing.
func (s *DefaultWizardService) loadBookableService(auth models.AuthContext, serviceID string) (*models.Service, error) {
	svc, err := s.Services.GetByID(serviceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load service: %w", err)
	}
	if !svc.IsApproved() && !auth.IsAdmin() {
		guide, err := s.Guides.GetByID(svc.GuideID)
		if err != nil || !auth.Owns(guide) {
			return nil, serviceRepo.ErrNotFound
		}
	}
	return svc, nil
}

// applyServiceSelection snapshots the chosen service into the aggregate and
// rederives the total for a single participant.
func applyServiceSelection(session *models.BookingSession, svc *models.Service) {
	session.GuideID = svc.GuideID
	session.ServiceID = svc.ID
	session.ServiceTitle = svc.Title
	session.ServicePrice = svc.Price
	session.ServiceMaxPeople = svc.BookableCapacity()
	session.People = 1
	session.TotalPrice = TotalPrice(svc, 1)
}
