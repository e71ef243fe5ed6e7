package booking

import "pescalia/models"

// CanAdvance reports whether the session satisfies the guard of its current
// step. Step 4 has no advance guard here: confirmation takes the payment
// method and terms acceptance as explicit arguments.
func CanAdvance(s *models.BookingSession) bool {
	switch s.Step {
	case models.StepService:
		return s.ServiceID != ""
	case models.StepSchedule:
		return s.Date != "" && s.Time != ""
	case models.StepContact:
		return s.Customer.Name != "" && s.Customer.Email != "" && s.Customer.Phone != ""
	default:
		return false
	}
}

// advance moves the session forward one step if the current guard passes.
// On failure the session is untouched and no remote call is made.
func advance(s *models.BookingSession) error {
	if s.Step >= models.StepPayment {
		return NewValidationError("step", "already at the final step")
	}
	if !CanAdvance(s) {
		return NewValidationError("step", "current step is incomplete")
	}
	s.Step++
	return nil
}

// back moves the session one step back without clearing anything already
// entered. Going back from step 1 is a no-op.
func back(s *models.BookingSession) {
	if s.Step > models.StepService {
		s.Step--
	}
}
