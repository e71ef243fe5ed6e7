package booking

import (
	"fmt"
	"time"

	"pescalia/models"
)

// Payment methods accepted at the final wizard step.
const (
	PaymentMethodCreditCard = "credit-card"
	PaymentMethodWebpay     = "webpay"
)

// TimeSlots is the fixed list of departure times offered at step 2.
var TimeSlots = []string{"06:00", "08:00", "10:00", "14:00", "16:00"}

const dateLayout = "2006-01-02"

// TotalPrice derives the wizard total. No taxes, discounts or currency
// conversion happen at this layer; the handler-level USD figure is display
// only and never feeds back here.
func TotalPrice(service *models.Service, people int) int64 {
	return service.Price * int64(people)
}

// ValidatePeople rejects participant counts outside [1, capacity].
func ValidatePeople(people, capacity int) error {
	if people < 1 || people > capacity {
		return NewValidationError("people", fmt.Sprintf("must be between 1 and %d", capacity))
	}
	return nil
}

// ValidateDate requires a parseable YYYY-MM-DD date that is not in the past.
func ValidateDate(date string, now time.Time) error {
	d, err := time.ParseInLocation(dateLayout, date, now.Location())
	if err != nil {
		return NewValidationError("date", "must be a valid YYYY-MM-DD date")
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if d.Before(today) {
		return NewValidationError("date", "must not be in the past")
	}
	return nil
}

// ValidateTimeSlot requires one of the fixed departure slots.
func ValidateTimeSlot(slot string) error {
	for _, s := range TimeSlots {
		if s == slot {
			return nil
		}
	}
	return NewValidationError("time", "must be one of the offered departure times")
}

// ValidatePaymentMethod requires one of the closed set of payment methods.
func ValidatePaymentMethod(method string) error {
	if method != PaymentMethodCreditCard && method != PaymentMethodWebpay {
		return NewValidationError("paymentMethod", "unsupported payment method")
	}
	return nil
}
