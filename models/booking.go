package models

import "time"

// WizardStep identifies a step of the booking wizard. Transitions are
// strictly linear: Service -> Schedule -> Contact -> Payment, then Confirm.
type WizardStep int

const (
	StepService  WizardStep = 1
	StepSchedule WizardStep = 2
	StepContact  WizardStep = 3
	StepPayment  WizardStep = 4
)

// CustomerInfo is the contact block collected at step 3.
type CustomerInfo struct {
	Name            string `bson:"name" json:"name"`
	Email           string `bson:"email" json:"email"`
	Phone           string `bson:"phone" json:"phone"`
	SpecialRequests string `bson:"specialRequests,omitempty" json:"specialRequests,omitempty"`
}

// BookingSession is the transient wizard aggregate. It lives in the session
// store between requests and is discarded on cancel or successful confirm.
// ServicePrice and ServiceMaxPeople are a snapshot of the currently selected
// service; re-selecting a service replaces the snapshot so the derived total
// can never come from a stale selection.
type BookingSession struct {
	SessionID        string       `json:"sessionId"`
	UserID           string       `json:"userId"`
	Step             WizardStep   `json:"step"`
	GuideID          string       `json:"guideId"`
	ServiceID        string       `json:"serviceId"`
	ServiceTitle     string       `json:"serviceTitle,omitempty"`
	ServicePrice     int64        `json:"servicePrice"`
	ServiceMaxPeople int          `json:"serviceMaxPeople"`
	Date             string       `json:"date,omitempty"` // "2006-01-02"
	Time             string       `json:"time,omitempty"` // slot from booking.TimeSlots
	People           int          `json:"people"`
	TotalPrice       int64        `json:"totalPrice"`
	PaymentMethod    string       `json:"paymentMethod,omitempty"`
	Customer         CustomerInfo `json:"customer,omitzero"`
	CreatedAt        time.Time    `json:"createdAt"`
}

// Booking statuses.
const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Booking is the durable record written when a wizard session is confirmed.
// Its ID doubles as the confirmation identifier returned to the client.
type Booking struct {
	ID              string       `bson:"id" json:"id"`
	GuideID         string       `bson:"guideId" json:"guideId"`
	ServiceID       string       `bson:"serviceId" json:"serviceId"`
	UserID          string       `bson:"userId" json:"userId"`
	Date            string       `bson:"date" json:"date"`
	Time            string       `bson:"time" json:"time"`
	People          int          `bson:"people" json:"people"`
	TotalPrice      int64        `bson:"totalPrice" json:"totalPrice"`
	PaymentMethod   string       `bson:"paymentMethod" json:"paymentMethod"`
	PaymentIntentID string       `bson:"paymentIntentId,omitempty" json:"paymentIntentId,omitempty"`
	Customer        CustomerInfo `bson:"customer" json:"customer"`
	TermsAcceptedAt time.Time    `bson:"termsAcceptedAt" json:"termsAcceptedAt"`
	Status          string       `bson:"status" json:"status"`
	CreatedAt       time.Time    `bson:"createdAt" json:"createdAt"`
}
