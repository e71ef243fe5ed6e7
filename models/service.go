package models

import "time"

// ApprovalStatus is the externally visible approval state of a service.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
)

// Difficulty levels for a guided trip.
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Service is a bookable trip offered by a guide. Price is in Chilean pesos,
// which carry no minor units, so an integer amount is exact.
//
// Approved is deliberately a pointer: documents written before the approval
// workflow existed have no flag at all, and those must read as pending. Use
// NormalizeApproval to collapse the three persisted states.
type Service struct {
	ID          string    `bson:"id" json:"id"`
	GuideID     string    `bson:"guideId" json:"guideId"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Price       int64     `bson:"price" json:"price"`
	MaxPeople   int       `bson:"maxPeople" json:"maxPeople"`
	Duration    string    `bson:"duration,omitempty" json:"duration,omitempty"`
	Difficulty  string    `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
	Includes    []string  `bson:"includes,omitempty" json:"includes,omitempty"`
	Location    string    `bson:"location,omitempty" json:"location,omitempty"`
	Approved    *bool     `bson:"approved,omitempty" json:"approved,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// NormalizeApproval collapses the persisted tri-state flag (true, false,
// missing) into the two observable states. Only an explicit true counts as
// approved.
func NormalizeApproval(approved *bool) ApprovalStatus {
	if approved != nil && *approved {
		return ApprovalApproved
	}
	return ApprovalPending
}

// Status returns the normalized approval state of the service.
func (s *Service) Status() ApprovalStatus {
	return NormalizeApproval(s.Approved)
}

// IsApproved reports whether the service is publicly visible and bookable.
func (s *Service) IsApproved() bool {
	return NormalizeApproval(s.Approved) == ApprovalApproved
}

// BookableCapacity returns the people limit enforced by the booking wizard.
// Listings persisted with a non-positive limit still admit a single angler.
func (s *Service) BookableCapacity() int {
	if s.MaxPeople < 1 {
		return 1
	}
	return s.MaxPeople
}
