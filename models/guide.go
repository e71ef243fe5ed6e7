package models

import "time"

// Guide is a fishing guide's public profile. OwnerUserID links the profile to
// the platform account that controls it; FCMToken is kept out of API
// responses and only used for push delivery.
type Guide struct {
	ID          string    `bson:"id" json:"id"`
	OwnerUserID string    `bson:"ownerUserId" json:"ownerUserId"`
	Name        string    `bson:"name" json:"name"`
	Age         int       `bson:"age,omitempty" json:"age,omitempty"`
	Location    string    `bson:"location" json:"location"`
	Bio         string    `bson:"bio,omitempty" json:"bio,omitempty"`
	Languages   []string  `bson:"languages,omitempty" json:"languages,omitempty"`
	Specialties []string  `bson:"specialties,omitempty" json:"specialties,omitempty"`
	Phone       string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Email       string    `bson:"email,omitempty" json:"email,omitempty"`
	Rating      float64   `bson:"rating" json:"rating"`
	ReviewCount int       `bson:"reviewCount" json:"reviewCount"`
	FCMToken    string    `bson:"fcmToken,omitempty" json:"-"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// GuideSummary is the listing projection of a guide. PendingCount is only
// populated on admin surfaces.
type GuideSummary struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Location     string  `json:"location"`
	Rating       float64 `json:"rating"`
	ReviewCount  int     `json:"reviewCount"`
	PendingCount int64   `json:"pendingCount,omitempty"`
}
