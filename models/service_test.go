package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeApproval(t *testing.T) {
	approved := true
	pending := false

	assert.Equal(t, ApprovalApproved, NormalizeApproval(&approved))
	assert.Equal(t, ApprovalPending, NormalizeApproval(&pending))
	// Documents from before the approval workflow have no flag at all.
	assert.Equal(t, ApprovalPending, NormalizeApproval(nil))
}

func TestServiceIsApproved(t *testing.T) {
	approved := true
	pending := false

	assert.True(t, (&Service{Approved: &approved}).IsApproved())
	assert.False(t, (&Service{Approved: &pending}).IsApproved())
	assert.False(t, (&Service{}).IsApproved())
}

func TestBookableCapacity(t *testing.T) {
	assert.Equal(t, 6, (&Service{MaxPeople: 6}).BookableCapacity())
	// Defective listings still admit a single angler.
	assert.Equal(t, 1, (&Service{MaxPeople: 0}).BookableCapacity())
	assert.Equal(t, 1, (&Service{MaxPeople: -3}).BookableCapacity())
}

func TestAuthContextOwns(t *testing.T) {
	g := &Guide{ID: "g1", OwnerUserID: "u1"}

	assert.True(t, AuthContext{UserID: "u1"}.Owns(g))
	assert.False(t, AuthContext{UserID: "u2"}.Owns(g))
	assert.False(t, AuthContext{}.Owns(g))
	// A guide without an owner is owned by nobody, not by the anonymous user.
	assert.False(t, AuthContext{UserID: ""}.Owns(&Guide{ID: "g2"}))
	assert.False(t, AuthContext{UserID: "u1"}.Owns(nil))
}
