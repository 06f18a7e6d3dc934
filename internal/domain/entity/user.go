// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core account record, representing a unique person in the system.
// The marketplace-facing identity lives on the associated Profile; the User
// only carries credentials, the account type and the staff flag.
type User struct {
	ID           uuid.UUID // The Global Unique Identifier (GUID) for the user.
	Username     string    // Login identifier, unique across the system.
	Email        string    // Contact email, unique across the system.
	PasswordHash string    // bcrypt hash of the password. Never serialized.
	Type         Role      // Account type: customer or business.
	IsStaff      bool      // Administrator flag; staff may delete orders.
	Profile      *Profile  // The 1:1 marketplace profile. Nil only before registration completes.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}

// Profile is the marketplace-facing identity record, distinct from the bare
// account. Business-only fields (Location, Tel, Description, WorkingHours)
// stay empty for customer profiles.
type Profile struct {
	ID           uuid.UUID // The GUID for the profile.
	UserID       uuid.UUID // Foreign key linking this profile to its owning User.
	Username     string    // Denormalized from the owning user for serialization.
	Type         Role      // Denormalized account type of the owning user.
	Email        string    // Denormalized contact email of the owning user.
	FirstName    string
	LastName     string
	File         string // Stored key/URL of the uploaded profile picture.
	Location     string
	Tel          string
	Description  string
	WorkingHours string
	UploadedAt   time.Time // Timestamp of when the profile was created.
}
