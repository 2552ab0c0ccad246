package domain

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Profile holds display data for a user. ID is the user's identity from the
// session; there is exactly one profile per user.
type Profile struct {
	ID        uuid.UUID
	FullName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MaxFullNameLength bounds Profile.FullName in runes.
const MaxFullNameLength = 200

// ValidateProfile checks the profile's display name length.
func ValidateProfile(p Profile) error {
	if utf8.RuneCountInString(p.FullName) > MaxFullNameLength {
		return invalid("full_name", "full_name_too_long", "full_name must be at most 200 characters")
	}
	return nil
}
