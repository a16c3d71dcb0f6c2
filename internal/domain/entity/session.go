// Package entity defines the core business entities for the domain layer.
package entity

// Gender represents the user's declared gender.
type Gender string

const (
	GenderUnknown Gender = "unknown"
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderOther   Gender = "other"
)

// IsValid reports whether g is one of the known genders.
func (g Gender) IsValid() bool {
	switch g {
	case GenderUnknown, GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// UserProfile is the authenticated user as known by the backend.
type UserProfile struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Gender   Gender `json:"gender"`
}

// Session is the authenticated identity held by the running client.
// Token and User are always set and cleared together.
type Session struct {
	Token string
	User  UserProfile
}
