package models

import "time"

// ContactInfo is the optional contact block of a public profile. Its
// presence in a projection is the signal that the owner opted in; handles
// are carried exactly as stored, including empty strings.
type ContactInfo struct {
	ContactEmail string      `json:"contactEmail"`
	Phone        string      `json:"phone"`
	SocialMedia  SocialMedia `json:"socialMedia"`
}

// PublicProfile is the public-facing view of a user.
type PublicProfile struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Avatar      string       `json:"avatar"`
	Bio         string       `json:"bio"`
	CreatedAt   time.Time    `json:"createdAt"`
	Recipes     []*Recipe    `json:"recipes"`
	ContactInfo *ContactInfo `json:"contactInfo,omitempty"`
}

// ProjectProfile builds the public profile for a user. The contact block is
// embedded if and only if the user enabled ShowContactInfo; the flag is a
// global switch, not a per-viewer control. Contact fields stay persisted
// either way.
func ProjectProfile(user *User) *PublicProfile {
	profile := &PublicProfile{
		ID:        user.ID,
		Name:      user.Name,
		Avatar:    user.Avatar,
		Bio:       user.Bio,
		CreatedAt: user.CreatedAt,
	}
	if user.ShowContactInfo {
		profile.ContactInfo = &ContactInfo{
			ContactEmail: user.ContactEmail,
			Phone:        user.Phone,
			SocialMedia:  user.SocialMedia,
		}
	}
	return profile
}
