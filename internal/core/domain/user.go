package domain

import (
	"strings"
	"unicode"
)

// User represents an employee in the directory.
type User struct {
	UserID             string  `json:"id"`
	FullName           string  `json:"fullName"`
	Email              string  `json:"email"`
	Location           string  `json:"location,omitempty"`
	Phone              string  `json:"phone,omitempty"`
	ReportingManagerID string  `json:"reportingManager,omitempty"`
	ProfilePicPath     string  `json:"profilePicPath,omitempty"`
	PasswordHash       *string `json:"-"`
	IsActive           bool    `json:"isActive"`
	AuditFields
}

// DisplayName returns the full name with each word capitalized.
func (u *User) DisplayName() string {
	return CapitalizeWords(u.FullName)
}

// CapitalizeWords upper-cases the first letter of each word and lower-cases the rest.
func CapitalizeWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// UserProfile is the public profile of a user.
type UserProfile struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Location         string `json:"location"`
	Phone            string `json:"phone"`
	Role             string `json:"role"`
	ReportingManager string `json:"reporting_manager"`
	ProfilePicPath   string `json:"profile_pic_path"`
}
