package domain

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	apperrors "github.com/spec-kit/materials-service/pkg/util"
)

// UserType classifies an account holder.
type UserType string

const (
	UserTypeIndividual   UserType = "Curious individual"
	UserTypeProfessional UserType = "Professional"
)

// Interest records which side of a building the user cares about.
type Interest string

const (
	InterestExterior Interest = "Exterior"
	InterestInterior Interest = "Interior"
	InterestBoth     Interest = "Both"
)

// User is the domain model for account holders.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Username     string
	UserType     UserType
	Company      string
	Interest     Interest
	Occupation   string
	AvatarURL    string
	AgreeToTerms bool
	WishList     []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]{2,}$`)

// NormalizeEmail lowercases and trims an address. Emails are stored and
// compared in this form, which is what makes the uniqueness check
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail reports whether the address has a local@domain.tld shape.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidPassword enforces the signup password policy: at least 6 characters
// with at least one digit, one lowercase and one uppercase letter.
func ValidPassword(password string) bool {
	if len(password) < 6 {
		return false
	}
	var digit, lower, upper bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		}
	}
	return digit && lower && upper
}

// Valid reports whether the value is one of the known user types. The empty
// value is allowed, the field is optional.
func (t UserType) Valid() bool {
	switch t {
	case "", UserTypeIndividual, UserTypeProfessional:
		return true
	}
	return false
}

// Valid reports whether the value is one of the known interests. The empty
// value is allowed, the field is optional.
func (i Interest) Valid() bool {
	switch i {
	case "", InterestExterior, InterestInterior, InterestBoth:
		return true
	}
	return false
}

// Validate checks field constraints ahead of a persistence write.
func (u *User) Validate() error {
	if u.Email == "" {
		return apperrors.NewValidationError("Email is required.", nil)
	}
	if !ValidEmail(u.Email) {
		return apperrors.NewValidationError("Please provide a valid email address.", nil)
	}
	if u.PasswordHash == "" {
		return apperrors.NewValidationError("Password is required.", nil)
	}
	if u.Username == "" {
		return apperrors.NewValidationError("Username is required.", nil)
	}
	if !u.UserType.Valid() {
		return apperrors.NewValidationError("Unknown user type.", map[string]any{"userType": u.UserType})
	}
	if !u.Interest.Valid() {
		return apperrors.NewValidationError("Unknown interest.", map[string]any{"interest": u.Interest})
	}
	return nil
}
