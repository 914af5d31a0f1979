package services

import (
	"errors"
	"net/mail"
	"strings"
	"unicode"
)

var (
	ErrAuthCredentialsMissing = errors.New("auth credentials missing")
	ErrAuthCredentialsInvalid = errors.New("auth credentials invalid")
	ErrAuthEmailInvalid       = errors.New("auth email invalid")
	ErrWeakPassword           = errors.New("weak password")
	ErrPasswordWhitespace     = errors.New("password has surrounding whitespace")
)

const minPasswordLength = 8

func NormalizeAuthEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return ""
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ""
	}
	return email
}

// NormalizeCredentialsInput trims the email and passes the password through
// untouched, since it is compared exactly as it was hashed. Blank fields are
// reported as missing; a malformed email is reported as invalid credentials so
// login never reveals which half was wrong.
func NormalizeCredentialsInput(emailRaw string, password string) (string, string, error) {
	trimmedEmail := strings.TrimSpace(emailRaw)
	if trimmedEmail == "" || strings.TrimSpace(password) == "" {
		return "", "", ErrAuthCredentialsMissing
	}
	email := NormalizeAuthEmail(trimmedEmail)
	if email == "" {
		return "", "", ErrAuthCredentialsInvalid
	}
	return email, password, nil
}

// ValidatePasswordStrength applies to every password that gets hashed.
// Surrounding whitespace is refused because terminals and forms drop it
// unpredictably.
func ValidatePasswordStrength(password string) error {
	if password != strings.TrimSpace(password) {
		return ErrPasswordWhitespace
	}
	if len([]rune(password)) < minPasswordLength {
		return ErrWeakPassword
	}

	hasLetter := false
	hasDigit := false
	for _, char := range password {
		switch {
		case unicode.IsLetter(char):
			hasLetter = true
		case unicode.IsDigit(char):
			hasDigit = true
		}
	}

	if hasLetter && hasDigit {
		return nil
	}
	return ErrWeakPassword
}
