package password

import (
	"errors"
	"strings"
	"unicode"
)

// Policy violation errors. The messages are returned to the client verbatim,
// so they double as the API's 400 bodies.
var (
	ErrTooShort               = errors.New("Password must be longer than 8 characters")
	ErrTooLong                = errors.New("Password must be less than 72 characters")
	ErrPaddedWhitespace       = errors.New("Password must not start or end with empty spaces")
	ErrInsufficientComplexity = errors.New("Password must contain 1 upper case, lower case, number and special character")
)

// specialChars is the fixed set that satisfies the special-character rule.
const specialChars = "!@#$%^&*()_-+={}[]\\|:;\"'<>,.?/~`"

// Validate checks a candidate plaintext password against the account password
// policy. Rules are evaluated in a fixed order and the first violation wins,
// so callers always see a single deterministic error for a given input.
func Validate(password string) error {
	if len(password) < 8 {
		return ErrTooShort
	}
	if len(password) > 72 {
		return ErrTooLong
	}
	if strings.TrimSpace(password) != password {
		return ErrPaddedWhitespace
	}

	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(specialChars, r):
			special = true
		}
	}
	if !upper || !lower || !digit || !special {
		return ErrInsufficientComplexity
	}

	return nil
}
