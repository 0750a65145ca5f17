package validation

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// bcrypt ignores everything past 72 bytes.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,64}$`)

// validator.Validate caches struct metadata and is safe for concurrent use.
var validate = validator.New()

// ValidateEmail checks the address format (RFC 5321 length limit included).
func ValidateEmail(email string) *Error {
	if err := validate.Var(email, "required,email,max=254"); err != nil {
		return &Error{
			Reason:  ReasonInvalidValue,
			Fields:  []string{"email"},
			Message: "Invalid email format.",
		}
	}
	return nil
}

// ValidateUsername allows 3-64 letters, digits, underscores and hyphens.
func ValidateUsername(username string) *Error {
	if !usernamePattern.MatchString(username) {
		return &Error{
			Reason:  ReasonInvalidValue,
			Fields:  []string{"username"},
			Message: "Username must be 3-64 characters, alphanumeric and underscore/hyphen only.",
		}
	}
	return nil
}

func ValidatePassword(password string) *Error {
	if len(password) < MinPasswordLength || len(password) > MaxPasswordLength {
		return &Error{
			Reason:  ReasonInvalidValue,
			Fields:  []string{"password"},
			Message: fmt.Sprintf("Password must be between %d and %d bytes long.", MinPasswordLength, MaxPasswordLength),
		}
	}
	return nil
}
