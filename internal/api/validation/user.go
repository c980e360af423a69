package validation

import (
	"regexp"
	"strings"

	"github.com/helpdesk14/helpdesk/internal/user"
)

var (
	emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	alnumRegex = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
)

const (
	letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits  = "0123456789"
)

// FieldError represents a validation error on a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateEmail checks the email field; empty field name defaults to "email".
func ValidateEmail(email string) []FieldError {
	var errs []FieldError

	if email == "" {
		errs = append(errs, FieldError{Field: "email", Message: "email is required"})
	} else if !emailRegex.MatchString(email) {
		errs = append(errs, FieldError{Field: "email", Message: "email must be a valid address"})
	}

	return errs
}

// ValidatePassword enforces the password-strength contract: alphanumeric
// only, with at least one letter and one digit. This runs before hashing;
// the hasher itself accepts anything.
func ValidatePassword(password string) []FieldError {
	var errs []FieldError

	switch {
	case password == "":
		errs = append(errs, FieldError{Field: "password", Message: "password is required"})
	case !alnumRegex.MatchString(password):
		errs = append(errs, FieldError{Field: "password", Message: "password must contain only letters and digits"})
	case !strings.ContainsAny(password, letters) || !strings.ContainsAny(password, digits):
		errs = append(errs, FieldError{Field: "password", Message: "password must contain at least one letter and one digit"})
	}

	return errs
}

// RegisterRequest mirrors the fields needed for registration validation.
type RegisterRequest struct {
	Email     string
	Password  string
	Role      string
	FirstName string
	LastName  string
}

// ValidateRegisterRequest validates the fields of a registration request.
// Returns a slice of field errors; empty slice means valid.
func ValidateRegisterRequest(req RegisterRequest) []FieldError {
	errs := ValidateEmail(req.Email)
	errs = append(errs, ValidatePassword(req.Password)...)

	if req.Role == "" {
		errs = append(errs, FieldError{Field: "role", Message: "role is required"})
	} else if _, err := user.ParseRole(req.Role); err != nil {
		errs = append(errs, FieldError{Field: "role", Message: "role must be USER or TECH"})
	}

	if len(req.FirstName) > 255 {
		errs = append(errs, FieldError{Field: "firstName", Message: "firstName must be at most 255 characters"})
	}
	if len(req.LastName) > 255 {
		errs = append(errs, FieldError{Field: "lastName", Message: "lastName must be at most 255 characters"})
	}

	return errs
}

// LoginRequest mirrors the fields needed for login validation.
type LoginRequest struct {
	Email    string
	Password string
}

// ValidateLoginRequest validates the fields of a login request. Only
// presence is checked: the password pattern is a registration contract, and
// rejecting badly shaped passwords here would leak which rule failed.
func ValidateLoginRequest(req LoginRequest) []FieldError {
	var errs []FieldError

	if req.Email == "" {
		errs = append(errs, FieldError{Field: "email", Message: "email is required"})
	}
	if req.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "password is required"})
	}

	return errs
}

// UpdateUserRequest mirrors the fields needed for user update validation.
// Password is optional; when present it must satisfy the strength pattern.
type UpdateUserRequest struct {
	Email     string
	Password  string
	Role      string
	FirstName string
	LastName  string
}

// ValidateUpdateUserRequest validates the fields of a user update request.
func ValidateUpdateUserRequest(req UpdateUserRequest) []FieldError {
	errs := ValidateEmail(req.Email)

	if req.Password != "" {
		errs = append(errs, ValidatePassword(req.Password)...)
	}

	if req.Role == "" {
		errs = append(errs, FieldError{Field: "role", Message: "role is required"})
	} else if _, err := user.ParseRole(req.Role); err != nil {
		errs = append(errs, FieldError{Field: "role", Message: "role must be USER or TECH"})
	}

	return errs
}
