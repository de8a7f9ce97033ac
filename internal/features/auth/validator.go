package auth

import (
	"errors"
	"strings"

	"github.com/arjunms/dailydo/internal/pkg/validator"
)

var (
	ErrInvalidEmail = errors.New("a valid email address is required")
	ErrWeakPassword = errors.New("password must be at least 8 characters with upper, lower and digit")
	ErrInvalidName  = errors.New("name must be between 2 and 50 characters")
)

func ValidateRegister(req *RegisterRequest) error {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)

	if !validator.IsValidEmail(req.Email) {
		return ErrInvalidEmail
	}
	if !validator.IsStrongPassword(req.Password) {
		return ErrWeakPassword
	}
	if len(req.Name) < 2 || len(req.Name) > 50 || !validator.IsValidName(req.Name) {
		return ErrInvalidName
	}
	return nil
}

func ValidateLogin(req *LoginRequest) error {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if !validator.IsValidEmail(req.Email) {
		return ErrInvalidEmail
	}
	if req.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

func ValidateUpdateProfile(req *UpdateProfileRequest) error {
	req.Name = strings.TrimSpace(req.Name)

	if req.Name == "" {
		return errors.New("no fields to update")
	}
	if len(req.Name) < 2 || len(req.Name) > 50 || !validator.IsValidName(req.Name) {
		return ErrInvalidName
	}
	return nil
}
