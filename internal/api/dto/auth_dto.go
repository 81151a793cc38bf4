package dto

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const (
	msgNameRequired  = "El nombre es obligatorio"
	msgEmailRequired = "El email es obligatorio"
	msgPasswordShort = "El password debe de ser 6 caracteres"
	minPasswordLen   = 6
)

// RegisterRequest payload for POST /auth/new.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the registration payload.
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error(msgNameRequired),
			notBlank(msgNameRequired),
		),
		validation.Field(&r.Email,
			validation.Required.Error(msgEmailRequired),
			is.Email.Error(msgEmailRequired),
		),
		validation.Field(&r.Password,
			validation.Required.Error(msgPasswordShort),
			validation.RuneLength(minPasswordLen, 0).Error(msgPasswordShort),
		),
	)
}

// notBlank rejects strings that are empty once surrounding whitespace is removed.
func notBlank(msg string) validation.Rule {
	return validation.By(func(value interface{}) error {
		if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
			return errors.New(msg)
		}
		return nil
	})
}

// LoginRequest payload for POST /auth.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the login payload.
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error(msgEmailRequired),
			is.Email.Error(msgEmailRequired),
		),
		validation.Field(&r.Password,
			validation.Required.Error(msgPasswordShort),
			validation.RuneLength(minPasswordLen, 0).Error(msgPasswordShort),
		),
	)
}

// AuthResponse is returned by register, login and renew.
type AuthResponse struct {
	OK    bool   `json:"ok"`
	UID   string `json:"uid"`
	Name  string `json:"name"`
	Token string `json:"token"`
}
