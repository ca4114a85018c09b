package user

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var alphanumeric = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// ========================================
// AUTH DTOs
// ========================================

// RegisterRequest - POST /auth/register and /auth/register/admin
type RegisterRequest struct {
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserName,
			validation.Required,
			validation.Length(1, 256),
			validation.Match(alphanumeric).Error("must contain only letters and digits"),
		),
		validation.Field(&r.Email,
			validation.Required,
			validation.Length(5, 256),
			is.EmailFormat.Error("must be a valid email address"),
		),
		validation.Field(&r.Password,
			validation.Required,
			validation.Length(1, 256),
		),
	)
}

// LoginRequest - POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required,
			validation.Length(5, 256),
			is.EmailFormat.Error("must be a valid email address"),
		),
		validation.Field(&r.Password,
			validation.Required,
			validation.Length(1, 256),
		),
	)
}

// TokenResponse carries a freshly issued bearer token.
type TokenResponse struct {
	BearerToken string `json:"bearerToken"`
}
