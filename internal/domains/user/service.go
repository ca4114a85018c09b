package user

import "context"

// Service registers principals and issues their bearer tokens.
type Service interface {
	// Register creates a principal with the User role.
	Register(ctx context.Context, req RegisterRequest) (*TokenResponse, error)
	// RegisterAdmin creates a principal with the Admin and User roles.
	RegisterAdmin(ctx context.Context, req RegisterRequest) (*TokenResponse, error)
	Login(ctx context.Context, req LoginRequest) (*TokenResponse, error)
}
