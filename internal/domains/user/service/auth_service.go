package service

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"eduresource-api/internal/data"
	"eduresource-api/internal/domains/user"
	"eduresource-api/internal/models"
	"eduresource-api/pkg/database"
	"eduresource-api/pkg/jwt"
)

// authService implement user.Service interface
type authService struct {
	store      *data.Store
	tokens     *jwt.Manager
	bcryptCost int
	dummyHash  []byte
}

// NewAuthService builds the service. bcryptCost is the work factor for new hashes.
func NewAuthService(store *data.Store, tokens *jwt.Manager, bcryptCost int) user.Service {
	// compared against when the email is unknown so both login failures cost the same
	dummy, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcryptCost)

	return &authService{
		store:      store,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		dummyHash:  dummy,
	}
}

// ========================================
// REGISTRATION
// ========================================

func (s *authService) Register(ctx context.Context, req user.RegisterRequest) (*user.TokenResponse, error) {
	return s.register(ctx, req, models.RoleUser)
}

func (s *authService) RegisterAdmin(ctx context.Context, req user.RegisterRequest) (*user.TokenResponse, error) {
	return s.register(ctx, req, models.RoleAdmin, models.RoleUser)
}

func (s *authService) register(ctx context.Context, req user.RegisterRequest, roles ...string) (*user.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	uow := s.store.NewUnitOfWork()
	email := models.NormalizeEmail(req.Email)

	// 1. BUSINESS RULE: email must be unused
	existing, err := uow.Users.Get(ctx, sq.Eq{"email": email})
	if err != nil {
		return nil, fmt.Errorf("check email exists: %w", err)
	}
	if len(existing) > 0 {
		return nil, user.ErrEmailAlreadyExists
	}

	// 2. HASH PASSWORD
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 3. CREATE PRINCIPAL WITH ROLES
	u := &models.User{
		ID:           uuid.NewString(),
		UserName:     req.UserName,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	uow.Users.Insert(u)
	for _, role := range roles {
		r := &models.UserRole{UserID: u.ID, Role: role}
		uow.UserRoles.Insert(r)
		u.Roles = append(u.Roles, r)
	}

	if _, err := uow.Commit(ctx); err != nil {
		// lost a race with a concurrent registration
		if database.IsUniqueViolation(err) {
			return nil, user.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.issue(u)
}

// ========================================
// LOGIN
// ========================================

func (s *authService) Login(ctx context.Context, req user.LoginRequest) (*user.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	uow := s.store.NewUnitOfWork()
	users, err := uow.Users.Get(ctx, sq.Eq{"email": models.NormalizeEmail(req.Email)}, "Roles")
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	u, err := database.SingleOrDefault(users)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if u == nil {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(req.Password))
		return nil, user.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	return s.issue(u)
}

func (s *authService) issue(u *models.User) (*user.TokenResponse, error) {
	token, err := s.tokens.Issue(jwt.Identity{
		UserID:   u.ID,
		Email:    u.Email,
		UserName: u.UserName,
		Roles:    u.RoleNames(),
	})
	if err != nil {
		return nil, err
	}
	return &user.TokenResponse{BearerToken: token}, nil
}

