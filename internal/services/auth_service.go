package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ortholink/exercise-service/internal/models"
)

// AuthService is the authentication boundary. The product intentionally ships
// without a real identity provider: any well-formed submission yields a
// profile. The interface exists so a real provider can replace the stub
// without touching the session flow.
type AuthService interface {
	Signup(ctx context.Context, req SignupRequest) (*models.Profile, error)
	Login(ctx context.Context, req LoginRequest) (*models.Profile, error)
}

type SignupRequest struct {
	Email     string      `json:"email" validate:"required,email"`
	Password  string      `json:"password" validate:"required,min=6"`
	FirstName string      `json:"first_name" validate:"required"`
	LastName  string      `json:"last_name" validate:"required"`
	Role      models.Role `json:"role" validate:"required,role"`
	Workplace string      `json:"workplace"`
	Wilaya    string      `json:"wilaya"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// stubAuthService accepts every well-formed credential pair. It never stores
// passwords and never rejects a login.
type stubAuthService struct {
	logger *slog.Logger
}

func NewStubAuthService(logger *slog.Logger) AuthService {
	return &stubAuthService{logger: logger}
}

func (s *stubAuthService) Signup(ctx context.Context, req SignupRequest) (*models.Profile, error) {
	profile := &models.Profile{
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
		Workplace: req.Workplace,
		Wilaya:    req.Wilaya,
	}
	s.logger.Info("signup accepted", "email", profile.Email, "role", profile.Role)
	return profile, nil
}

func (s *stubAuthService) Login(ctx context.Context, req LoginRequest) (*models.Profile, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	// No credential check: the profile is derived from the email alone.
	name := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		name = email[:at]
	}
	profile := &models.Profile{
		Email:     email,
		FirstName: name,
		Role:      models.RoleParent,
	}
	s.logger.Info("login accepted", "email", email)
	return profile, nil
}
