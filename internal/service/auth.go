package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront-service/internal/models"
	"storefront-service/internal/redisclient"
	"storefront-service/internal/store"
	"storefront-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned for a wrong email or password;
	// the two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthenticated is returned when a session token is missing,
	// unknown or expired.
	ErrUnauthenticated = errors.New("unauthenticated")
)

// AuthService handles staff sign-up/sign-in and redis-backed sessions
type AuthService struct {
	store      *store.Store
	redis      *redisclient.Client
	sessionTTL time.Duration
	logger     *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(store *store.Store, redis *redisclient.Client, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		store:      store,
		redis:      redis,
		sessionTTL: sessionTTL,
		logger:     util.GetLogger(),
	}
}

// SignUpRequest registers a staff profile bound to a tenant
type SignUpRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Name     string  `json:"name" binding:"required"`
	Password string  `json:"password" binding:"required,min=8"`
	Role     string  `json:"role"`
	TenantID *string `json:"tenant_id,omitempty"`
}

// SignUp creates a profile with a bcrypt password hash
func (as *AuthService) SignUp(ctx context.Context, req *SignUpRequest) (*models.Profile, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = models.RoleStaff
	}

	profile := &models.Profile{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Name:         req.Name,
		PasswordHash: string(hash),
		Role:         role,
		TenantID:     req.TenantID,
	}

	if err := as.store.CreateProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	as.logger.Info("Profile created", zap.String("profile_id", profile.ID))
	return profile, nil
}

// Session is a signed-in staff session
type Session struct {
	Token   string          `json:"token"`
	Profile *models.Profile `json:"profile"`
}

// SignIn verifies credentials and issues a session token
func (as *AuthService) SignIn(ctx context.Context, email, password string) (*Session, error) {
	profile, err := as.store.GetProfileByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token := uuid.New().String()
	if err := as.redis.SetSession(ctx, token, profile.ID, as.sessionTTL); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	as.logger.Info("Staff signed in", zap.String("profile_id", profile.ID))
	return &Session{Token: token, Profile: profile}, nil
}

// Authenticate resolves a session token to its profile
func (as *AuthService) Authenticate(ctx context.Context, token string) (*models.Profile, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	profileID, err := as.redis.GetSession(ctx, token)
	if err != nil {
		return nil, err
	}
	if profileID == "" {
		return nil, ErrUnauthenticated
	}

	profile, err := as.store.GetProfileByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	return profile, nil
}

// SignOut invalidates a session token. Idempotent.
func (as *AuthService) SignOut(ctx context.Context, token string) error {
	return as.redis.DeleteSession(ctx, token)
}
