package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-hotel-pms/internal/access"
	"go-hotel-pms/internal/model"
	"go-hotel-pms/internal/repository"
	"go-hotel-pms/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrSessionTimeout     = errors.New("session expired due to inactivity")
	ErrSessionReplaced    = errors.New("session expired (logged in on another device)")
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResponse, error)
	ResetPassword(ctx context.Context, email, oldPassword, newPassword string) error
	SetPassword(ctx context.Context, email, newPassword string) error
	ValidateToken(ctx context.Context, tokenString string) (*TokenValidationResponse, error)
	Heartbeat(ctx context.Context, userID string) error
}

type LoginResponse struct {
	Token       string             `json:"token"`
	ExpiresAt   time.Time          `json:"expires_at"`
	User        model.UserResponse `json:"user"`
	Role        model.RoleResponse `json:"role"`
	Permissions []string           `json:"permissions"` // re-derived from the role catalog, not the stored snapshot
}

type TokenValidationResponse struct {
	Actor       Actor              `json:"actor"`
	User        model.UserResponse `json:"user"`
	Permissions []string           `json:"permissions"`
}

type authService struct {
	userRepo    repository.UserRepository
	signer      *jwt.Signer
	evaluator   *access.Evaluator
	idleTimeout time.Duration
	logger      *zap.Logger
	now         func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, signer *jwt.Signer, evaluator *access.Evaluator, idleTimeout time.Duration, logger *zap.Logger) AuthService {
	return &authService{
		userRepo:    userRepo,
		signer:      signer,
		evaluator:   evaluator,
		idleTimeout: idleTimeout,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	// 1. Find user by email
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	// 2. Check if user is active
	if !user.IsActive || user.Status != model.UserStatusActive {
		return nil, ErrUserInactive
	}

	// 3. Verify password
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	// 4. Single session: a new token version invalidates every older token
	now := s.now()
	user.TokenVersion = uuid.New().String()
	user.LastSeenAt = &now
	if err := s.userRepo.StartSession(ctx, user.ID, user.TokenVersion, now); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserInactive
		}
		s.logger.Error("failed to start session", zap.String("user_id", user.ID), zap.Error(err))
		return nil, errors.New("failed to update session")
	}

	// 5. Generate JWT token with TokenVersion
	token, err := s.signer.GenerateToken(jwt.Claims{
		UserID:       user.ID,
		HotelID:      user.HotelID,
		Role:         user.Role,
		Department:   user.Department,
		Email:        user.Email,
		Name:         user.FullName,
		TokenVersion: user.TokenVersion,
	})
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID), zap.String("hotel_id", user.HotelID))

	var role model.RoleResponse
	if r, ok := s.evaluator.Catalog().Role(user.Role); ok {
		role = model.NewRoleResponse(s.evaluator.Catalog(), r)
	}
	return &LoginResponse{
		Token:       token,
		ExpiresAt:   now.Add(s.signer.TTL()),
		User:        user.ToResponse(),
		Role:        role,
		Permissions: s.evaluator.EffectivePermissions(user.Role, user.Department).Strings(),
	}, nil
}

func (s *authService) ResetPassword(ctx context.Context, email, oldPassword, newPassword string) error {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return ErrUserNotFound
	}
	if !user.CheckPassword(oldPassword) {
		return ErrWrongPassword
	}
	return s.replacePassword(ctx, user, newPassword)
}

// SetPassword resets a password without the old one. Used by the operator CLI.
func (s *authService) SetPassword(ctx context.Context, email, newPassword string) error {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return ErrUserNotFound
	}
	return s.replacePassword(ctx, user, newPassword)
}

func (s *authService) replacePassword(ctx context.Context, user *model.HotelUser, newPassword string) error {
	if len(newPassword) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	if err := user.SetPassword(newPassword); err != nil {
		return errors.New("failed to hash new password")
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, user.Password); err != nil {
		return err
	}
	// Invalidate existing sessions
	return s.userRepo.UpdateTokenVersion(ctx, user.ID, uuid.New().String())
}

func (s *authService) ValidateToken(ctx context.Context, tokenString string) (*TokenValidationResponse, error) {
	// 1. Validate JWT token
	claims, err := s.signer.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	// 2. Find user by ID from token claims
	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	// 3. Check if user is still active
	if !user.IsActive || user.Status != model.UserStatusActive {
		return nil, ErrUserInactive
	}

	// 4. Strict single session
	if user.TokenVersion != claims.TokenVersion {
		return nil, ErrSessionReplaced
	}

	// 5. Idle timeout; a session without a heartbeat is treated as idle
	if s.idleTimeout > 0 {
		if user.LastSeenAt == nil || s.now().Sub(*user.LastSeenAt) > s.idleTimeout {
			return nil, ErrSessionTimeout
		}
	}

	// Role, hotel and department come from the row, not the token, so a role
	// change takes effect on the next request.
	actor := Actor{
		UserID:     user.ID,
		HotelID:    user.HotelID,
		Role:       user.Role,
		Department: user.Department,
		Email:      user.Email,
	}
	return &TokenValidationResponse{
		Actor:       actor,
		User:        user.ToResponse(),
		Permissions: s.evaluator.EffectivePermissions(user.Role, user.Department).Strings(),
	}, nil
}

func (s *authService) Heartbeat(ctx context.Context, userID string) error {
	return s.userRepo.UpdateLastSeen(ctx, userID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
