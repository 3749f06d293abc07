package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"darb_pms/internal/apperror"
	"darb_pms/internal/model"
	"darb_pms/internal/repository"
	"darb_pms/internal/utils"

	log "github.com/sirupsen/logrus"
)

// AuthService provides authentication related services
type AuthService interface {
	Register(ctx context.Context, username, password string) (*model.User, string, error)
	Login(ctx context.Context, username, password string) (*model.User, string, error)
	GetProfile(ctx context.Context, userID int) (*model.User, error)
	ChangePassword(ctx context.Context, userID int, oldPassword, newPassword string) error
	ListUsers(ctx context.Context) ([]model.User, error)
	ChangeRole(ctx context.Context, userID int, role string) (*model.User, error)
	CreateUser(ctx context.Context, username, password, role string) (*model.User, error)
}

type authService struct {
	userRepo             repository.UserRepository
	jwtUtil              *utils.JWTUtil
	initialAdminUsername string
}

// NewAuthService creates a new AuthService. A user registering with
// initialAdminUsername gets the admin role; pass "" to disable.
func NewAuthService(userRepo repository.UserRepository, jwtUtil *utils.JWTUtil, initialAdminUsername string) AuthService {
	return &authService{
		userRepo:             userRepo,
		jwtUtil:              jwtUtil,
		initialAdminUsername: initialAdminUsername,
	}
}

func validateCredentials(username, password string) error {
	if username == "" || password == "" {
		return ErrCredentialsRequired
	}
	if n := utf8.RuneCountInString(username); n < model.UsernameMinLen || n > model.UsernameMaxLen {
		return ErrUsernameLength
	}
	if utf8.RuneCountInString(password) < model.PasswordMinLen {
		return ErrPasswordTooShort
	}
	return nil
}

// Register creates a new user account and returns it with a fresh token.
func (s *authService) Register(ctx context.Context, username, password string) (*model.User, string, error) {
	username = strings.TrimSpace(username)
	userRole := model.RoleUser
	if s.initialAdminUsername != "" && username == s.initialAdminUsername {
		userRole = model.RoleAdmin
		log.WithField("username", username).Info("registering initial admin user")
	}

	user, err := s.createUser(ctx, username, password, userRole)
	if err != nil {
		return nil, "", err
	}

	token, err := s.jwtUtil.GenerateToken(user.ID, user.Username)
	if err != nil {
		log.WithFields(log.Fields{"user_id": user.ID, "username": user.Username}).WithError(err).
			Error("user created, but failed to generate token")
		return nil, "", apperror.Internal("failed to generate token", err)
	}

	return user, token, nil
}

// CreateUser provisions an account with an explicit role. No token is issued.
func (s *authService) CreateUser(ctx context.Context, username, password, role string) (*model.User, error) {
	if !model.IsValidRole(role) {
		return nil, ErrInvalidRole
	}
	user, err := s.createUser(ctx, strings.TrimSpace(username), password, role)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"user_id": user.ID, "username": user.Username, "role": role}).Info("user provisioned")
	return user, nil
}

func (s *authService) createUser(ctx context.Context, username, password, role string) (*model.User, error) {
	if err := validateCredentials(username, password); err != nil {
		return nil, err
	}

	_, err := s.userRepo.FindByUsername(ctx, username)
	switch {
	case err == nil:
		return nil, ErrUsernameTaken
	case !errors.Is(err, repository.ErrNotFound):
		return nil, apperror.Internal("failed to check existing user", err)
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, apperror.Internal("failed to hash password", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hashedPassword,
		Role:         role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		return nil, apperror.Internal("failed to create user", err)
	}
	return user, nil
}

// Login authenticates a user and returns a JWT token. Unknown users and wrong
// passwords produce the same error.
func (s *authService) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, "", ErrCredentialsRequired
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", apperror.Internal("failed to find user", err)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwtUtil.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, "", apperror.Internal("failed to generate token", err)
	}

	return user, token, nil
}

// GetProfile returns the user behind an authenticated request.
func (s *authService) GetProfile(ctx context.Context, userID int) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, apperror.Internal("failed to load profile", err)
	}
	return user, nil
}

// ChangePassword replaces the password after re-checking the current one.
func (s *authService) ChangePassword(ctx context.Context, userID int, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return apperror.Validation("oldPassword and newPassword are required")
	}
	if utf8.RuneCountInString(newPassword) < model.PasswordMinLen {
		return ErrPasswordTooShort
	}

	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	if !utils.CheckPasswordHash(oldPassword, user.PasswordHash) {
		return ErrWrongPassword
	}

	hashedPassword, err := utils.HashPassword(newPassword)
	if err != nil {
		return apperror.Internal("failed to hash password", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hashedPassword); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return apperror.Internal("failed to update password", err)
	}
	return nil
}

// ListUsers returns every account.
func (s *authService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, apperror.Internal("failed to list users", err)
	}
	return users, nil
}

// ChangeRole sets a user's role.
func (s *authService) ChangeRole(ctx context.Context, userID int, role string) (*model.User, error) {
	if !model.IsValidRole(role) {
		return nil, ErrInvalidRole
	}
	user, err := s.userRepo.UpdateRole(ctx, userID, role)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, apperror.Internal("failed to update role", err)
	}
	log.WithFields(log.Fields{"user_id": userID, "role": role}).Info("user role changed")
	return user, nil
}
