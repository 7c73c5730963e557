package service

import (
	"context"
	"fmt"

	"github.com/Karatsuyu/delicious-food-app/internal/auth"
	"github.com/Karatsuyu/delicious-food-app/internal/models"
	"github.com/Karatsuyu/delicious-food-app/internal/store"
	"github.com/Karatsuyu/delicious-food-app/internal/util"

	"go.uber.org/zap"
)

// UserService manages accounts: registration, login, profile, soft
// deactivation. Accounts are never hard-deleted.
type UserService struct {
	store    *store.Store
	tokens   *auth.Manager
	notifier *Notifier
	logger   *zap.Logger
}

// NewUserService creates a user service
func NewUserService(store *store.Store, tokens *auth.Manager, notifier *Notifier) *UserService {
	return &UserService{
		store:    store,
		tokens:   tokens,
		notifier: notifier,
		logger:   util.GetLogger(),
	}
}

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
}

// Register creates an account with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PhoneNumber:  req.PhoneNumber,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", zap.Int64("user_id", user.ID), zap.String("email", user.Email))
	return user, nil
}

// Login checks credentials and issues a bearer token. Deactivated accounts
// cannot log in.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return "", nil, auth.ErrInvalidCredentials
	}
	if !user.IsActive || !auth.CheckPassword(password, user.PasswordHash) {
		return "", nil, auth.ErrInvalidCredentials
	}

	token, err := s.tokens.IssueToken(user.ID, user.Email, user.IsStaff)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Me returns the caller's account
func (s *UserService) Me(ctx context.Context, principal Principal) (*models.User, error) {
	return s.store.GetUserByID(ctx, principal.UserID)
}

// UpdateProfileRequest carries the mutable profile fields.
type UpdateProfileRequest struct {
	Username    *string `json:"username"`
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	PhoneNumber *string `json:"phone_number"`
}

// UpdateProfile partially updates the caller's profile
func (s *UserService) UpdateProfile(ctx context.Context, principal Principal, req *UpdateProfileRequest) (*models.User, error) {
	user, err := s.store.GetUserByID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = *req.PhoneNumber
	}

	if err := s.store.UpdateUserProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the old password before storing a new hash.
func (s *UserService) ChangePassword(ctx context.Context, principal Principal, oldPassword, newPassword string) error {
	user, err := s.store.GetUserByID(ctx, principal.UserID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(oldPassword, user.PasswordHash) {
		return fmt.Errorf("current password is incorrect: %w", ErrValidation)
	}
	if len(newPassword) < 8 {
		return fmt.Errorf("new password too short: %w", ErrValidation)
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.store.UpdateUserPassword(ctx, principal.UserID, hash)
}

// Deactivate soft-deactivates the caller's own account and leaves a
// best-effort notification behind.
func (s *UserService) Deactivate(ctx context.Context, principal Principal) error {
	if err := s.store.SetUserActive(ctx, principal.UserID, false); err != nil {
		return err
	}

	s.logger.Info("Account deactivated", zap.Int64("user_id", principal.UserID))
	s.notifier.Notify(ctx, principal.UserID,
		"Has desactivado tu cuenta. Contacta al soporte si deseas reactivarla.",
		models.StateInfo)
	return nil
}

// Reactivate re-enables a deactivated account. Staff only.
func (s *UserService) Reactivate(ctx context.Context, principal Principal, userID int64) (*models.User, error) {
	if !principal.IsStaff {
		return nil, fmt.Errorf("reactivate account: %w", ErrForbidden)
	}

	if err := s.store.SetUserActive(ctx, userID, true); err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, userID,
		"Tu cuenta ha sido reactivada por el personal de soporte.",
		models.StateInfo)
	return s.store.GetUserByID(ctx, userID)
}

// Statistics summarizes the caller's activity
func (s *UserService) Statistics(ctx context.Context, principal Principal) (*models.UserStats, error) {
	user, err := s.store.GetUserByID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}

	orders, err := s.store.CountOrdersByUserID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	reviews, err := s.store.CountReviewsByUserID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}

	return &models.UserStats{
		Username:     user.Username,
		Email:        user.Email,
		Points:       user.Points,
		DateJoined:   user.DateJoined,
		TotalOrders:  orders,
		TotalReviews: reviews,
		Active:       user.IsActive,
	}, nil
}

// ListUsers returns all accounts. Staff only.
func (s *UserService) ListUsers(ctx context.Context, principal Principal) ([]models.User, error) {
	if !principal.IsStaff {
		return nil, fmt.Errorf("list users: %w", ErrForbidden)
	}
	return s.store.GetUsers(ctx)
}
