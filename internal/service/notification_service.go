package service

import (
	"context"
	"fmt"

	"github.com/Karatsuyu/delicious-food-app/internal/models"
	"github.com/Karatsuyu/delicious-food-app/internal/store"
	"github.com/Karatsuyu/delicious-food-app/internal/util"

	"go.uber.org/zap"
)

// NotificationService is the per-user inbox. State labels are resolved by
// exact description ("No Leído", "Leído"), lazily created on first use.
type NotificationService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewNotificationService creates a notification service
func NewNotificationService(store *store.Store) *NotificationService {
	return &NotificationService{
		store:  store,
		logger: util.GetLogger(),
	}
}

// List returns the caller's notifications, newest first
func (s *NotificationService) List(ctx context.Context, principal Principal) ([]models.Notification, error) {
	return s.store.GetNotificationsByUserID(ctx, principal.UserID)
}

// Unread returns the caller's notifications tagged "No Leído"
func (s *NotificationService) Unread(ctx context.Context, principal Principal) ([]models.Notification, error) {
	unreadState, err := s.store.GetOrCreateState(ctx, models.StateUnread)
	if err != nil {
		return nil, err
	}
	return s.store.GetNotificationsByUserAndState(ctx, principal.UserID, unreadState.ID)
}

// MarkRead retags one notification to "Leído". Another user's notification
// is forbidden, not hidden.
func (s *NotificationService) MarkRead(ctx context.Context, principal Principal, id int64) (*models.Notification, error) {
	notification, err := s.store.GetNotificationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if notification.UserID != principal.UserID {
		return nil, fmt.Errorf("notification %d: %w", id, ErrForbidden)
	}

	readState, err := s.store.GetOrCreateState(ctx, models.StateRead)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpdateNotificationState(ctx, id, readState.ID); err != nil {
		return nil, err
	}

	notification.StateID = &readState.ID
	notification.StateDesc = readState.Description
	return notification, nil
}

// MarkAllRead retags every notification of the caller to "Leído" and
// returns the number changed. A second call in a row returns zero.
func (s *NotificationService) MarkAllRead(ctx context.Context, principal Principal) (int64, error) {
	readState, err := s.store.GetOrCreateState(ctx, models.StateRead)
	if err != nil {
		return 0, err
	}
	count, err := s.store.RetagNotifications(ctx, principal.UserID, readState.ID)
	if err != nil {
		return 0, err
	}
	s.logger.Info("Notifications marked read",
		zap.Int64("user_id", principal.UserID), zap.Int64("count", count))
	return count, nil
}

// DeleteRead removes the caller's notifications tagged "Leído" and returns
// the number deleted.
func (s *NotificationService) DeleteRead(ctx context.Context, principal Principal) (int64, error) {
	readState, err := s.store.GetOrCreateState(ctx, models.StateRead)
	if err != nil {
		return 0, err
	}
	count, err := s.store.DeleteNotificationsByState(ctx, principal.UserID, readState.ID)
	if err != nil {
		return 0, err
	}
	s.logger.Info("Read notifications deleted",
		zap.Int64("user_id", principal.UserID), zap.Int64("count", count))
	return count, nil
}
