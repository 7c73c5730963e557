package service

import (
	"context"

	"github.com/Karatsuyu/delicious-food-app/internal/models"
	"github.com/Karatsuyu/delicious-food-app/internal/store"
	"github.com/Karatsuyu/delicious-food-app/internal/util"

	"go.uber.org/zap"
)

// Notifier writes inbox messages as a side effect of other operations.
// Emission is strictly best-effort: a failed write is logged, counted and
// swallowed so it can never block order placement, state changes or account
// deactivation.
type Notifier struct {
	store  *store.Store
	logger *zap.Logger
}

// NewNotifier creates a notifier
func NewNotifier(store *store.Store) *Notifier {
	return &Notifier{
		store:  store,
		logger: util.GetLogger(),
	}
}

// Notify creates a notification tagged with the given state label,
// swallowing any failure.
func (n *Notifier) Notify(ctx context.Context, userID int64, message, stateDesc string) {
	state, err := n.store.GetOrCreateState(ctx, stateDesc)
	if err != nil {
		util.NotificationsFailedTotal.Inc()
		n.logger.Warn("Notification state resolution failed",
			zap.Int64("user_id", userID), zap.Error(err))
		return
	}

	notification := &models.Notification{
		UserID:  userID,
		Message: message,
		StateID: &state.ID,
	}
	if err := n.store.CreateNotification(ctx, notification); err != nil {
		util.NotificationsFailedTotal.Inc()
		n.logger.Warn("Notification write failed",
			zap.Int64("user_id", userID), zap.Error(err))
		return
	}

	util.NotificationsCreatedTotal.Inc()
}
