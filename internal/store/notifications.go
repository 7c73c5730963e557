package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Karatsuyu/delicious-food-app/internal/models"
)

const notificationSelect = `
	SELECT n.id, n.user_id, n.message, n.state_id,
	       COALESCE(st.description, '') AS state_desc, n.created_at
	FROM notifications n LEFT JOIN order_states st ON st.id = n.state_id`

// CreateNotification inserts a notification
func (s *Store) CreateNotification(ctx context.Context, n *models.Notification) error {
	return s.db.GetContext(ctx, &n.ID, `
		INSERT INTO notifications (user_id, message, state_id)
		VALUES ($1, $2, $3)
		RETURNING id`,
		n.UserID, n.Message, n.StateID)
}

// GetNotificationByID retrieves one notification
func (s *Store) GetNotificationByID(ctx context.Context, id int64) (*models.Notification, error) {
	var n models.Notification
	err := s.db.GetContext(ctx, &n, notificationSelect+" WHERE n.id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("notification %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// GetNotificationsByUserID retrieves a user's inbox, newest first
func (s *Store) GetNotificationsByUserID(ctx context.Context, userID int64) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.SelectContext(ctx, &notifications,
		notificationSelect+" WHERE n.user_id = $1 ORDER BY n.created_at DESC", userID)
	return notifications, err
}

// GetNotificationsByUserAndState retrieves a user's notifications in one state
func (s *Store) GetNotificationsByUserAndState(ctx context.Context, userID, stateID int64) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.SelectContext(ctx, &notifications,
		notificationSelect+" WHERE n.user_id = $1 AND n.state_id = $2 ORDER BY n.created_at DESC",
		userID, stateID)
	return notifications, err
}

// UpdateNotificationState retags one notification
func (s *Store) UpdateNotificationState(ctx context.Context, id, stateID int64) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE notifications SET state_id = $1 WHERE id = $2", stateID, id)
	return err
}

// RetagNotifications moves every notification of a user that is not already
// in the target state into it, returning how many rows changed. Running it
// twice in a row reports zero the second time.
func (s *Store) RetagNotifications(ctx context.Context, userID, stateID int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE notifications SET state_id = $1
		WHERE user_id = $2 AND (state_id IS DISTINCT FROM $1)`, stateID, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteNotificationsByState bulk-deletes a user's notifications in a state
func (s *Store) DeleteNotificationsByState(ctx context.Context, userID, stateID int64) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM notifications WHERE user_id = $1 AND state_id = $2", userID, stateID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
