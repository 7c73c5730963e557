package worker

import (
	"context"

	"github.com/Karatsuyu/delicious-food-app/internal/broker"
	"github.com/Karatsuyu/delicious-food-app/internal/models"
	"github.com/Karatsuyu/delicious-food-app/internal/redisclient"
	"github.com/Karatsuyu/delicious-food-app/internal/util"

	"go.uber.org/zap"
)

// OrderEventWorker consumes the order event stream. It drops the affected
// user's cached order statistics so the next read recomputes them, and
// writes an audit log line per event. Events from other instances of the
// service land here too, which keeps the cache honest across replicas.
type OrderEventWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	redis        *redisclient.Client
	logger       *zap.Logger
}

// NewOrderEventWorker creates the worker and wires its event callbacks
func NewOrderEventWorker(consumer *broker.Consumer, redis *redisclient.Client) *OrderEventWorker {
	w := &OrderEventWorker{
		consumer: consumer,
		redis:    redis,
		logger:   util.GetLogger(),
	}

	eventHandler := broker.NewEventHandler()
	eventHandler.OnOrderPlaced(w.handleOrderPlaced)
	eventHandler.OnOrderStateChanged(w.handleOrderStateChanged)
	w.eventHandler = eventHandler

	return w
}

// Start starts the worker
func (w *OrderEventWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting order event worker")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *OrderEventWorker) Stop() error {
	w.logger.Info("Stopping order event worker")
	return w.consumer.Close()
}

func (w *OrderEventWorker) handleOrderPlaced(ctx context.Context, event *models.OrderPlacedEvent) error {
	w.logger.Info("Order placed",
		zap.String("event_id", event.EventID),
		zap.Int64("order_id", event.OrderID),
		zap.Int64("user_id", event.UserID),
		zap.Int64("total", event.Total),
		zap.Int("items", len(event.Items)))

	if err := w.redis.InvalidateOrderStats(ctx, event.UserID); err != nil {
		w.logger.Warn("Stats cache invalidation failed",
			zap.Int64("user_id", event.UserID), zap.Error(err))
	}
	return nil
}

func (w *OrderEventWorker) handleOrderStateChanged(ctx context.Context, event *models.OrderStateChangedEvent) error {
	w.logger.Info("Order state changed",
		zap.String("event_id", event.EventID),
		zap.Int64("order_id", event.OrderID),
		zap.String("state", event.StateDesc))

	if err := w.redis.InvalidateOrderStats(ctx, event.UserID); err != nil {
		w.logger.Warn("Stats cache invalidation failed",
			zap.Int64("user_id", event.UserID), zap.Error(err))
	}
	return nil
}
