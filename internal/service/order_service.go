package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Karatsuyu/delicious-food-app/internal/models"
	"github.com/Karatsuyu/delicious-food-app/internal/redisclient"
	"github.com/Karatsuyu/delicious-food-app/internal/store"
	"github.com/Karatsuyu/delicious-food-app/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderEventPublisher publishes order lifecycle events to the broker.
type OrderEventPublisher interface {
	PublishOrderPlaced(ctx context.Context, event *models.OrderPlacedEvent) error
	PublishOrderStateChanged(ctx context.Context, event *models.OrderStateChangedEvent) error
}

// OrderService converts carts into immutable orders and manages their
// lifecycle labels.
type OrderService struct {
	store          *store.Store
	redis          *redisclient.Client
	eventPublisher OrderEventPublisher
	notifier       *Notifier
	statsTTL       time.Duration
	logger         *zap.Logger
}

// NewOrderService creates an order service
func NewOrderService(
	store *store.Store,
	redis *redisclient.Client,
	eventPublisher OrderEventPublisher,
	notifier *Notifier,
	statsTTL time.Duration,
) *OrderService {
	return &OrderService{
		store:          store,
		redis:          redis,
		eventPublisher: eventPublisher,
		notifier:       notifier,
		statsTTL:       statsTTL,
		logger:         util.GetLogger(),
	}
}

// PlaceOrderRequest carries the contact fields supplied at checkout.
type PlaceOrderRequest struct {
	Address        string `json:"direccion" binding:"required"`
	Phone          string `json:"telefono_contacto" binding:"required"`
	PaymentMethod  string `json:"metodo_pago"`
	IdempotencyKey string `json:"idempotency_key,omitempty"`
}

// PlaceOrder snapshots the caller's cart into an order. The order row, its
// items and the cart clear commit in one transaction; the notification and
// the event publish run after commit and are best-effort.
func (s *OrderService) PlaceOrder(ctx context.Context, principal Principal, req *PlaceOrderRequest) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.PlaceOrder")
	defer span.End()

	start := time.Now()
	defer func() {
		util.OrderPlacementLatency.Observe(time.Since(start).Seconds())
	}()

	if req.IdempotencyKey == "" {
		req.IdempotencyKey = uuid.New().String()
	}

	existing, err := s.store.GetOrderByIdempotencyKey(ctx, principal.UserID, req.IdempotencyKey)
	if err != nil {
		return nil, fmt.Errorf("failed to check idempotency: %w", err)
	}
	if existing != nil {
		s.logger.Info("Duplicate order request detected",
			zap.String("idempotency_key", req.IdempotencyKey),
			zap.Int64("order_id", existing.ID))
		return existing, nil
	}

	cart, err := s.store.GetCartByUserID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		util.OrdersFailedTotal.WithLabelValues("empty_cart").Inc()
		return nil, ErrEmptyCart
	}

	items, err := s.store.GetCartItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		util.OrdersFailedTotal.WithLabelValues("empty_cart").Inc()
		return nil, ErrEmptyCart
	}

	sentState, err := s.store.GetOrCreateState(ctx, models.StateSent)
	if err != nil {
		return nil, err
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "SIMULADO"
	}

	order := &models.Order{
		UserID:         principal.UserID,
		StateID:        &sentState.ID,
		Total:          CartTotal(items),
		Address:        req.Address,
		Phone:          req.Phone,
		PaymentMethod:  paymentMethod,
		IdempotencyKey: req.IdempotencyKey,
	}

	if err := s.store.PlaceOrderTx(ctx, order, cart.ID, items); err != nil {
		util.OrdersFailedTotal.WithLabelValues("db_error").Inc()
		return nil, fmt.Errorf("failed to place order: %w", err)
	}
	order.StateDesc = sentState.Description

	util.OrdersPlacedTotal.Inc()
	s.logger.Info("Order placed",
		zap.Int64("order_id", order.ID),
		zap.Int64("user_id", principal.UserID),
		zap.Int64("total", order.Total))

	// Post-commit side effects. The order already exists; nothing below may
	// fail the request.
	s.notifier.Notify(ctx, principal.UserID,
		fmt.Sprintf("Tu pedido #%d ha sido creado y está siendo procesado.", order.ID),
		models.StateUnread)

	s.publishOrderPlaced(ctx, order)

	return order, nil
}

// UpdateState moves an order to a new lifecycle label. Staff only. Any
// state may follow any other; there is no transition graph.
func (s *OrderService) UpdateState(ctx context.Context, principal Principal, orderID, stateID int64) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.UpdateState")
	defer span.End()

	if !principal.IsStaff {
		return nil, fmt.Errorf("update order state: %w", ErrForbidden)
	}

	state, err := s.store.GetStateByID(ctx, stateID)
	if err != nil {
		return nil, err
	}

	order, err := s.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateOrderState(ctx, orderID, stateID); err != nil {
		return nil, err
	}
	order.StateID = &state.ID
	order.StateDesc = state.Description

	util.OrderStateChangesTotal.Inc()
	s.logger.Info("Order state changed",
		zap.Int64("order_id", orderID),
		zap.String("state", state.Description))

	s.notifier.Notify(ctx, order.UserID,
		fmt.Sprintf("El estado de tu pedido #%d ha cambiado a: %s", orderID, state.Description),
		models.StateUnread)

	event := &models.OrderStateChangedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderStateChanged,
			Timestamp: time.Now(),
		},
		OrderID:   orderID,
		UserID:    order.UserID,
		StateID:   state.ID,
		StateDesc: state.Description,
	}
	if err := s.eventPublisher.PublishOrderStateChanged(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderStateChanged event", zap.Error(err))
	}

	return order, nil
}

// ListOrders returns the caller's own orders, newest first
func (s *OrderService) ListOrders(ctx context.Context, principal Principal) ([]models.Order, error) {
	return s.store.GetOrdersByUserID(ctx, principal.UserID)
}

// GetOrder returns one order. Regular users may only read their own.
func (s *OrderService) GetOrder(ctx context.Context, principal Principal, orderID int64) (*models.Order, error) {
	order, err := s.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != principal.UserID && !principal.IsStaff {
		return nil, fmt.Errorf("order %d: %w", orderID, ErrForbidden)
	}
	return order, nil
}

// ListStates returns all lifecycle labels
func (s *OrderService) ListStates(ctx context.Context) ([]models.OrderState, error) {
	return s.store.GetStates(ctx)
}

// Statistics aggregates the caller's own orders, served through the Redis
// stats cache. The order-event worker invalidates the cache on writes.
func (s *OrderService) Statistics(ctx context.Context, principal Principal) (*models.OrderStats, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.Statistics")
	defer span.End()

	if cached, err := s.redis.GetOrderStats(ctx, principal.UserID); err == nil && cached != nil {
		return cached, nil
	} else if err != nil {
		s.logger.Warn("Stats cache read failed", zap.Error(err))
	}

	orders, err := s.store.GetOrdersByUserID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}

	stats := ComputeOrderStats(orders)

	if err := s.redis.SetOrderStats(ctx, principal.UserID, stats, s.statsTTL); err != nil {
		s.logger.Warn("Stats cache write failed", zap.Error(err))
	}
	return stats, nil
}

// ComputeOrderStats builds count, sum, average and the per-state histogram.
// Orders without a state land in the "Sin estado" bucket.
func ComputeOrderStats(orders []models.Order) *models.OrderStats {
	stats := &models.OrderStats{
		TotalOrders: len(orders),
		ByState:     make(map[string]int),
	}
	for _, order := range orders {
		stats.TotalSpent += order.Total
		state := order.StateDesc
		if state == "" {
			state = models.StateNone
		}
		stats.ByState[state]++
	}
	if stats.TotalOrders > 0 {
		stats.AveragePerOrd = float64(stats.TotalSpent) / float64(stats.TotalOrders)
	}
	return stats
}

func (s *OrderService) publishOrderPlaced(ctx context.Context, order *models.Order) {
	itemData := make([]models.OrderItemData, 0, len(order.Items))
	for _, item := range order.Items {
		itemData = append(itemData, models.OrderItemData{
			ProductID: item.ProductID,
			ComboID:   item.ComboID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	event := &models.OrderPlacedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderPlaced,
			Timestamp: time.Now(),
		},
		OrderID: order.ID,
		UserID:  order.UserID,
		Total:   order.Total,
		Items:   itemData,
	}
	if err := s.eventPublisher.PublishOrderPlaced(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderPlaced event", zap.Error(err))
	}
}
