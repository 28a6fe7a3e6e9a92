package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/airbean/airbean-api/internal/entities"
	"github.com/airbean/airbean-api/pkg/trm"

	"github.com/google/uuid"
)

type OrderRepo interface {
	SaveOrder(ctx context.Context, o entities.Order) error
	SaveGuestOrder(ctx context.Context, o entities.GuestOrder) error
	ListOrdersByUser(ctx context.Context, userID string) ([]entities.Order, error)
	MarkDelivered(ctx context.Context, orderID string) error
}

type UserGetter interface {
	GetUserByID(ctx context.Context, userID string) (entities.User, error)
}

type orderService struct {
	logger    *slog.Logger
	txManager trm.Manager
	orders    OrderRepo
	carts     CartRepo
	users     UserGetter
	window    time.Duration
	now       func() time.Time
}

func NewOrderService(
	logger *slog.Logger,
	txManager trm.Manager,
	orders OrderRepo,
	carts CartRepo,
	users UserGetter,
	window time.Duration,
	now func() time.Time,
) *orderService {
	if now == nil {
		now = time.Now
	}
	return &orderService{
		logger:    logger.With(slog.String("service", "order")),
		txManager: txManager,
		orders:    orders,
		carts:     carts,
		users:     users,
		window:    window,
		now:       now,
	}
}

// PlaceUserOrder converts the cart into an order owned by the user.
// The order insert and the cart clear run in one transaction, so the
// cart drains only if the order write commits.
func (s *orderService) PlaceUserOrder(ctx context.Context, userID, cartID string) (entities.OrderSummary, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return entities.OrderSummary{}, fmt.Errorf("failed to resolve user: %w", err)
	}

	items, err := s.carts.ListItems(ctx, cartID)
	if err != nil {
		return entities.OrderSummary{}, err
	}
	if len(items) == 0 {
		return entities.OrderSummary{}, entities.ErrEmptyCart
	}

	placedAt := s.now()
	order := entities.Order{
		OrderID:     uuid.NewString(),
		UserID:      user.ID,
		Items:       items,
		DateCreated: placedAt,
		Total:       sumPrices(items),
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.orders.SaveOrder(ctx, order); err != nil {
			return err
		}
		return s.carts.Clear(ctx, cartID)
	})
	if err != nil {
		return entities.OrderSummary{}, err
	}

	s.logger.Debug("order placed",
		slog.String("order_id", order.OrderID), slog.String("user_id", user.ID))

	return entities.OrderSummary{
		OrderID:           order.OrderID,
		Total:             order.Total,
		EstimatedDelivery: placedAt.Add(s.window),
	}, nil
}

// PlaceGuestOrder stores a standalone order with no account attached.
// Guest orders are fire-and-forget: there is no delivery tracking for
// them because guests have no history to query.
func (s *orderService) PlaceGuestOrder(ctx context.Context, guest entities.GuestInfo, cartID string) (entities.OrderSummary, error) {
	items, err := s.carts.ListItems(ctx, cartID)
	if err != nil {
		return entities.OrderSummary{}, err
	}
	if len(items) == 0 {
		return entities.OrderSummary{}, entities.ErrEmptyCart
	}

	placedAt := s.now()
	order := entities.GuestOrder{
		OrderID:     uuid.NewString(),
		Guest:       guest,
		Items:       items,
		DateCreated: placedAt,
		Total:       sumPrices(items),
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.orders.SaveGuestOrder(ctx, order); err != nil {
			return err
		}
		return s.carts.Clear(ctx, cartID)
	})
	if err != nil {
		return entities.OrderSummary{}, err
	}

	s.logger.Debug("guest order placed", slog.String("order_id", order.OrderID))

	return entities.OrderSummary{
		OrderID:           order.OrderID,
		Total:             order.Total,
		EstimatedDelivery: placedAt.Add(s.window),
	}, nil
}

// ReconcileDeliveryStatus flips is_delivered for every order whose
// delivery window has elapsed. The flag is derived state recomputed on
// read; there is no background timer. Already delivered orders are
// skipped, so the flag never reverts and a second call right after the
// first changes nothing.
func (s *orderService) ReconcileDeliveryStatus(ctx context.Context, userID string) error {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return fmt.Errorf("failed to resolve user: %w", err)
	}

	orders, err := s.orders.ListOrdersByUser(ctx, userID)
	if err != nil {
		return err
	}

	now := s.now()
	var due []string
	for _, order := range orders {
		if order.IsDelivered {
			continue
		}
		if order.DeliveredBy(now, s.window) {
			due = append(due, order.OrderID)
		}
	}
	if len(due) == 0 {
		return nil
	}

	return s.txManager.Do(ctx, func(ctx context.Context) error {
		for _, orderID := range due {
			if err := s.orders.MarkDelivered(ctx, orderID); err != nil {
				return err
			}
		}
		return nil
	})
}

// OrderHistory reconciles delivery status and returns the user's orders
// oldest first together with the total spent across all of them.
func (s *orderService) OrderHistory(ctx context.Context, userID string) ([]entities.Order, float64, error) {
	if err := s.ReconcileDeliveryStatus(ctx, userID); err != nil {
		return nil, 0, err
	}

	orders, err := s.orders.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	if len(orders) == 0 {
		return nil, 0, entities.ErrNoOrders
	}

	var total float64
	for _, order := range orders {
		total += order.Total
	}
	return orders, total, nil
}

func sumPrices(items []entities.CartItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Price
	}
	return total
}
