package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/airbean/airbean-api/internal/entities"

	"github.com/google/uuid"
)

type MenuItemGetter interface {
	GetMenuItem(ctx context.Context, productID string) (entities.MenuItem, error)
}

type CartRepo interface {
	AddItem(ctx context.Context, cartID string, item entities.CartItem) error
	ListItems(ctx context.Context, cartID string) ([]entities.CartItem, error)
	Clear(ctx context.Context, cartID string) error
}

type cartService struct {
	logger *slog.Logger
	menu   MenuItemGetter
	carts  CartRepo
	now    func() time.Time
}

func NewCartService(logger *slog.Logger, menu MenuItemGetter, carts CartRepo, now func() time.Time) *cartService {
	if now == nil {
		now = time.Now
	}
	return &cartService{
		logger: logger.With(slog.String("service", "cart")),
		menu:   menu,
		carts:  carts,
		now:    now,
	}
}

// AddItem snapshots the menu item into the cart under a fresh synthetic
// key, so adding the same product twice yields two distinct lines.
func (s *cartService) AddItem(ctx context.Context, cartID, productID string) (entities.CartItem, error) {
	product, err := s.menu.GetMenuItem(ctx, productID)
	if err != nil {
		return entities.CartItem{}, fmt.Errorf("failed to look up product: %w", err)
	}

	item := entities.CartItem{
		ItemKey:     uuid.NewString(),
		ProductID:   product.ID,
		Title:       product.Title,
		Description: product.Description,
		Price:       product.Price,
		AddedAt:     s.now(),
	}

	if err := s.carts.AddItem(ctx, cartID, item); err != nil {
		return entities.CartItem{}, err
	}

	s.logger.Debug("item added to cart",
		slog.String("cart_id", cartID), slog.String("product_id", productID))
	return item, nil
}

func (s *cartService) Items(ctx context.Context, cartID string) ([]entities.CartItem, error) {
	return s.carts.ListItems(ctx, cartID)
}
