package repo

import (
	"context"
	"fmt"

	"github.com/airbean/airbean-api/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type cartRepo struct {
	base
}

func NewCartRepo(db *sqlx.DB) *cartRepo {
	return &cartRepo{base: newBase(db)}
}

func (r *cartRepo) AddItem(ctx context.Context, cartID string, item entities.CartItem) error {
	query, args := r.qb.Insert("cart_items").
		Columns("item_key", "cart_id", "product_id", "title", "description", "price", "added_at").
		Values(
			item.ItemKey, cartID, item.ProductID, item.Title,
			nullString(item.Description), item.Price, item.AddedAt,
		).
		MustSql()

	_, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to add cart item: %w", err)
	}
	return nil
}

func (r *cartRepo) ListItems(ctx context.Context, cartID string) ([]entities.CartItem, error) {
	query, args := r.qb.Select("item_key", "cart_id", "product_id", "title", "description", "price", "added_at").
		From("cart_items").
		Where(sq.Eq{"cart_id": cartID}).
		OrderBy("added_at").
		MustSql()

	var items []CartItem
	if err := r.selectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select cart items: %w", err)
	}

	result := make([]entities.CartItem, 0, len(items))
	for _, it := range items {
		result = append(result, CartItemToEntity(it))
	}
	return result, nil
}

func (r *cartRepo) Clear(ctx context.Context, cartID string) error {
	query, args := r.qb.Delete("cart_items").
		Where(sq.Eq{"cart_id": cartID}).
		MustSql()

	_, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
