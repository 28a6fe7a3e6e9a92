package repo

import (
	"context"
	"fmt"

	"github.com/airbean/airbean-api/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type orderRepo struct {
	base
}

func NewOrderRepo(db *sqlx.DB) *orderRepo {
	return &orderRepo{base: newBase(db)}
}

func (r *orderRepo) SaveOrder(ctx context.Context, o entities.Order) error {
	query, args := r.qb.Insert("orders").
		Columns("order_id", "user_id", "date_created", "total", "is_delivered").
		Values(o.OrderID, o.UserID, o.DateCreated, o.Total, o.IsDelivered).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}

	return r.saveItems(ctx, "order_items", o.OrderID, o.Items)
}

func (r *orderRepo) SaveGuestOrder(ctx context.Context, o entities.GuestOrder) error {
	query, args := r.qb.Insert("guest_orders").
		Columns("order_id", "name", "email", "street", "zip", "city", "date_created", "total").
		Values(
			o.OrderID, o.Guest.Name, o.Guest.Email,
			o.Guest.Address.Street, o.Guest.Address.Zip, o.Guest.Address.City,
			o.DateCreated, o.Total,
		).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save guest order: %w", err)
	}

	return r.saveItems(ctx, "guest_order_items", o.OrderID, o.Items)
}

func (r *orderRepo) saveItems(ctx context.Context, table, orderID string, items []entities.CartItem) error {
	if len(items) == 0 {
		return nil
	}

	q := r.qb.Insert(table).
		Columns("item_key", "order_id", "product_id", "title", "description", "price")

	for _, it := range items {
		q = q.Values(it.ItemKey, orderID, it.ProductID, it.Title, nullString(it.Description), it.Price)
	}

	query, args := q.MustSql()
	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save order items: %w", err)
	}
	return nil
}

// ListOrdersByUser returns the user's orders oldest first, items included.
func (r *orderRepo) ListOrdersByUser(ctx context.Context, userID string) ([]entities.Order, error) {
	query, args := r.qb.Select("order_id", "user_id", "date_created", "total", "is_delivered").
		From("orders").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("date_created").
		MustSql()

	var orders []Order
	if err := r.selectContext(ctx, &orders, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select orders: %w", err)
	}

	if len(orders) == 0 {
		return []entities.Order{}, nil
	}

	ids := make([]string, len(orders))
	for i, o := range orders {
		ids[i] = o.OrderID
	}

	query, args = r.qb.Select("item_key", "order_id", "product_id", "title", "description", "price").
		From("order_items").
		Where(sq.Eq{"order_id": ids}).
		MustSql()

	var items []OrderItem
	if err := r.selectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select order items: %w", err)
	}
	itemsMap := make(map[string][]OrderItem, len(ids))
	for _, it := range items {
		itemsMap[it.OrderID] = append(itemsMap[it.OrderID], it)
	}

	result := make([]entities.Order, 0, len(orders))
	for _, o := range orders {
		result = append(result, OrderToEntity(o, itemsMap[o.OrderID]))
	}
	return result, nil
}

// MarkDelivered flips is_delivered for a single order. The update is
// addressed by the order's stable id, never by position in a list.
func (r *orderRepo) MarkDelivered(ctx context.Context, orderID string) error {
	query, args := r.qb.Update("orders").
		Set("is_delivered", true).
		Where(sq.Eq{"order_id": orderID}).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to mark order delivered: %w", err)
	}
	return nil
}
