package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/airbean/airbean-api/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type menuRepo struct {
	base
}

func NewMenuRepo(db *sqlx.DB) *menuRepo {
	return &menuRepo{base: newBase(db)}
}

func (r *menuRepo) ListMenu(ctx context.Context) (entities.Menu, error) {
	query, args := r.qb.Select("product_id", "title", "description", "price").
		From("menu_items").
		OrderBy("title").
		MustSql()

	var items []MenuItem
	if err := r.selectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select menu: %w", err)
	}

	menu := make(entities.Menu, 0, len(items))
	for _, it := range items {
		menu = append(menu, MenuItemToEntity(it))
	}
	return menu, nil
}

func (r *menuRepo) GetMenuItem(ctx context.Context, productID string) (entities.MenuItem, error) {
	query, args := r.qb.Select("product_id", "title", "description", "price").
		From("menu_items").
		Where(sq.Eq{"product_id": productID}).
		MustSql()

	var item MenuItem
	err := r.getContext(ctx, &item, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.MenuItem{}, entities.ErrProductNotFound
	}
	if err != nil {
		return entities.MenuItem{}, fmt.Errorf("failed to get menu item: %w", err)
	}
	return MenuItemToEntity(item), nil
}

func (r *menuRepo) CreateMenuItem(ctx context.Context, item entities.MenuItem) error {
	query, args := r.qb.Insert("menu_items").
		Columns("product_id", "title", "description", "price").
		Values(item.ID, item.Title, nullString(item.Description), item.Price).
		MustSql()

	_, err := r.execContext(ctx, query, args...)
	if isUniqueViolation(err) {
		return entities.ErrProductExists
	}
	if err != nil {
		return fmt.Errorf("failed to create menu item: %w", err)
	}
	return nil
}

func (r *menuRepo) UpdateMenuItem(ctx context.Context, item entities.MenuItem) error {
	query, args := r.qb.Update("menu_items").
		Set("title", item.Title).
		Set("description", nullString(item.Description)).
		Set("price", item.Price).
		Where(sq.Eq{"product_id": item.ID}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update menu item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return entities.ErrProductNotFound
	}
	return nil
}

func (r *menuRepo) DeleteMenuItem(ctx context.Context, productID string) error {
	query, args := r.qb.Delete("menu_items").
		Where(sq.Eq{"product_id": productID}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return entities.ErrProductNotFound
	}
	return nil
}

func (r *menuRepo) ListCampaigns(ctx context.Context) ([]entities.Campaign, error) {
	query, args := r.qb.Select("campaign_id", "title", "products", "price").
		From("campaigns").
		OrderBy("title").
		MustSql()

	var campaigns []Campaign
	if err := r.selectContext(ctx, &campaigns, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select campaigns: %w", err)
	}

	result := make([]entities.Campaign, 0, len(campaigns))
	for _, c := range campaigns {
		result = append(result, CampaignToEntity(c))
	}
	return result, nil
}

func (r *menuRepo) CreateCampaign(ctx context.Context, c entities.Campaign) error {
	query, args := r.qb.Insert("campaigns").
		Columns("campaign_id", "title", "products", "price").
		Values(c.ID, c.Title, pq.StringArray(c.Products), c.Price).
		MustSql()

	_, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to create campaign: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
