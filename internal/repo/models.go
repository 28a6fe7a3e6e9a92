package repo

import (
	"database/sql"
	"time"

	"github.com/airbean/airbean-api/internal/entities"

	"github.com/lib/pq"
)

type User struct {
	UserID       string    `db:"user_id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	Street       string    `db:"street"`
	Zip          string    `db:"zip"`
	City         string    `db:"city"`
	CreatedAt    time.Time `db:"created_at"`
}

type MenuItem struct {
	ProductID   string         `db:"product_id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	Price       float64        `db:"price"`
}

type Campaign struct {
	CampaignID string         `db:"campaign_id"`
	Title      string         `db:"title"`
	Products   pq.StringArray `db:"products"`
	Price      float64        `db:"price"`
}

type CartItem struct {
	ItemKey     string         `db:"item_key"`
	CartID      string         `db:"cart_id"`
	ProductID   string         `db:"product_id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	Price       float64        `db:"price"`
	AddedAt     time.Time      `db:"added_at"`
}

type Order struct {
	OrderID     string    `db:"order_id"`
	UserID      string    `db:"user_id"`
	DateCreated time.Time `db:"date_created"`
	Total       float64   `db:"total"`
	IsDelivered bool      `db:"is_delivered"`
}

type OrderItem struct {
	ItemKey     string         `db:"item_key"`
	OrderID     string         `db:"order_id"`
	ProductID   string         `db:"product_id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	Price       float64        `db:"price"`
}

type GuestOrder struct {
	OrderID     string    `db:"order_id"`
	Name        string    `db:"name"`
	Email       string    `db:"email"`
	Street      string    `db:"street"`
	Zip         string    `db:"zip"`
	City        string    `db:"city"`
	DateCreated time.Time `db:"date_created"`
	Total       float64   `db:"total"`
}

func UserToEntity(u User) entities.User {
	return entities.User{
		ID:           u.UserID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		Address: entities.Address{
			Street: u.Street,
			Zip:    u.Zip,
			City:   u.City,
		},
		CreatedAt: u.CreatedAt,
	}
}

func MenuItemToEntity(m MenuItem) entities.MenuItem {
	return entities.MenuItem{
		ID:          m.ProductID,
		Title:       m.Title,
		Description: nullStringToString(m.Description),
		Price:       m.Price,
	}
}

func CampaignToEntity(c Campaign) entities.Campaign {
	return entities.Campaign{
		ID:       c.CampaignID,
		Title:    c.Title,
		Products: []string(c.Products),
		Price:    c.Price,
	}
}

func CartItemToEntity(i CartItem) entities.CartItem {
	return entities.CartItem{
		ItemKey:     i.ItemKey,
		ProductID:   i.ProductID,
		Title:       i.Title,
		Description: nullStringToString(i.Description),
		Price:       i.Price,
		AddedAt:     i.AddedAt,
	}
}

func OrderItemToEntity(i OrderItem) entities.CartItem {
	return entities.CartItem{
		ItemKey:     i.ItemKey,
		ProductID:   i.ProductID,
		Title:       i.Title,
		Description: nullStringToString(i.Description),
		Price:       i.Price,
	}
}

func OrderToEntity(o Order, items []OrderItem) entities.Order {
	order := entities.Order{
		OrderID:     o.OrderID,
		UserID:      o.UserID,
		DateCreated: o.DateCreated,
		Total:       o.Total,
		IsDelivered: o.IsDelivered,
	}

	if len(items) > 0 {
		order.Items = make([]entities.CartItem, 0, len(items))
		for _, it := range items {
			order.Items = append(order.Items, OrderItemToEntity(it))
		}
	}

	return order
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullStringToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}
