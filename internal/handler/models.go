package handler

import (
	"time"

	"github.com/airbean/airbean-api/internal/entities"
	"github.com/airbean/airbean-api/internal/service"
)

type MenuItem struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
}

type Campaign struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Products []string `json:"products,omitempty"`
	Price    float64  `json:"price"`
}

type Address struct {
	Street string `json:"street" validate:"required"`
	Zip    string `json:"zip" validate:"required"`
	City   string `json:"city" validate:"required"`
}

type SignupRequest struct {
	Username string  `json:"username" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Address  Address `json:"address" validate:"required"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Address   Address   `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

type AddToCartRequest struct {
	CartID    string `json:"cart_id" validate:"required"`
	ProductID string `json:"product_id" validate:"required"`
}

type CartItem struct {
	ItemKey     string  `json:"item_key"`
	ProductID   string  `json:"product_id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
}

type SendOrderRequest struct {
	UserID string `json:"user_id" validate:"required,uuid4"`
	CartID string `json:"cart_id" validate:"required"`
}

type GuestOrderRequest struct {
	Name    string  `json:"name" validate:"required"`
	Email   string  `json:"email" validate:"required,email"`
	Address Address `json:"address" validate:"required"`
	CartID  string  `json:"cart_id" validate:"required"`
}

type OrderSummary struct {
	OrderID           string    `json:"order_id"`
	Total             float64   `json:"total"`
	EstimatedDelivery time.Time `json:"estimated_delivery"`
	Message           string    `json:"message"`
}

type Order struct {
	OrderID     string     `json:"order_id"`
	Items       []CartItem `json:"items"`
	DateCreated time.Time  `json:"date_created"`
	Total       float64    `json:"total"`
	IsDelivered bool       `json:"is_delivered"`
}

type OrderHistoryResponse struct {
	Orders  []Order `json:"orders"`
	Total   float64 `json:"total"`
	Message string  `json:"message"`
}

type UpsertMenuItemRequest struct {
	ID          string  `json:"id" validate:"required"`
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gt=0"`
}

type CreateCampaignRequest struct {
	ID       string   `json:"id" validate:"required"`
	Title    string   `json:"title" validate:"required"`
	Products []string `json:"products" validate:"required,min=1"`
	Price    float64  `json:"price" validate:"gt=0"`
}

func MenuItemEntityToJSON(m entities.MenuItem) MenuItem {
	return MenuItem{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Price:       m.Price,
	}
}

func CampaignEntityToJSON(c entities.Campaign) Campaign {
	return Campaign{
		ID:       c.ID,
		Title:    c.Title,
		Products: c.Products,
		Price:    c.Price,
	}
}

func AddressEntityToJSON(a entities.Address) Address {
	return Address{
		Street: a.Street,
		Zip:    a.Zip,
		City:   a.City,
	}
}

func AddressJSONToEntity(a Address) entities.Address {
	return entities.Address{
		Street: a.Street,
		Zip:    a.Zip,
		City:   a.City,
	}
}

func UserEntityToJSON(u entities.User) User {
	return User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		Address:   AddressEntityToJSON(u.Address),
		CreatedAt: u.CreatedAt,
	}
}

func CartItemEntityToJSON(i entities.CartItem) CartItem {
	return CartItem{
		ItemKey:     i.ItemKey,
		ProductID:   i.ProductID,
		Title:       i.Title,
		Description: i.Description,
		Price:       i.Price,
	}
}

func OrderEntityToJSON(o entities.Order) Order {
	items := make([]CartItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, CartItemEntityToJSON(it))
	}

	return Order{
		OrderID:     o.OrderID,
		Items:       items,
		DateCreated: o.DateCreated,
		Total:       o.Total,
		IsDelivered: o.IsDelivered,
	}
}

func SignupJSONToParams(r SignupRequest) service.RegisterParams {
	return service.RegisterParams{
		Username: r.Username,
		Email:    r.Email,
		Password: r.Password,
		Address:  AddressJSONToEntity(r.Address),
	}
}

func MenuItemJSONToEntity(r UpsertMenuItemRequest) entities.MenuItem {
	return entities.MenuItem{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
	}
}

func CampaignJSONToEntity(r CreateCampaignRequest) entities.Campaign {
	return entities.Campaign{
		ID:       r.ID,
		Title:    r.Title,
		Products: r.Products,
		Price:    r.Price,
	}
}

func GuestJSONToEntity(r GuestOrderRequest) entities.GuestInfo {
	return entities.GuestInfo{
		Name:    r.Name,
		Email:   r.Email,
		Address: AddressJSONToEntity(r.Address),
	}
}
