package entities

import (
	"errors"
	"time"
)

// CartItem is a snapshot of a menu item taken at the moment it was added
// to a cart. ItemKey is synthetic so the same product can appear twice.
type CartItem struct {
	ItemKey     string
	ProductID   string
	Title       string
	Description string
	Price       float64
	AddedAt     time.Time
}

type Order struct {
	OrderID     string
	UserID      string
	Items       []CartItem
	DateCreated time.Time
	Total       float64
	IsDelivered bool
}

type GuestInfo struct {
	Name    string
	Email   string
	Address Address
}

type GuestOrder struct {
	OrderID     string
	Guest       GuestInfo
	Items       []CartItem
	DateCreated time.Time
	Total       float64
}

// OrderSummary is what order placement returns to the caller.
type OrderSummary struct {
	OrderID           string
	Total             float64
	EstimatedDelivery time.Time
}

var (
	ErrEmptyCart = errors.New("cart is empty")
	ErrNoOrders  = errors.New("no orders made yet")
)

// DeliveredBy reports whether the delivery window has fully elapsed at now.
// Elapsed time is compared in whole minutes, matching the lazy
// delivery-status check the history endpoint performs.
func (o Order) DeliveredBy(now time.Time, window time.Duration) bool {
	elapsed := now.Sub(o.DateCreated).Truncate(time.Minute)
	return elapsed >= window
}
