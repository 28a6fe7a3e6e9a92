package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/airbean/airbean-api/internal/entities"
	"github.com/airbean/airbean-api/internal/middleware"
	"github.com/airbean/airbean-api/pkg/utils"
)

// GetCart returns the current content of a cart.
func (h *HTTPHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cartID := r.URL.Query().Get("cart_id")
	if err := h.validate.Var(cartID, "required"); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	items, err := h.cart.Items(ctx, cartID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list cart", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	res := make([]CartItem, 0, len(items))
	for _, it := range items {
		res = append(res, CartItemEntityToJSON(it))
	}
	utils.WriteJSON(w, res, http.StatusOK)
}

// AddToCart snapshots a menu item into the cart.
func (h *HTTPHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req AddToCartRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	item, err := h.cart.AddItem(ctx, req.CartID, req.ProductID)
	if errors.Is(err, entities.ErrProductNotFound) {
		utils.WriteError(w, "product does not exist, please try again", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to add to cart", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, CartItemEntityToJSON(item), http.StatusCreated)
}

// SendOrder places an order for a registered user. The token subject
// must match the user id in the request.
func (h *HTTPHandler) SendOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SendOrderRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	claims, ok := middleware.ClaimsFromContext(ctx)
	if !ok || claims.UserID != req.UserID {
		utils.WriteError(w, "invalid token", http.StatusUnauthorized)
		return
	}

	summary, err := h.orders.PlaceUserOrder(ctx, req.UserID, req.CartID)
	if errors.Is(err, entities.ErrUserNotFound) {
		utils.WriteError(w, "the user does not exist, please try again", http.StatusBadRequest)
		return
	}
	if errors.Is(err, entities.ErrEmptyCart) {
		utils.WriteError(w, "no products in cart, please try again", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to place order", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	ordersPlaced.Inc()
	orderValue.Observe(summary.Total)

	utils.WriteJSON(w, summaryToJSON(summary), http.StatusOK)
}

// SendGuestOrder places an order without an account.
func (h *HTTPHandler) SendGuestOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req GuestOrderRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	summary, err := h.orders.PlaceGuestOrder(ctx, GuestJSONToEntity(req), req.CartID)
	if errors.Is(err, entities.ErrEmptyCart) {
		utils.WriteError(w, "no products in cart, please try again", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to place guest order", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	guestOrdersPlaced.Inc()
	orderValue.Observe(summary.Total)

	utils.WriteJSON(w, summaryToJSON(summary), http.StatusOK)
}

// OrderHistory reconciles delivery status and returns the user's orders.
func (h *HTTPHandler) OrderHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := r.URL.Query().Get("user_id")
	if err := h.validate.Var(userID, "required,uuid4"); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	claims, ok := middleware.ClaimsFromContext(ctx)
	if !ok || claims.UserID != userID {
		utils.WriteError(w, "invalid token", http.StatusUnauthorized)
		return
	}

	orders, total, err := h.orders.OrderHistory(ctx, userID)
	if errors.Is(err, entities.ErrUserNotFound) {
		utils.WriteError(w, "the user does not exist, please try again", http.StatusBadRequest)
		return
	}
	if errors.Is(err, entities.ErrNoOrders) {
		utils.WriteError(w, "no orders made yet", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get order history", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	res := OrderHistoryResponse{
		Orders:  make([]Order, 0, len(orders)),
		Total:   total,
		Message: fmt.Sprintf("The total price of all orders is: %v kr", total),
	}
	for _, o := range orders {
		res.Orders = append(res.Orders, OrderEntityToJSON(o))
	}
	utils.WriteJSON(w, res, http.StatusOK)
}

func summaryToJSON(s entities.OrderSummary) OrderSummary {
	return OrderSummary{
		OrderID:           s.OrderID,
		Total:             s.Total,
		EstimatedDelivery: s.EstimatedDelivery,
		Message: fmt.Sprintf(
			"Your order will be delivered %s and the price is: %v kr",
			s.EstimatedDelivery.Format(time.Kitchen), s.Total,
		),
	}
}
