package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/airbean/airbean-api/internal/entities"
	"github.com/airbean/airbean-api/internal/middleware"
	"github.com/airbean/airbean-api/internal/service"
	"github.com/airbean/airbean-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type AuthService interface {
	Register(ctx context.Context, params service.RegisterParams) (entities.User, error)
	Login(ctx context.Context, username, password string) (string, entities.User, error)
	VerifyToken(tokenString string) (entities.TokenClaims, error)
	ListUsers(ctx context.Context) ([]entities.User, error)
}

type CatalogService interface {
	Menu(ctx context.Context) (entities.Menu, error)
	Campaigns(ctx context.Context) ([]entities.Campaign, error)
	CreateMenuItem(ctx context.Context, item entities.MenuItem) error
	UpdateMenuItem(ctx context.Context, item entities.MenuItem) error
	DeleteMenuItem(ctx context.Context, productID string) error
	CreateCampaign(ctx context.Context, c entities.Campaign) error
}

type CartService interface {
	AddItem(ctx context.Context, cartID, productID string) (entities.CartItem, error)
	Items(ctx context.Context, cartID string) ([]entities.CartItem, error)
}

type OrderService interface {
	PlaceUserOrder(ctx context.Context, userID, cartID string) (entities.OrderSummary, error)
	PlaceGuestOrder(ctx context.Context, guest entities.GuestInfo, cartID string) (entities.OrderSummary, error)
	OrderHistory(ctx context.Context, userID string) ([]entities.Order, float64, error)
}

type HTTPHandler struct {
	logger   *slog.Logger
	validate *validator.Validate
	auth     AuthService
	catalog  CatalogService
	cart     CartService
	orders   OrderService
}

func NewHTTPHandler(logger *slog.Logger, auth AuthService, catalog CatalogService, cart CartService, orders OrderService) *HTTPHandler {
	return &HTTPHandler{
		logger:   logger.With(slog.String("handler", "http")),
		validate: validator.New(),
		auth:     auth,
		catalog:  catalog,
		cart:     cart,
		orders:   orders,
	}
}

func (h *HTTPHandler) Init(r chi.Router) {
	r.Get("/api/beans", h.GetMenu)
	r.Get("/api/campaigns", h.GetCampaigns)
	r.Post("/api/signup", h.Signup)
	r.Post("/api/login", h.Login)
	r.Get("/api/cart", h.GetCart)
	r.Post("/api/cart/add", h.AddToCart)
	r.Post("/api/cart/sendguestorder", h.SendGuestOrder)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(h.auth))
		r.Put("/api/cart/sendorder", h.SendOrder)
		r.Get("/api/user/orderhistory", h.OrderHistory)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(entities.RoleAdmin))
			r.Get("/api/users", h.GetUsers)
			r.Post("/api/admin/menu", h.CreateMenuItem)
			r.Put("/api/admin/menu/{product_id}", h.UpdateMenuItem)
			r.Delete("/api/admin/menu/{product_id}", h.DeleteMenuItem)
			r.Post("/api/admin/campaigns", h.CreateCampaign)
		})
	})
}

// GetMenu returns the full coffee menu.
func (h *HTTPHandler) GetMenu(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	menu, err := h.catalog.Menu(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get menu", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	items := make([]MenuItem, 0, len(menu))
	for _, m := range menu {
		items = append(items, MenuItemEntityToJSON(m))
	}
	utils.WriteJSON(w, items, http.StatusOK)
}

// GetCampaigns returns the currently configured campaigns.
func (h *HTTPHandler) GetCampaigns(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	campaigns, err := h.catalog.Campaigns(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get campaigns", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	res := make([]Campaign, 0, len(campaigns))
	for _, c := range campaigns {
		res = append(res, CampaignEntityToJSON(c))
	}
	utils.WriteJSON(w, res, http.StatusOK)
}

// Signup creates a new account.
func (h *HTTPHandler) Signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SignupRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	user, err := h.auth.Register(ctx, SignupJSONToParams(req))
	if errors.Is(err, entities.ErrUserExists) {
		utils.WriteError(w, "username or email already exists, please try to login", http.StatusConflict)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to register user", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, UserEntityToJSON(user), http.StatusCreated)
}

// Login verifies credentials and returns a signed token.
func (h *HTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LoginRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	token, _, err := h.auth.Login(ctx, req.Username, req.Password)
	if errors.Is(err, entities.ErrUserNotFound) {
		utils.WriteError(w, "user does not exist, please try again", http.StatusBadRequest)
		return
	}
	if errors.Is(err, entities.ErrInvalidCredentials) {
		utils.WriteError(w, "wrong password, please try again", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to log in user", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, LoginResponse{
		Message: "Welcome to AirBean! You are logged in",
		Token:   token,
	}, http.StatusOK)
}

// GetUsers lists all accounts. Admin only.
func (h *HTTPHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := h.auth.ListUsers(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list users", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	res := make([]User, 0, len(users))
	for _, u := range users {
		res = append(res, UserEntityToJSON(u))
	}
	utils.WriteJSON(w, res, http.StatusOK)
}
