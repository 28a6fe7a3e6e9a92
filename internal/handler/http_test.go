package handler_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/airbean/airbean-api/internal/entities"
	"github.com/airbean/airbean-api/internal/handler"
	"github.com/airbean/airbean-api/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAuthService struct{ mock.Mock }

func (m *mockAuthService) Register(ctx context.Context, params service.RegisterParams) (entities.User, error) {
	args := m.Called(ctx, params)
	user, _ := args.Get(0).(entities.User)
	return user, args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, username, password string) (string, entities.User, error) {
	args := m.Called(ctx, username, password)
	user, _ := args.Get(1).(entities.User)
	return args.String(0), user, args.Error(2)
}

func (m *mockAuthService) VerifyToken(tokenString string) (entities.TokenClaims, error) {
	args := m.Called(tokenString)
	claims, _ := args.Get(0).(entities.TokenClaims)
	return claims, args.Error(1)
}

func (m *mockAuthService) ListUsers(ctx context.Context) ([]entities.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]entities.User)
	return users, args.Error(1)
}

type mockCatalogService struct{ mock.Mock }

func (m *mockCatalogService) Menu(ctx context.Context) (entities.Menu, error) {
	args := m.Called(ctx)
	menu, _ := args.Get(0).(entities.Menu)
	return menu, args.Error(1)
}

func (m *mockCatalogService) Campaigns(ctx context.Context) ([]entities.Campaign, error) {
	args := m.Called(ctx)
	campaigns, _ := args.Get(0).([]entities.Campaign)
	return campaigns, args.Error(1)
}

func (m *mockCatalogService) CreateMenuItem(ctx context.Context, item entities.MenuItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockCatalogService) UpdateMenuItem(ctx context.Context, item entities.MenuItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockCatalogService) DeleteMenuItem(ctx context.Context, productID string) error {
	return m.Called(ctx, productID).Error(0)
}

func (m *mockCatalogService) CreateCampaign(ctx context.Context, c entities.Campaign) error {
	return m.Called(ctx, c).Error(0)
}

type mockCartService struct{ mock.Mock }

func (m *mockCartService) AddItem(ctx context.Context, cartID, productID string) (entities.CartItem, error) {
	args := m.Called(ctx, cartID, productID)
	item, _ := args.Get(0).(entities.CartItem)
	return item, args.Error(1)
}

func (m *mockCartService) Items(ctx context.Context, cartID string) ([]entities.CartItem, error) {
	args := m.Called(ctx, cartID)
	items, _ := args.Get(0).([]entities.CartItem)
	return items, args.Error(1)
}

type mockOrderService struct{ mock.Mock }

func (m *mockOrderService) PlaceUserOrder(ctx context.Context, userID, cartID string) (entities.OrderSummary, error) {
	args := m.Called(ctx, userID, cartID)
	summary, _ := args.Get(0).(entities.OrderSummary)
	return summary, args.Error(1)
}

func (m *mockOrderService) PlaceGuestOrder(ctx context.Context, guest entities.GuestInfo, cartID string) (entities.OrderSummary, error) {
	args := m.Called(ctx, guest, cartID)
	summary, _ := args.Get(0).(entities.OrderSummary)
	return summary, args.Error(1)
}

func (m *mockOrderService) OrderHistory(ctx context.Context, userID string) ([]entities.Order, float64, error) {
	args := m.Called(ctx, userID)
	orders, _ := args.Get(0).([]entities.Order)
	total, _ := args.Get(1).(float64)
	return orders, total, args.Error(2)
}

type testEnv struct {
	auth    *mockAuthService
	catalog *mockCatalogService
	cart    *mockCartService
	orders  *mockOrderService
	router  chi.Router
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		auth:    new(mockAuthService),
		catalog: new(mockCatalogService),
		cart:    new(mockCartService),
		orders:  new(mockOrderService),
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := handler.NewHTTPHandler(logger, env.auth, env.catalog, env.cart, env.orders)

	env.router = chi.NewRouter()
	h.Init(env.router)
	return env
}

const (
	aliceID = "aa8f7cb2-77a4-4f61-9f3e-2a41f7f97c11"
	cartID  = "session-1"
)

func do(t *testing.T, router chi.Router, method, target, body, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr.Result()
}

func readBody(t *testing.T, res *http.Response) string {
	t.Helper()
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return string(body)
}

func TestHTTPHandler_GetMenu(t *testing.T) {
	env := newTestEnv(t)
	env.catalog.On("Menu", mock.Anything).
		Return(entities.Menu{{ID: "bryggkaffe", Title: "Bryggkaffe", Price: 39}}, nil).Once()

	res := do(t, env.router, http.MethodGet, "/api/beans", "", "")

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, readBody(t, res), `"id":"bryggkaffe"`)
}

func TestHTTPHandler_AddToCart(t *testing.T) {
	t.Run("unknown product", func(t *testing.T) {
		env := newTestEnv(t)
		env.cart.On("AddItem", mock.Anything, cartID, "chai-latte").
			Return(entities.CartItem{}, entities.ErrProductNotFound).Once()

		res := do(t, env.router, http.MethodPost, "/api/cart/add",
			`{"cart_id":"session-1","product_id":"chai-latte"}`, "")

		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.Contains(t, readBody(t, res), "product does not exist")
	})

	t.Run("missing fields fail validation", func(t *testing.T) {
		env := newTestEnv(t)

		res := do(t, env.router, http.MethodPost, "/api/cart/add", `{"cart_id":"session-1"}`, "")

		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		env.cart.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ok", func(t *testing.T) {
		env := newTestEnv(t)
		env.cart.On("AddItem", mock.Anything, cartID, "cortado").
			Return(entities.CartItem{ItemKey: "k1", ProductID: "cortado", Price: 39}, nil).Once()

		res := do(t, env.router, http.MethodPost, "/api/cart/add",
			`{"cart_id":"session-1","product_id":"cortado"}`, "")

		assert.Equal(t, http.StatusCreated, res.StatusCode)
		assert.Contains(t, readBody(t, res), `"item_key":"k1"`)
	})
}

func TestHTTPHandler_SendOrder(t *testing.T) {
	orderBody := `{"user_id":"` + aliceID + `","cart_id":"session-1"}`

	t.Run("ok", func(t *testing.T) {
		env := newTestEnv(t)
		eta := time.Date(2024, time.March, 10, 12, 30, 0, 0, time.UTC)

		env.auth.On("VerifyToken", "valid").
			Return(entities.TokenClaims{UserID: aliceID, Role: entities.RoleUser}, nil).Once()
		env.orders.On("PlaceUserOrder", mock.Anything, aliceID, cartID).
			Return(entities.OrderSummary{OrderID: "o1", Total: 55, EstimatedDelivery: eta}, nil).Once()

		res := do(t, env.router, http.MethodPut, "/api/cart/sendorder", orderBody, "valid")

		assert.Equal(t, http.StatusOK, res.StatusCode)
		body := readBody(t, res)
		assert.Contains(t, body, `"total":55`)
		assert.Contains(t, body, "will be delivered")
	})

	t.Run("empty cart", func(t *testing.T) {
		env := newTestEnv(t)
		env.auth.On("VerifyToken", "valid").
			Return(entities.TokenClaims{UserID: aliceID}, nil).Once()
		env.orders.On("PlaceUserOrder", mock.Anything, aliceID, cartID).
			Return(entities.OrderSummary{}, entities.ErrEmptyCart).Once()

		res := do(t, env.router, http.MethodPut, "/api/cart/sendorder", orderBody, "valid")

		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.Contains(t, readBody(t, res), "no products in cart")
	})

	t.Run("missing token", func(t *testing.T) {
		env := newTestEnv(t)

		res := do(t, env.router, http.MethodPut, "/api/cart/sendorder", orderBody, "")

		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
		env.orders.AssertNotCalled(t, "PlaceUserOrder", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("token subject mismatch", func(t *testing.T) {
		env := newTestEnv(t)
		env.auth.On("VerifyToken", "valid").
			Return(entities.TokenClaims{UserID: "bb8f7cb2-77a4-4f61-9f3e-2a41f7f97c22"}, nil).Once()

		res := do(t, env.router, http.MethodPut, "/api/cart/sendorder", orderBody, "valid")

		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
		env.orders.AssertNotCalled(t, "PlaceUserOrder", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("expired token", func(t *testing.T) {
		env := newTestEnv(t)
		env.auth.On("VerifyToken", "stale").
			Return(entities.TokenClaims{}, entities.ErrInvalidToken).Once()

		res := do(t, env.router, http.MethodPut, "/api/cart/sendorder", orderBody, "stale")

		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	})
}

func TestHTTPHandler_SendGuestOrder(t *testing.T) {
	guestBody := `{
		"name": "Nisse",
		"email": "nisse@example.com",
		"address": {"street": "Kaffegatan 1", "zip": "12345", "city": "Göteborg"},
		"cart_id": "session-1"
	}`

	t.Run("ok", func(t *testing.T) {
		env := newTestEnv(t)
		env.orders.On("PlaceGuestOrder", mock.Anything, mock.MatchedBy(func(g entities.GuestInfo) bool {
			return g.Name == "Nisse" && g.Address.City == "Göteborg"
		}), cartID).Return(entities.OrderSummary{OrderID: "g1", Total: 49}, nil).Once()

		res := do(t, env.router, http.MethodPost, "/api/cart/sendguestorder", guestBody, "")

		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Contains(t, readBody(t, res), `"order_id":"g1"`)
	})

	t.Run("empty cart creates no record", func(t *testing.T) {
		env := newTestEnv(t)
		env.orders.On("PlaceGuestOrder", mock.Anything, mock.Anything, cartID).
			Return(entities.OrderSummary{}, entities.ErrEmptyCart).Once()

		res := do(t, env.router, http.MethodPost, "/api/cart/sendguestorder", guestBody, "")

		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.Contains(t, readBody(t, res), "no products in cart")
	})

	t.Run("incomplete address fails validation", func(t *testing.T) {
		env := newTestEnv(t)

		res := do(t, env.router, http.MethodPost, "/api/cart/sendguestorder",
			`{"name":"Nisse","email":"nisse@example.com","address":{"street":"Kaffegatan 1"},"cart_id":"session-1"}`, "")

		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		env.orders.AssertNotCalled(t, "PlaceGuestOrder", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestHTTPHandler_OrderHistory(t *testing.T) {
	target := "/api/user/orderhistory?user_id=" + aliceID

	t.Run("ok", func(t *testing.T) {
		env := newTestEnv(t)
		env.auth.On("VerifyToken", "valid").
			Return(entities.TokenClaims{UserID: aliceID}, nil).Once()
		env.orders.On("OrderHistory", mock.Anything, aliceID).
			Return([]entities.Order{
				{OrderID: "o1", Total: 55, IsDelivered: true},
				{OrderID: "o2", Total: 49},
			}, 104.0, nil).Once()

		res := do(t, env.router, http.MethodGet, target, "", "valid")

		assert.Equal(t, http.StatusOK, res.StatusCode)
		body := readBody(t, res)
		assert.Contains(t, body, `"total":104`)
		assert.Contains(t, body, `"is_delivered":true`)
	})

	t.Run("no orders yet", func(t *testing.T) {
		env := newTestEnv(t)
		env.auth.On("VerifyToken", "valid").
			Return(entities.TokenClaims{UserID: aliceID}, nil).Once()
		env.orders.On("OrderHistory", mock.Anything, aliceID).
			Return(nil, 0.0, entities.ErrNoOrders).Once()

		res := do(t, env.router, http.MethodGet, target, "", "valid")

		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.Contains(t, readBody(t, res), "no orders")
	})
}

func TestHTTPHandler_AdminRoutes(t *testing.T) {
	t.Run("non-admin role is forbidden", func(t *testing.T) {
		env := newTestEnv(t)
		env.auth.On("VerifyToken", "user-token").
			Return(entities.TokenClaims{UserID: aliceID, Role: entities.RoleUser}, nil).Once()

		res := do(t, env.router, http.MethodGet, "/api/users", "", "user-token")

		assert.Equal(t, http.StatusForbidden, res.StatusCode)
		env.auth.AssertNotCalled(t, "ListUsers", mock.Anything)
	})

	t.Run("admin can manage the menu", func(t *testing.T) {
		env := newTestEnv(t)
		env.auth.On("VerifyToken", "admin-token").
			Return(entities.TokenClaims{UserID: aliceID, Role: entities.RoleAdmin}, nil).Once()
		env.catalog.On("CreateMenuItem", mock.Anything, entities.MenuItem{
			ID: "chai-latte", Title: "Chai Latte", Price: 49,
		}).Return(nil).Once()

		res := do(t, env.router, http.MethodPost, "/api/admin/menu",
			`{"id":"chai-latte","title":"Chai Latte","price":49}`, "admin-token")

		assert.Equal(t, http.StatusCreated, res.StatusCode)
	})
}
