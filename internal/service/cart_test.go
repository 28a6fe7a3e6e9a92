package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/airbean/airbean-api/internal/entities"
	"github.com/airbean/airbean-api/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockMenuRepo struct{ mock.Mock }

func (m *mockMenuRepo) ListMenu(ctx context.Context) (entities.Menu, error) {
	args := m.Called(ctx)
	menu, _ := args.Get(0).(entities.Menu)
	return menu, args.Error(1)
}

func (m *mockMenuRepo) GetMenuItem(ctx context.Context, productID string) (entities.MenuItem, error) {
	args := m.Called(ctx, productID)
	item, _ := args.Get(0).(entities.MenuItem)
	return item, args.Error(1)
}

func (m *mockMenuRepo) CreateMenuItem(ctx context.Context, item entities.MenuItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockMenuRepo) UpdateMenuItem(ctx context.Context, item entities.MenuItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockMenuRepo) DeleteMenuItem(ctx context.Context, productID string) error {
	return m.Called(ctx, productID).Error(0)
}

func (m *mockMenuRepo) ListCampaigns(ctx context.Context) ([]entities.Campaign, error) {
	args := m.Called(ctx)
	campaigns, _ := args.Get(0).([]entities.Campaign)
	return campaigns, args.Error(1)
}

func (m *mockMenuRepo) CreateCampaign(ctx context.Context, c entities.Campaign) error {
	return m.Called(ctx, c).Error(0)
}

func TestCartService_AddItem(t *testing.T) {
	bryggkaffe := entities.MenuItem{
		ID:          "bryggkaffe",
		Title:       "Bryggkaffe",
		Description: "Bryggd på månadens bönor.",
		Price:       39,
	}

	t.Run("snapshots the menu item under a fresh key", func(t *testing.T) {
		menu := new(mockMenuRepo)
		carts := new(mockCartRepo)

		menu.On("GetMenuItem", mock.Anything, "bryggkaffe").Return(bryggkaffe, nil).Twice()
		carts.On("AddItem", mock.Anything, testCartID, mock.MatchedBy(func(it entities.CartItem) bool {
			return it.ProductID == "bryggkaffe" && it.Price == 39 &&
				it.ItemKey != "" && it.AddedAt.Equal(t0)
		})).Return(nil).Twice()

		svc := service.NewCartService(discardLogger(), menu, carts, func() time.Time { return t0 })

		first, err := svc.AddItem(context.Background(), testCartID, "bryggkaffe")
		require.NoError(t, err)
		second, err := svc.AddItem(context.Background(), testCartID, "bryggkaffe")
		require.NoError(t, err)

		// same product twice means two distinct cart lines
		assert.NotEqual(t, first.ItemKey, second.ItemKey)
	})

	t.Run("unknown product leaves the cart unchanged", func(t *testing.T) {
		menu := new(mockMenuRepo)
		carts := new(mockCartRepo)

		menu.On("GetMenuItem", mock.Anything, "chai-latte").
			Return(entities.MenuItem{}, entities.ErrProductNotFound).Once()

		svc := service.NewCartService(discardLogger(), menu, carts, nil)

		_, err := svc.AddItem(context.Background(), testCartID, "chai-latte")
		assert.ErrorIs(t, err, entities.ErrProductNotFound)
		carts.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCartService_Items(t *testing.T) {
	menu := new(mockMenuRepo)
	carts := new(mockCartRepo)

	want := []entities.CartItem{{ItemKey: "k1", ProductID: "cortado", Price: 39}}
	carts.On("ListItems", mock.Anything, testCartID).Return(want, nil).Once()

	svc := service.NewCartService(discardLogger(), menu, carts, nil)

	got, err := svc.Items(context.Background(), testCartID)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
