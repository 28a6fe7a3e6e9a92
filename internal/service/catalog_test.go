package service_test

import (
	"context"
	"testing"

	"github.com/airbean/airbean-api/internal/entities"
	"github.com/airbean/airbean-api/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mapCache is a trivial Cache backed by a map, enough for unit tests.
type mapCache map[string][]byte

func (c mapCache) Get(key string) ([]byte, bool) {
	v, ok := c[key]
	return v, ok
}

func (c mapCache) Set(key string, value []byte) { c[key] = value }
func (c mapCache) Delete(key string)            { delete(c, key) }

func TestCatalogService_Menu(t *testing.T) {
	menu := entities.Menu{
		{ID: "bryggkaffe", Title: "Bryggkaffe", Price: 39},
		{ID: "cortado", Title: "Cortado", Price: 39},
	}

	t.Run("first read hits the repo, second the cache", func(t *testing.T) {
		repo := new(mockMenuRepo)
		repo.On("ListMenu", mock.Anything).Return(menu, nil).Once()

		svc := service.NewCatalogService(discardLogger(), repo, mapCache{})

		got, err := svc.Menu(context.Background())
		require.NoError(t, err)
		assert.Equal(t, menu, got)

		got, err = svc.Menu(context.Background())
		require.NoError(t, err)
		assert.Equal(t, menu, got)

		repo.AssertNumberOfCalls(t, "ListMenu", 1)
	})

	t.Run("mutations invalidate the cached menu", func(t *testing.T) {
		repo := new(mockMenuRepo)
		repo.On("ListMenu", mock.Anything).Return(menu, nil).Twice()
		repo.On("UpdateMenuItem", mock.Anything, mock.Anything).Return(nil).Once()

		svc := service.NewCatalogService(discardLogger(), repo, mapCache{})

		_, err := svc.Menu(context.Background())
		require.NoError(t, err)

		err = svc.UpdateMenuItem(context.Background(), entities.MenuItem{ID: "cortado", Title: "Cortado", Price: 42})
		require.NoError(t, err)

		_, err = svc.Menu(context.Background())
		require.NoError(t, err)

		repo.AssertNumberOfCalls(t, "ListMenu", 2)
	})

	t.Run("corrupt cache entry falls back to the repo", func(t *testing.T) {
		repo := new(mockMenuRepo)
		repo.On("ListMenu", mock.Anything).Return(menu, nil).Once()

		cache := mapCache{"menu": []byte("broken")}
		svc := service.NewCatalogService(discardLogger(), repo, cache)

		got, err := svc.Menu(context.Background())
		require.NoError(t, err)
		assert.Equal(t, menu, got)
	})
}
