package service

import (
	"context"
	"log/slog"

	"github.com/airbean/airbean-api/internal/entities"
)

const menuCacheKey = "menu"

type MenuRepo interface {
	ListMenu(ctx context.Context) (entities.Menu, error)
	GetMenuItem(ctx context.Context, productID string) (entities.MenuItem, error)
	CreateMenuItem(ctx context.Context, item entities.MenuItem) error
	UpdateMenuItem(ctx context.Context, item entities.MenuItem) error
	DeleteMenuItem(ctx context.Context, productID string) error
	ListCampaigns(ctx context.Context) ([]entities.Campaign, error)
	CreateCampaign(ctx context.Context, c entities.Campaign) error
}

type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Delete(key string)
}

type catalogService struct {
	logger *slog.Logger
	menu   MenuRepo
	cache  Cache
}

func NewCatalogService(logger *slog.Logger, menu MenuRepo, cache Cache) *catalogService {
	return &catalogService{
		logger: logger.With(slog.String("service", "catalog")),
		menu:   menu,
		cache:  cache,
	}
}

// Menu returns the full menu, served from cache when possible.
func (s *catalogService) Menu(ctx context.Context) (entities.Menu, error) {
	if data, ok := s.cache.Get(menuCacheKey); ok {
		var menu entities.Menu
		if err := menu.Unmarshal(data); err == nil {
			return menu, nil
		}
		// corrupt entry, fall through to the repo
		s.cache.Delete(menuCacheKey)
	}

	menu, err := s.menu.ListMenu(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := menu.Marshal(); err == nil {
		s.cache.Set(menuCacheKey, data)
	} else {
		s.logger.Error("failed to marshal menu for cache", slog.Any("error", err))
	}
	return menu, nil
}

func (s *catalogService) Campaigns(ctx context.Context) ([]entities.Campaign, error) {
	return s.menu.ListCampaigns(ctx)
}

func (s *catalogService) CreateMenuItem(ctx context.Context, item entities.MenuItem) error {
	if err := s.menu.CreateMenuItem(ctx, item); err != nil {
		return err
	}
	s.cache.Delete(menuCacheKey)
	return nil
}

func (s *catalogService) UpdateMenuItem(ctx context.Context, item entities.MenuItem) error {
	if err := s.menu.UpdateMenuItem(ctx, item); err != nil {
		return err
	}
	s.cache.Delete(menuCacheKey)
	return nil
}

func (s *catalogService) DeleteMenuItem(ctx context.Context, productID string) error {
	if err := s.menu.DeleteMenuItem(ctx, productID); err != nil {
		return err
	}
	s.cache.Delete(menuCacheKey)
	return nil
}

func (s *catalogService) CreateCampaign(ctx context.Context, c entities.Campaign) error {
	return s.menu.CreateCampaign(ctx, c)
}
