package service

import (
	"context"

	"github.com/hatchery/hatchd/internal/backend/domain"
	"github.com/hatchery/hatchd/internal/backend/store"
	"github.com/hatchery/hatchd/pkg/idx"
)

type ItemService struct {
	Store store.Store
}

// GetItem fetches an item by id.
func (s *ItemService) GetItem(ctx context.Context, id string) (domain.Item, error) {
	return s.Store.Items().GetItemByID(ctx, id)
}

// ListItems returns all items in creation order.
func (s *ItemService) ListItems(ctx context.Context) ([]domain.Item, error) {
	return s.Store.Items().ListItems(ctx)
}

// CreateItem assigns an id and persists the item.
func (s *ItemService) CreateItem(ctx context.Context, name string, price float64) (domain.Item, error) {
	it := domain.Item{
		ID:    idx.New().String(),
		Name:  name,
		Price: price,
	}
	if err := s.Store.Items().CreateItem(ctx, it); err != nil {
		return domain.Item{}, err
	}
	return s.Store.Items().GetItemByID(ctx, it.ID)
}

// UpdateItem replaces an item's name and price.
func (s *ItemService) UpdateItem(ctx context.Context, id, name string, price float64) (domain.Item, error) {
	it := domain.Item{ID: id, Name: name, Price: price}
	if err := s.Store.Items().UpdateItem(ctx, it); err != nil {
		return domain.Item{}, err
	}
	return s.Store.Items().GetItemByID(ctx, id)
}

// DeleteItem removes an item.
func (s *ItemService) DeleteItem(ctx context.Context, id string) error {
	return s.Store.Items().DeleteItem(ctx, id)
}
