package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/amazoniatrade/marketplace/internal/models"
)

// OrderStore owns the serialization boundary for line items: callers work
// with []models.LineItem, the items column stays an opaque JSON document.
type OrderStore struct {
	DB *gorm.DB
}

func encodeItems(items []models.LineItem) (string, error) {
	raw, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode line items: %w", err)
	}
	return string(raw), nil
}

func decodeItems(raw string) ([]models.LineItem, error) {
	if raw == "" {
		return nil, nil
	}
	var items []models.LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decode line items: %w", err)
	}
	return items, nil
}

func (s *OrderStore) Create(ctx context.Context, order *models.Order) error {
	raw, err := encodeItems(order.Items)
	if err != nil {
		return err
	}
	order.ItemsJSON = raw
	return s.DB.WithContext(ctx).Create(order).Error
}

// ListForUser returns the user's orders, most recent first.
func (s *OrderStore) ListForUser(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := decodeItems(orders[i].ItemsJSON)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

// FindForUser looks an order up by id scoped to its owner. A wrong owner is
// indistinguishable from a missing order.
func (s *OrderStore) FindForUser(ctx context.Context, id, userID uint) (*models.Order, error) {
	var order models.Order
	if err := s.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	items, err := decodeItems(order.ItemsJSON)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return &order, nil
}

func (s *OrderStore) UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) error {
	res := s.DB.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
