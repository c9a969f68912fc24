package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/amazoniatrade/marketplace/internal/models"
)

var ErrInvalidProduct = errors.New("invalid product")

type ProductStore struct {
	DB *gorm.DB
}

func (s *ProductStore) Create(ctx context.Context, prod *models.Product) error {
	if prod.Name == "" || !prod.Price.IsPositive() {
		return ErrInvalidProduct
	}
	return s.DB.WithContext(ctx).Create(prod).Error
}

// List returns every product, or a substring match against name and
// description when searchTerm is set. Case sensitivity follows the collation
// of the underlying store.
func (s *ProductStore) List(ctx context.Context, searchTerm string) ([]models.Product, error) {
	q := s.DB.WithContext(ctx).Model(&models.Product{})
	if searchTerm != "" {
		like := "%" + searchTerm + "%"
		q = q.Where("name LIKE ? OR description LIKE ?", like, like)
	}

	var items []models.Product
	if err := q.Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *ProductStore) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var prod models.Product
	if err := s.DB.WithContext(ctx).First(&prod, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &prod, nil
}
