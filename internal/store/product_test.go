package store

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/amazoniatrade/marketplace/internal/models"
)

func TestProductCreateValidation(t *testing.T) {
	products := &ProductStore{DB: initTestDB(t)}
	ctx := context.Background()

	err := products.Create(ctx, &models.Product{
		Name:  "Basket",
		Price: decimal.Zero,
	})
	require.ErrorIs(t, err, ErrInvalidProduct)

	err = products.Create(ctx, &models.Product{
		Price: decimal.NewFromInt(10),
	})
	require.ErrorIs(t, err, ErrInvalidProduct)

	var count int64
	require.NoError(t, products.DB.Model(&models.Product{}).Count(&count).Error)
	require.Equal(t, int64(0), count)
}

func TestProductListAndSearch(t *testing.T) {
	products := &ProductStore{DB: initTestDB(t)}
	ctx := context.Background()

	seed := []models.Product{
		{Name: "Woven basket", Description: "handmade straw basket", Price: decimal.NewFromInt(30), Image: "a.jpg", UserID: 1},
		{Name: "Clay pot", Description: "fired clay pot", Price: decimal.NewFromInt(45), Image: "b.jpg", UserID: 1},
		{Name: "Necklace", Description: "seed bead pattern", Price: decimal.NewFromInt(15), Image: "c.jpg", UserID: 2},
	}
	for i := range seed {
		require.NoError(t, products.Create(ctx, &seed[i]))
	}

	all, err := products.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)

	matched, err := products.List(ctx, "basket")
	require.NoError(t, err)
	require.Len(t, matched, 2)

	none, err := products.List(ctx, "no-such-thing")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestProductGetByID(t *testing.T) {
	products := &ProductStore{DB: initTestDB(t)}
	ctx := context.Background()

	prod := models.Product{Name: "Clay pot", Description: "pot", Price: decimal.NewFromInt(45), Image: "b.jpg", UserID: 1}
	require.NoError(t, products.Create(ctx, &prod))

	got, err := products.GetByID(ctx, prod.ID)
	require.NoError(t, err)
	require.Equal(t, "Clay pot", got.Name)
	require.True(t, got.Price.Equal(decimal.NewFromInt(45)))

	_, err = products.GetByID(ctx, 9999)
	require.ErrorIs(t, err, ErrNotFound)
}
