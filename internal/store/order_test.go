package store

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/amazoniatrade/marketplace/internal/models"
)

func testItems() []models.LineItem {
	return []models.LineItem{
		{ProductID: 1, Name: "Woven basket", Price: decimal.NewFromInt(30), Quantity: 2, Image: "a.jpg"},
		{ProductID: 2, Name: "Clay pot", Price: decimal.NewFromInt(45), Quantity: 1, Image: "b.jpg"},
	}
}

func TestOrderCreateRoundtrip(t *testing.T) {
	orders := &OrderStore{DB: initTestDB(t)}
	ctx := context.Background()

	order := &models.Order{
		UserID:  1,
		Items:   testItems(),
		Total:   decimal.NewFromInt(105),
		Address: "Rua das Flores 12, Manaus",
		Payment: models.PaymentPix,
		Status:  models.StatusProcessing,
	}
	require.NoError(t, orders.Create(ctx, order))
	require.NotZero(t, order.ID)
	require.NotEmpty(t, order.ItemsJSON)

	got, err := orders.FindForUser(ctx, order.ID, 1)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	require.Equal(t, "Woven basket", got.Items[0].Name)
	require.Equal(t, uint(2), got.Items[0].Quantity)
	require.True(t, got.Items[1].Price.Equal(decimal.NewFromInt(45)))
}

func TestOrderFindForUserOwnership(t *testing.T) {
	orders := &OrderStore{DB: initTestDB(t)}
	ctx := context.Background()

	order := &models.Order{
		UserID:  1,
		Items:   testItems(),
		Total:   decimal.NewFromInt(105),
		Address: "Rua das Flores 12",
		Payment: models.PaymentBoleto,
		Status:  models.StatusProcessing,
	}
	require.NoError(t, orders.Create(ctx, order))

	_, err := orders.FindForUser(ctx, order.ID, 2)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = orders.FindForUser(ctx, 9999, 1)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestOrderListForUserNewestFirst(t *testing.T) {
	orders := &OrderStore{DB: initTestDB(t)}
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		order := &models.Order{
			UserID:    1,
			Items:     testItems(),
			Total:     decimal.NewFromInt(int64(10 * (i + 1))),
			Address:   "Rua das Flores 12",
			Payment:   models.PaymentPix,
			Status:    models.StatusProcessing,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, orders.Create(ctx, order))
	}

	// another user's order must not leak in
	require.NoError(t, orders.Create(ctx, &models.Order{
		UserID: 2, Items: testItems(), Total: decimal.NewFromInt(1),
		Address: "x", Payment: models.PaymentPix, Status: models.StatusProcessing,
	}))

	list, err := orders.ListForUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i := 1; i < len(list); i++ {
		require.True(t, list[i-1].CreatedAt.After(list[i].CreatedAt),
			"orders must be sorted newest first")
	}
}

func TestOrderUpdateStatus(t *testing.T) {
	orders := &OrderStore{DB: initTestDB(t)}
	ctx := context.Background()

	order := &models.Order{
		UserID: 1, Items: testItems(), Total: decimal.NewFromInt(105),
		Address: "Rua das Flores 12", Payment: models.PaymentPix, Status: models.StatusProcessing,
	}
	require.NoError(t, orders.Create(ctx, order))

	require.NoError(t, orders.UpdateStatus(ctx, order.ID, models.StatusDelivered))

	got, err := orders.FindForUser(ctx, order.ID, 1)
	require.NoError(t, err)
	require.Equal(t, models.StatusDelivered, got.Status)

	require.ErrorIs(t, orders.UpdateStatus(ctx, 9999, models.StatusDelivered), ErrNotFound)
}
