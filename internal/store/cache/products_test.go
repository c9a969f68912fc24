package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/amazoniatrade/marketplace/internal/models"
)

type stubProductReader struct {
	getFn func(ctx context.Context, id uint) (*models.Product, error)
	calls int
}

func (s *stubProductReader) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	s.calls++
	if s.getFn != nil {
		return s.getFn(ctx, id)
	}
	return nil, errors.New("not stubbed")
}

func sampleProduct() *models.Product {
	return &models.Product{
		ID:          7,
		Name:        "Woven basket",
		Description: "handmade straw basket",
		Price:       decimal.NewFromInt(30),
		Image:       "a.jpg",
		UserID:      1,
	}
}

func TestProductCacheNilClientBypasses(t *testing.T) {
	want := sampleProduct()
	inner := &stubProductReader{getFn: func(ctx context.Context, id uint) (*models.Product, error) {
		return want, nil
	}}

	c := NewProductCache(nil, time.Minute, inner)
	got, err := c.GetByID(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, want, got)
	require.Equal(t, 1, inner.calls)
}

func TestProductCacheHit(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	want := sampleProduct()
	b, err := json.Marshal(want)
	require.NoError(t, err)
	mock.ExpectGet("products:7").SetVal(string(b))

	inner := &stubProductReader{}
	c := NewProductCache(rdb, time.Minute, inner)

	got, err := c.GetByID(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, want.Name, got.Name)
	require.True(t, got.Price.Equal(want.Price))
	require.Zero(t, inner.calls, "inner store must not be hit on a cache hit")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductCacheMissFillsCache(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	want := sampleProduct()
	b, err := json.Marshal(want)
	require.NoError(t, err)

	mock.ExpectGet("products:7").RedisNil()
	mock.ExpectSet("products:7", b, time.Minute).SetVal("OK")

	inner := &stubProductReader{getFn: func(ctx context.Context, id uint) (*models.Product, error) {
		return want, nil
	}}
	c := NewProductCache(rdb, time.Minute, inner)

	got, err := c.GetByID(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, want, got)
	require.Equal(t, 1, inner.calls)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductCacheInnerErrorPropagates(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	wantErr := errors.New("database gone")
	mock.ExpectGet("products:7").RedisNil()

	inner := &stubProductReader{getFn: func(ctx context.Context, id uint) (*models.Product, error) {
		return nil, wantErr
	}}
	c := NewProductCache(rdb, time.Minute, inner)

	_, err := c.GetByID(context.Background(), 7)
	require.ErrorIs(t, err, wantErr)
}

func TestProductCacheInvalidate(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectDel("products:7").SetVal(1)

	c := NewProductCache(rdb, time.Minute, &stubProductReader{})
	c.Invalidate(context.Background(), 7)
	require.NoError(t, mock.ExpectationsWereMet())
}
