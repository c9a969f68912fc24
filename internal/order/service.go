// Package order implements order placement, delivery confirmation and the
// loyalty points award.
package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/amazoniatrade/marketplace/internal/logging"
	"github.com/amazoniatrade/marketplace/internal/models"
	"github.com/amazoniatrade/marketplace/internal/store"
)

var (
	ErrValidation = errors.New("validation") // 400
	ErrNotFound   = errors.New("not found")  // 404
)

type Service struct {
	DB *gorm.DB
}

type PlaceOrderInput struct {
	Items   []models.LineItem
	Total   decimal.Decimal
	Address string
	Payment string
}

func validate(in PlaceOrderInput) error {
	if len(in.Items) == 0 {
		return fmt.Errorf("%w: order has no items", ErrValidation)
	}
	for i, item := range in.Items {
		if item.ProductID == 0 {
			return fmt.Errorf("%w: item %d missing product reference", ErrValidation, i)
		}
		if item.Name == "" {
			return fmt.Errorf("%w: item %d missing name snapshot", ErrValidation, i)
		}
		if !item.Price.IsPositive() {
			return fmt.Errorf("%w: item %d price must be positive", ErrValidation, i)
		}
		if item.Quantity < 1 {
			return fmt.Errorf("%w: item %d quantity must be at least 1", ErrValidation, i)
		}
	}
	if !in.Total.IsPositive() {
		return fmt.Errorf("%w: total must be positive", ErrValidation)
	}
	if in.Address == "" {
		return fmt.Errorf("%w: address required", ErrValidation)
	}
	if !models.ValidPayment(in.Payment) {
		return fmt.Errorf("%w: unknown payment method %q", ErrValidation, in.Payment)
	}
	return nil
}

// PlaceOrder persists the order and awards floor(total) points to the buyer.
// Both writes run in one transaction: either the order exists and the points
// were credited, or neither happened.
func (s *Service) PlaceOrder(ctx context.Context, buyerID uint, in PlaceOrderInput) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.place_order", "user_id", buyerID)

	if err := validate(in); err != nil {
		return nil, err
	}

	order := &models.Order{
		UserID:  buyerID,
		Items:   in.Items,
		Total:   in.Total,
		Address: in.Address,
		Payment: in.Payment,
		Status:  models.StatusProcessing,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		users := &store.UserStore{DB: tx}
		if _, err := users.FindByID(ctx, buyerID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("%w: unknown buyer", ErrValidation)
			}
			return err
		}

		orders := &store.OrderStore{DB: tx}
		if err := orders.Create(ctx, order); err != nil {
			return err
		}

		if _, err := users.AddPoints(ctx, buyerID, in.Total.IntPart()); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.Info("order placed", "order_id", order.ID, "total", in.Total.String(), "points_awarded", in.Total.IntPart())
	return order, nil
}

// ConfirmDelivery moves processing -> delivered for an order owned by
// ownerID. Confirming an already delivered order is a no-op success.
func (s *Service) ConfirmDelivery(ctx context.Context, orderID, ownerID uint) (*models.Order, error) {
	orders := &store.OrderStore{DB: s.DB}

	order, err := orders.FindForUser(ctx, orderID, ownerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return nil, err
	}

	if models.IsDelivered(order.Status) {
		return order, nil
	}

	if err := orders.UpdateStatus(ctx, order.ID, models.StatusDelivered); err != nil {
		return nil, err
	}
	order.Status = models.StatusDelivered

	logging.FromContext(ctx).Info("order delivered", "order_id", order.ID, "user_id", ownerID)
	return order, nil
}

func (s *Service) ListForUser(ctx context.Context, userID uint) ([]models.Order, error) {
	orders := &store.OrderStore{DB: s.DB}
	return orders.ListForUser(ctx, userID)
}
