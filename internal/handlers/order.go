package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/amazoniatrade/marketplace/internal/middleware/auth"
	"github.com/amazoniatrade/marketplace/internal/models"
	"github.com/amazoniatrade/marketplace/internal/mykafka"
	"github.com/amazoniatrade/marketplace/internal/order"
)

type OrderHandler struct {
	Svc      *order.Service
	Producer *mykafka.Producer
}

type placeOrderRequest struct {
	Produtos  []models.LineItem `json:"produtos"`
	Total     decimal.Decimal   `json:"total"`
	Endereco  string            `json:"endereco"`
	Pagamento string            `json:"pagamento"`
}

func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "not authenticated")
	}

	var req placeOrderRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	ord, err := h.Svc.PlaceOrder(c.Request().Context(), userID, order.PlaceOrderInput{
		Items:   req.Produtos,
		Total:   req.Total,
		Address: req.Endereco,
		Payment: req.Pagamento,
	})
	if err != nil {
		if errors.Is(err, order.ErrValidation) {
			return fail(c, http.StatusBadRequest, err.Error())
		}
		return fail(c, http.StatusInternalServerError, "could not place order")
	}

	publish(c, h.Producer, "order_events", fmt.Sprint(userID), map[string]interface{}{
		"type":     "order_created",
		"order_id": ord.ID,
		"user_id":  userID,
		"total":    ord.Total,
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"ok":      true,
		"message": "order placed",
		"compra":  ord,
	})
}

func (h *OrderHandler) ListMine(c echo.Context) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "not authenticated")
	}

	orders, err := h.Svc.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not list orders")
	}

	return c.JSON(http.StatusOK, echo.Map{"ok": true, "compras": orders})
}

func (h *OrderHandler) ConfirmDelivery(c echo.Context) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "not authenticated")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return fail(c, http.StatusBadRequest, "invalid order id")
	}

	ord, err := h.Svc.ConfirmDelivery(c.Request().Context(), uint(id), userID)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			return fail(c, http.StatusNotFound, "order not found or not owned by this user")
		}
		return fail(c, http.StatusInternalServerError, "could not confirm delivery")
	}

	publish(c, h.Producer, "order_events", fmt.Sprint(userID), map[string]interface{}{
		"type":     "order_delivered",
		"order_id": ord.ID,
		"user_id":  userID,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"ok":      true,
		"message": "order delivered",
		"compra":  ord,
	})
}
