package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleSeller   Role = "seller"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

type OrderStatus string

const (
	StatusProcessing OrderStatus = "processing"
	StatusDelivered  OrderStatus = "delivered"
)

// IsDelivered reports whether a stored status label is terminal. Rows written
// by the legacy app may carry "Entregue" or "Finalizado"; anything else is
// bucketed with processing.
func IsDelivered(s OrderStatus) bool {
	switch strings.ToLower(string(s)) {
	case string(StatusDelivered), "entregue", "finalizado":
		return true
	}
	return false
}

const (
	PaymentPix        = "Pix"
	PaymentCreditCard = "Credit Card"
	PaymentBoleto     = "Boleto"
)

func ValidPayment(p string) bool {
	switch p {
	case PaymentPix, PaymentCreditCard, PaymentBoleto:
		return true
	}
	return false
}

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"not null"                 json:"name"`
	Email        string `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         Role   `gorm:"not null"                 json:"role"`
	Points       int64  `gorm:"not null;default:0"       json:"points"`
}

type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"not null"                 json:"name"`
	Description string          `gorm:"not null"                 json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric;not null"    json:"price"`
	Image       string          `gorm:"not null"                 json:"image"`
	UserID      uint            `gorm:"index;not null"           json:"user_id"`
}

// LineItem is a point-in-time snapshot of a product inside an order. It is
// not a table: the order store serializes the slice into Order.ItemsJSON.
type LineItem struct {
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  uint            `json:"quantity"`
	Image     string          `json:"image"`
}

type Order struct {
	ID        uint            `gorm:"primaryKey;autoIncrement"        json:"id"`
	UserID    uint            `gorm:"index;not null"                  json:"user_id"`
	ItemsJSON string          `gorm:"column:items;type:text;not null" json:"-"`
	Items     []LineItem      `gorm:"-"                               json:"produtos"`
	Total     decimal.Decimal `gorm:"type:numeric;not null"           json:"total"`
	Address   string          `gorm:"not null"                        json:"endereco"`
	Payment   string          `gorm:"not null"                        json:"pagamento"`
	Status    OrderStatus     `gorm:"not null"                        json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}
