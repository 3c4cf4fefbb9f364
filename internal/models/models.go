package models

import (
	"time"
)

type Category struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"unique;not null"          json:"name"`
	Slug string `gorm:"unique;not null"          json:"slug"`
}

type Product struct {
	ID          uint     `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name        string   `gorm:"not null"                  json:"name"`
	Description string   `gorm:"not null"                  json:"description"`
	Price       float64  `gorm:"not null"                  json:"price"`
	Stock       uint     `gorm:"not null;default:0"        json:"stock"`
	Active      bool     `gorm:"not null;default:true"     json:"active"`
	Sizes       []string `gorm:"serializer:json"           json:"sizes"`
	Colors      []string `gorm:"serializer:json"           json:"colors"`
	ImageURL    string   `json:"image_url"`
	CategoryID  uint     `gorm:"index"                     json:"category_id"`
}

// HasSize reports whether s is one of the product's declared sizes.
// The empty string is always accepted: variants are optional.
func (p *Product) HasSize(s string) bool {
	if s == "" {
		return true
	}
	for _, v := range p.Sizes {
		if v == s {
			return true
		}
	}
	return false
}

func (p *Product) HasColor(c string) bool {
	if c == "" {
		return true
	}
	for _, v := range p.Colors {
		if v == c {
			return true
		}
	}
	return false
}

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"unique;not null"          json:"username"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null"                 json:"role"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"      json:"id"`
	Token     string `gorm:"unique;not null" json:"token"`
	UserID    uint   `gorm:"index;not null"  json:"user_id"`
	Role      string `gorm:"not null"        json:"role"`
	ExpiresAt int64  `gorm:"not null"        json:"expires_at"`
	Revoked   bool   `gorm:"default:false"   json:"revoked"`
}

// CartItem is one line of a user's cart. The uniqueness key is
// (user, product, size, color): adding the same variant again must grow
// the existing row, never create a second one. UnitPrice and Stock are
// display snapshots, the catalog stays authoritative for charging.
type CartItem struct {
	ID        uint    `gorm:"primaryKey"                                    json:"id"`
	UserID    uint    `gorm:"uniqueIndex:idx_cart_line;not null"            json:"user_id"`
	ProductID uint    `gorm:"uniqueIndex:idx_cart_line;not null"            json:"product_id"`
	Size      string  `gorm:"uniqueIndex:idx_cart_line;not null;default:''" json:"size"`
	Color     string  `gorm:"uniqueIndex:idx_cart_line;not null;default:''" json:"color"`
	Quantity  uint    `gorm:"default:1;check:quantity>0"                    json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Stock     uint    `json:"stock"`
}

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type Order struct {
	ID            uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	Number        string      `gorm:"unique;not null"          json:"number"`
	UserID        uint        `gorm:"index;not null"           json:"user_id"`
	Status        OrderStatus `gorm:"not null"                 json:"status"`
	Subtotal      float64     `gorm:"not null"                 json:"subtotal"`
	Shipping      float64     `gorm:"not null"                 json:"shipping"`
	Total         float64     `gorm:"not null"                 json:"total"`
	Name          string      `gorm:"not null"                 json:"name"`
	Email         string      `gorm:"not null"                 json:"email"`
	Phone         string      `json:"phone"`
	Address       string      `gorm:"not null"                 json:"address"`
	City          string      `gorm:"not null"                 json:"city"`
	PostalCode    string      `json:"postal_code"`
	PaymentMethod string      `json:"payment_method"`
	Items         []OrderItem `gorm:"foreignKey:OrderID"       json:"items"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// OrderItem is an immutable snapshot taken at checkout. Prices here are
// what the customer was charged, regardless of later product edits.
type OrderItem struct {
	ID          uint    `gorm:"primaryKey"     json:"id"`
	OrderID     uint    `gorm:"index;not null" json:"order_id"`
	ProductID   uint    `gorm:"not null"       json:"product_id"`
	ProductName string  `gorm:"not null"       json:"product_name"`
	UnitPrice   float64 `gorm:"not null"       json:"unit_price"`
	Quantity    uint    `gorm:"not null"       json:"quantity"`
	Size        string  `json:"size"`
	Color       string  `json:"color"`
	LineTotal   float64 `gorm:"not null"       json:"line_total"`
}
