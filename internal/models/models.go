package models

import (
	"time"

	"gorm.io/gorm"
)

// Role values as stored on accounts. Stored uppercase and returned verbatim
// by the API; clients are expected to normalize.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// Config represents the global configuration for the single-tenant deployment
// This is a singleton model (only one row should exist)
type Config struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Auto-generated on first setup (64 hex chars)
	JWTSecret string `json:"-" gorm:"type:varchar(64);not null"`
}

// User is a storefront account
type User struct {
	ID           int       `json:"id" gorm:"primaryKey"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	FullName     string    `json:"fullName" gorm:"not null"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	Role         string    `json:"role" gorm:"not null;default:USER"`
	IsActive     bool      `json:"isActive" gorm:"not null;default:true"`
}

// Category is a product grouping
type Category struct {
	CategoryID   int       `json:"categoryId" gorm:"primaryKey"`
	CreatedAt    time.Time `json:"-" gorm:"autoCreateTime"`
	CategoryName string    `json:"categoryName" gorm:"uniqueIndex;not null"`
	ImageURL     string    `json:"imageUrl,omitempty"`
}

// Product is a storefront listing
type Product struct {
	ID            int       `json:"id" gorm:"primaryKey"`
	CreatedAt     time.Time `json:"-" gorm:"autoCreateTime"`
	Name          string    `json:"name" gorm:"not null"`
	Description   string    `json:"description"`
	Price         float64   `json:"price" gorm:"not null"`
	StockQuantity int       `json:"stockQuantity" gorm:"not null;default:0"`
	ImageURL      string    `json:"imageUrl"`
	CategoryID    int       `json:"-" gorm:"not null"`

	// Relationships
	Category Category `json:"category" gorm:"foreignKey:CategoryID"`
}

// CartItem is one product line in a user's cart
type CartItem struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"-" gorm:"autoCreateTime"`
	UserID    int       `json:"-" gorm:"index;not null"`
	ProductID int       `json:"-" gorm:"not null"`
	Quantity  int       `json:"quantity" gorm:"not null;default:1"`

	// Relationships
	Product Product `json:"product" gorm:"foreignKey:ProductID"`
}

// AutoMigrate runs the schema migrations for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Config{},
		&User{},
		&Category{},
		&Product{},
		&CartItem{},
	)
}
