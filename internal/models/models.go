package models

import (
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// BaseModel provides common fields and an auto-generated ULID for
// marketplace entities. Users keep integer IDs because the auth API
// exposes them as integers.
type BaseModel struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(26)"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// BeforeCreate generates a ULID for the ID field if it's empty
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = ulid.Make().String()
	}
	return nil
}

// User represents an account that can connect marketplace stores
type User struct {
	ID           int       `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// Store types supported by the tracker
const (
	StoreTypeWildberries = "wb"
	StoreTypeOzon        = "ozon"
)

// Store represents a connected marketplace store.
// APIToken is the marketplace credential, AES-encrypted at rest.
type Store struct {
	BaseModel
	UserID   int    `json:"user_id" gorm:"index;not null"`
	Type     string `json:"type" gorm:"not null"` // "wb" or "ozon"
	APIToken string `json:"-" gorm:"not null"`
}

// Product represents a listing pulled from a marketplace store
type Product struct {
	BaseModel
	StoreID    string `json:"store_id" gorm:"index;not null"`
	ExternalID string `json:"external_id"` // listing ID on WB/Ozon
	Name       string `json:"name"`
	Price      int    `json:"price"` // minor currency units
	Quantity   int    `json:"quantity"`
}

// Mapping links two equivalent products across marketplaces
type Mapping struct {
	BaseModel
	UserID     int    `json:"user_id" gorm:"index;not null"`
	Product1ID string `json:"product1_id" gorm:"not null"`
	Product2ID string `json:"product2_id" gorm:"not null"`
}

// AutoMigrate runs database migrations for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Store{},
		&Product{},
		&Mapping{},
	)
}
