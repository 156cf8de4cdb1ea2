// Package sqlite implements the repositories with gorm on an in-memory SQLite database.
package sqlite

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"simple-crud-api/internal/domain/item"
	"simple-crud-api/internal/domain/user"
)

// UserSchema represents the database schema for the users table.
// Timestamps are written by the usecase, so gorm's auto time tracking is off.
type UserSchema struct {
	ID        string    `gorm:"primaryKey"`
	Name      string    `gorm:"not null"`
	Email     string    `gorm:"not null;default:''"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false"`
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

func (s *UserSchema) toDomain() *user.User {
	return &user.User{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func userSchemaFrom(u *user.User) UserSchema {
	return UserSchema{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// ItemSchema represents the database schema for the items table.
// NameLower is folded in Go since SQLite's LOWER only handles ASCII.
type ItemSchema struct {
	ID          string    `gorm:"primaryKey"`
	Name        string    `gorm:"not null"`
	NameLower   string    `gorm:"not null;index"`
	Price       float64   `gorm:"not null"`
	Description string    `gorm:"not null;default:''"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime:false"`
}

// TableName specifies the table name for the ItemSchema model.
func (ItemSchema) TableName() string {
	return "items"
}

func (s *ItemSchema) toDomain() *item.Item {
	return &item.Item{
		ID:          s.ID,
		Name:        s.Name,
		Price:       s.Price,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
	}
}

func itemSchemaFrom(it *item.Item) ItemSchema {
	return ItemSchema{
		ID:          it.ID,
		Name:        it.Name,
		NameLower:   strings.ToLower(it.Name),
		Price:       it.Price,
		Description: it.Description,
		CreatedAt:   it.CreatedAt,
	}
}

// Migrate creates the tables used by the repositories.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&UserSchema{}, &ItemSchema{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
