package sqlite

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"simple-crud-api/internal/domain/identity"
	"simple-crud-api/internal/domain/item"
	pkgerrors "simple-crud-api/pkg/errors"
	"simple-crud-api/pkg/security"
)

// ItemRepo implements the item Repository with gorm.
type ItemRepo struct {
	db  *gorm.DB
	ids identity.Generator
	log *zap.Logger
}

// NewItemRepo creates a new instance of ItemRepo.
func NewItemRepo(db *gorm.DB, ids identity.Generator, log *zap.Logger) *ItemRepo {
	return &ItemRepo{db: db, ids: ids, log: log}
}

// Create assigns an ID inside a transaction and inserts the item.
func (r *ItemRepo) Create(ctx context.Context, it *item.Item) (*item.Item, error) {
	if it == nil {
		return nil, errors.New("item cannot be nil")
	}

	model := itemSchemaFrom(it)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&ItemSchema{}).Count(&count).Error; err != nil {
			return err
		}

		model.ID = r.ids.Next(int(count))
		if err := tx.Delete(&ItemSchema{}, "id = ?", model.ID).Error; err != nil {
			return err
		}
		return tx.Create(&model).Error
	})
	if err != nil {
		r.log.Error("failed to create item in db", zap.Error(err))
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	r.log.Debug("item created in db", zap.String("id", model.ID))
	return model.toDomain(), nil
}

// Delete removes the item and returns the removed row.
func (r *ItemRepo) Delete(ctx context.Context, id string) (*item.Item, error) {
	var model ItemSchema
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&model, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.NewNotFoundError("item", id)
			}
			return err
		}
		return tx.Delete(&ItemSchema{}, "id = ?", id).Error
	})
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, err
		}
		r.log.Error("failed to delete item in db", zap.Error(err), zap.String("id", id))
		return nil, fmt.Errorf("failed to delete item: %w", err)
	}

	r.log.Debug("item deleted in db", zap.String("id", id))
	return model.toDomain(), nil
}

// List returns items in insertion order, filtered by a case-insensitive name match.
func (r *ItemRepo) List(ctx context.Context, query string) ([]item.Item, error) {
	q := r.db.WithContext(ctx).Order("rowid")
	if query != "" {
		q = q.Where("name_lower LIKE ? ESCAPE ?", security.ContainsPattern(strings.ToLower(query)), security.LikeEscapeChar)
	}

	var models []ItemSchema
	if err := q.Find(&models).Error; err != nil {
		r.log.Error("failed to list items from db", zap.Error(err), zap.String("query", query))
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	items := make([]item.Item, len(models))
	for i := range models {
		items[i] = *models[i].toDomain()
	}
	return items, nil
}
