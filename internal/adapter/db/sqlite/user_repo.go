package sqlite

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"simple-crud-api/internal/domain/identity"
	"simple-crud-api/internal/domain/user"
	pkgerrors "simple-crud-api/pkg/errors"
)

// UserRepo implements the user Repository with gorm.
type UserRepo struct {
	db  *gorm.DB
	ids identity.Generator
	log *zap.Logger
}

// NewUserRepo creates a new instance of UserRepo.
func NewUserRepo(db *gorm.DB, ids identity.Generator, log *zap.Logger) *UserRepo {
	return &UserRepo{db: db, ids: ids, log: log}
}

// Create assigns an ID inside a transaction and inserts the user. A colliding
// ID (legacy strategy) replaces the existing row.
func (r *UserRepo) Create(ctx context.Context, u *user.User) (*user.User, error) {
	if u == nil {
		return nil, errors.New("user cannot be nil")
	}

	model := userSchemaFrom(u)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&UserSchema{}).Count(&count).Error; err != nil {
			return err
		}

		model.ID = r.ids.Next(int(count))
		res := tx.Delete(&UserSchema{}, "id = ?", model.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			r.log.Warn("user id collision, replacing row", zap.String("id", model.ID))
		}

		return tx.Create(&model).Error
	})
	if err != nil {
		r.log.Error("failed to create user in db", zap.Error(err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	r.log.Debug("user created in db", zap.String("id", model.ID))
	return model.toDomain(), nil
}

// GetByID retrieves a user by ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*user.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NewNotFoundError("user", id)
		}
		r.log.Error("failed to get user from db", zap.Error(err), zap.String("id", id))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return model.toDomain(), nil
}

// Update loads, mutates and saves the user in one transaction.
func (r *UserRepo) Update(ctx context.Context, id string, apply func(u *user.User)) (*user.User, error) {
	var updated *user.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model UserSchema
		if err := tx.First(&model, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.NewNotFoundError("user", id)
			}
			return err
		}

		u := model.toDomain()
		apply(u)
		u.ID = id

		model = userSchemaFrom(u)
		if err := tx.Save(&model).Error; err != nil {
			return err
		}
		updated = u
		return nil
	})
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, err
		}
		r.log.Error("failed to update user in db", zap.Error(err), zap.String("id", id))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	r.log.Debug("user updated in db", zap.String("id", id))
	return updated, nil
}

// Delete removes the user and returns the removed row.
func (r *UserRepo) Delete(ctx context.Context, id string) (*user.User, error) {
	var model UserSchema
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&model, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.NewNotFoundError("user", id)
			}
			return err
		}
		return tx.Delete(&UserSchema{}, "id = ?", id).Error
	})
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, err
		}
		r.log.Error("failed to delete user in db", zap.Error(err), zap.String("id", id))
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}

	r.log.Debug("user deleted in db", zap.String("id", id))
	return model.toDomain(), nil
}

// List returns all users ordered by insertion (SQLite rowid).
func (r *UserRepo) List(ctx context.Context) ([]user.User, error) {
	var models []UserSchema
	if err := r.db.WithContext(ctx).Order("rowid").Find(&models).Error; err != nil {
		r.log.Error("failed to list users from db", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]user.User, len(models))
	for i := range models {
		users[i] = *models[i].toDomain()
	}
	return users, nil
}
