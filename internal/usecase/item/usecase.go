package item

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domain "simple-crud-api/internal/domain/item"
	pkgerrors "simple-crud-api/pkg/errors"
	"simple-crud-api/pkg/logger"
)

// Repository defines the interface for item data access operations.
type Repository interface {
	Create(ctx context.Context, it *domain.Item) (*domain.Item, error) // Insert an item, assigning its ID
	Delete(ctx context.Context, id string) (*domain.Item, error)       // Remove and return an item
	List(ctx context.Context, query string) ([]domain.Item, error)     // Items whose name contains query, case-insensitively
}

// Usecase implements the business logic for items.
type Usecase struct {
	repo     Repository
	log      *zap.Logger
	validate *validator.Validate
	now      func() time.Time
}

var _ ItemUsecase = (*Usecase)(nil)

// New creates a new item Usecase.
func New(r Repository, log *zap.Logger) *Usecase {
	return &Usecase{
		repo:     r,
		log:      log,
		validate: validator.New(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateItem checks that name and price are present, in that order, coerces the
// price and stores the item. A price that cannot be converted is an internal error.
func (uc *Usecase) CreateItem(ctx context.Context, in CreateItemRequest) (*Item, error) {
	log := logger.WithContext(ctx, uc.log)

	if err := uc.validate.Struct(in); err != nil {
		log.Warn("create item validation failed", zap.Error(err))
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			return nil, pkgerrors.NewValidationError(strings.ToLower(verrs[0].Field()), "is required")
		}
		return nil, err
	}

	price, err := parsePrice(in.Price)
	if err != nil {
		log.Error("failed to convert item price", zap.ByteString("price", in.Price), zap.Error(err))
		return nil, pkgerrors.NewInternalError("failed to convert price", err)
	}

	it, err := uc.repo.Create(ctx, &domain.Item{
		Name:        *in.Name,
		Price:       price,
		Description: in.Description,
		CreatedAt:   uc.now(),
	})
	if err != nil {
		log.Error("failed to create item", zap.Error(err))
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	log.Info("item created", zap.String("id", it.ID), zap.String("name", it.Name))
	return toDTO(it), nil
}

// DeleteItem removes an item and returns the removed record.
func (uc *Usecase) DeleteItem(ctx context.Context, in DeleteItemRequest) (*DeleteItemResponse, error) {
	log := logger.WithContext(ctx, uc.log)

	it, err := uc.repo.Delete(ctx, in.ID)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			log.Warn("item not found for delete", zap.String("id", in.ID))
			return nil, err
		}
		log.Error("failed to delete item", zap.String("id", in.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to delete item: %w", err)
	}

	log.Info("item deleted", zap.String("id", it.ID))
	return &DeleteItemResponse{Item: *toDTO(it)}, nil
}

// ListItems returns all items, or only those whose name contains the query.
func (uc *Usecase) ListItems(ctx context.Context, in ListItemsRequest) (*ListItemsResponse, error) {
	log := logger.WithContext(ctx, uc.log)

	domainItems, err := uc.repo.List(ctx, in.Query)
	if err != nil {
		log.Error("failed to list items", zap.String("query", in.Query), zap.Error(err))
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	items := make([]Item, len(domainItems))
	for i := range domainItems {
		items[i] = *toDTO(&domainItems[i])
	}

	log.Debug("items listed", zap.String("query", in.Query), zap.Int("count", len(items)))
	return &ListItemsResponse{Items: items, Count: len(items), Query: in.Query}, nil
}

func toDTO(it *domain.Item) *Item {
	return &Item{
		ID:          it.ID,
		Name:        it.Name,
		Price:       it.Price,
		Description: it.Description,
		CreatedAt:   it.CreatedAt,
	}
}
