package item

import "context"

// ItemUsecase defines the interface for item business logic operations.
type ItemUsecase interface {
	CreateItem(ctx context.Context, in CreateItemRequest) (*Item, error)
	DeleteItem(ctx context.Context, in DeleteItemRequest) (*DeleteItemResponse, error)
	ListItems(ctx context.Context, in ListItemsRequest) (*ListItemsResponse, error)
}
