package item

import (
	"encoding/json"
	"time"
)

// CreateItemRequest represents the request payload for creating an item.
// Only key presence is required: Name may be "" and Price may be 0.
type CreateItemRequest struct {
	Name        *string         `validate:"required"`
	Price       json.RawMessage `validate:"required"` // raw JSON value, coerced to float64
	Description string
}

// ListItemsRequest filters items by a case-insensitive name substring.
type ListItemsRequest struct {
	Query string
}

// ListItemsResponse represents the response payload for item listing.
type ListItemsResponse struct {
	Items []Item
	Count int
	Query string
}

// DeleteItemRequest represents the request payload for deleting an item.
type DeleteItemRequest struct {
	ID string
}

// DeleteItemResponse carries the item that was removed.
type DeleteItemResponse struct {
	Item Item
}

// Item represents an item DTO for API responses.
type Item struct {
	ID          string
	Name        string
	Price       float64
	Description string
	CreatedAt   time.Time
}
