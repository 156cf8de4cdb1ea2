package item

import "time"

// Item represents a catalog item.
type Item struct {
	ID          string
	Name        string
	Price       float64
	Description string
	CreatedAt   time.Time
}
