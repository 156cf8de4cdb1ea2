package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"simple-crud-api/internal/usecase/item"
	"simple-crud-api/pkg/i18n"
)

// ItemHandler handles HTTP requests for item operations
type ItemHandler struct {
	uc  item.ItemUsecase
	tr  *i18n.Translator
	log *zap.Logger
}

// NewItemHandler creates a new ItemHandler instance
func NewItemHandler(uc item.ItemUsecase, tr *i18n.Translator, log *zap.Logger) *ItemHandler {
	return &ItemHandler{
		uc:  uc,
		tr:  tr,
		log: log,
	}
}

// CreateItemRequest represents the HTTP request body for creating an item.
// name and price only have to be present; price may be a number or a numeric string.
type CreateItemRequest struct {
	Name        *string         `json:"name" binding:"required"`
	Price       json.RawMessage `json:"price" binding:"required"`
	Description string          `json:"description"`
}

// ItemResponse represents the HTTP response for item data
type ItemResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListItemsResponse represents the HTTP response for listing items
type ListItemsResponse struct {
	Items []ItemResponse `json:"items"`
	Count int            `json:"count"`
	Query string         `json:"query"`
}

// DeleteItemResponse represents the HTTP response for a deleted item
type DeleteItemResponse struct {
	Message string       `json:"message"`
	Item    ItemResponse `json:"item"`
}

func toItemResponse(it item.Item) ItemResponse {
	return ItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Price:       it.Price,
		Description: it.Description,
		CreatedAt:   it.CreatedAt,
	}
}

// CreateItem handles POST /items
func (h *ItemHandler) CreateItem(c *gin.Context) {
	var req CreateItemRequest
	if err := bindJSON(c, &req); err != nil {
		h.log.Warn("Invalid create item request", zap.Error(err))
		writeError(c, h.tr, h.log, err)
		return
	}

	resp, err := h.uc.CreateItem(c.Request.Context(), item.CreateItemRequest{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
	})
	if err != nil {
		writeError(c, h.tr, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, toItemResponse(*resp))
}

// DeleteItem handles DELETE /items/:id
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	resp, err := h.uc.DeleteItem(c.Request.Context(), item.DeleteItemRequest{ID: c.Param("id")})
	if err != nil {
		writeError(c, h.tr, h.log, err)
		return
	}

	c.JSON(http.StatusOK, DeleteItemResponse{
		Message: h.tr.T(i18n.ItemDeleted),
		Item:    toItemResponse(resp.Item),
	})
}

// ListItems handles GET /items?q=
func (h *ItemHandler) ListItems(c *gin.Context) {
	resp, err := h.uc.ListItems(c.Request.Context(), item.ListItemsRequest{Query: c.Query("q")})
	if err != nil {
		writeError(c, h.tr, h.log, err)
		return
	}

	items := make([]ItemResponse, len(resp.Items))
	for i, it := range resp.Items {
		items[i] = toItemResponse(it)
	}

	c.JSON(http.StatusOK, ListItemsResponse{
		Items: items,
		Count: resp.Count,
		Query: resp.Query,
	})
}
