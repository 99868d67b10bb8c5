package receipt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookkeeping-backend/storage"
)

// Store is the persistence surface the receipt handlers need.
type Store interface {
	FindAll(ctx context.Context) ([]Receipt, error)
	FindByID(ctx context.Context, id string) (*Receipt, error)
	Insert(ctx context.Context, doc *Receipt) error
	UpdateByID(ctx context.Context, id string, set bson.M) (*Receipt, error)
	DeleteByID(ctx context.Context, id string) error
}

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// List all receipts
func (h *Handler) HandleListReceipts(c *gin.Context) {
	receipts, err := h.store.FindAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, receipts)
}

// Get single receipt
func (h *Handler) HandleGetReceipt(c *gin.Context) {
	doc, err := h.store.FindByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Receipt not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, doc)
}

// Create receipt
func (h *Handler) HandleCreateReceipt(c *gin.Context) {
	var req CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc := Receipt{
		ID:          primitive.NewObjectID().Hex(),
		Date:        req.Date,
		Amount:      req.Amount,
		ClientName:  req.ClientName,
		Description: req.Description,
	}

	if err := h.store.Insert(c.Request.Context(), &doc); err != nil {
		if storage.IsDuplicate(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, doc)
}

// Update receipt
func (h *Handler) HandleUpdateReceipt(c *gin.Context) {
	var req UpdateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	set := bson.M{}
	if req.Date != nil {
		set["date"] = *req.Date
	}
	if req.Amount != nil {
		set["amount"] = *req.Amount
	}
	if req.ClientName != nil {
		set["clientName"] = *req.ClientName
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}

	id := c.Param("id")
	if len(set) == 0 {
		doc, err := h.store.FindByID(c.Request.Context(), id)
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Receipt not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, doc)
		return
	}

	doc, err := h.store.UpdateByID(c.Request.Context(), id, set)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Receipt not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, doc)
}

// Delete receipt
func (h *Handler) HandleDeleteReceipt(c *gin.Context) {
	err := h.store.DeleteByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Receipt not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Receipt deleted"})
}

// Download receipt as PDF. The document is rendered fully in memory so a
// not-found or render failure never produces a partial stream.
func (h *Handler) HandleDownloadReceiptPDF(c *gin.Context) {
	doc, err := h.store.FindByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Receipt not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := RenderPDF(&buf, doc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=receipt_%s.pdf", doc.ID))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
