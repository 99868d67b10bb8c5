package income

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookkeeping-backend/client"
	"bookkeeping-backend/storage"
)

// Store is the persistence surface the income handlers need.
type Store interface {
	FindAll(ctx context.Context) ([]Income, error)
	FindByID(ctx context.Context, id string) (*Income, error)
	Insert(ctx context.Context, doc *Income) error
	UpdateByID(ctx context.Context, id string, set bson.M) (*Income, error)
	DeleteByID(ctx context.Context, id string) error
}

// ClientStore resolves client references at read time.
type ClientStore interface {
	Find(ctx context.Context, filter bson.M) ([]client.Client, error)
}

type Handler struct {
	store   Store
	clients ClientStore
}

func NewHandler(store Store, clients ClientStore) *Handler {
	return &Handler{store: store, clients: clients}
}

// populate resolves the client reference of each income with one batched
// lookup. Unresolved references keep the raw identifier in place.
func (h *Handler) populate(ctx context.Context, incomes []Income) ([]Populated, error) {
	ids := make([]string, 0, len(incomes))
	seen := make(map[string]bool)
	for _, inc := range incomes {
		if inc.Client != "" && !seen[inc.Client] {
			seen[inc.Client] = true
			ids = append(ids, inc.Client)
		}
	}

	resolved := make(map[string]client.Client)
	if len(ids) > 0 {
		clients, err := h.clients.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
		if err != nil {
			return nil, err
		}
		for _, cl := range clients {
			resolved[cl.ID] = cl
		}
	}

	populated := make([]Populated, 0, len(incomes))
	for _, inc := range incomes {
		p := Populated{Income: inc, Client: inc.Client}
		if cl, ok := resolved[inc.Client]; ok {
			p.Client = cl
		}
		populated = append(populated, p)
	}
	return populated, nil
}

// List all incomes with resolved client references
func (h *Handler) HandleListIncomes(c *gin.Context) {
	incomes, err := h.store.FindAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	populated, err := h.populate(c.Request.Context(), incomes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, populated)
}

// Get single income with resolved client reference
func (h *Handler) HandleGetIncome(c *gin.Context) {
	doc, err := h.store.FindByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Income not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	populated, err := h.populate(c.Request.Context(), []Income{*doc})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, populated[0])
}

// Create income
func (h *Handler) HandleCreateIncome(c *gin.Context) {
	var req CreateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc := Income{
		ID:             primitive.NewObjectID().Hex(),
		ReceiptNumber:  req.ReceiptNumber,
		Date:           req.Date,
		Client:         req.Client,
		Amount:         req.Amount,
		Vat:            *req.Vat,
		PaymentMethod:  req.PaymentMethod,
		Details:        req.Details,
		PrintDate:      req.PrintDate,
		PaymentDetails: req.PaymentDetails,
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

// Update income
func (h *Handler) HandleUpdateIncome(c *gin.Context) {
	var req UpdateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	set := bson.M{}
	if req.ReceiptNumber != nil {
		set["receiptNumber"] = *req.ReceiptNumber
	}
	if req.Date != nil {
		set["date"] = *req.Date
	}
	if req.Client != nil {
		set["client"] = *req.Client
	}
	if req.Amount != nil {
		set["amount"] = *req.Amount
	}
	if req.Vat != nil {
		set["vat"] = *req.Vat
	}
	if req.PaymentMethod != nil {
		set["paymentMethod"] = *req.PaymentMethod
	}
	if req.Details != nil {
		set["details"] = *req.Details
	}
	if req.PrintDate != nil {
		set["printDate"] = *req.PrintDate
	}
	if req.PaymentDetails != nil {
		set["paymentDetails"] = *req.PaymentDetails
	}

	id := c.Param("id")
	if len(set) == 0 {
		doc, err := h.store.FindByID(c.Request.Context(), id)
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Income not found"})
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
		c.JSON(http.StatusNotFound, gin.H{"error": "Income not found"})
		return
	}
	if err != nil {
		if storage.IsDuplicate(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, doc)
}

// Delete income
func (h *Handler) HandleDeleteIncome(c *gin.Context) {
	err := h.store.DeleteByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Income not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Income deleted"})
}
