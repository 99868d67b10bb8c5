package expense

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookkeeping-backend/category"
	"bookkeeping-backend/storage"
	"bookkeeping-backend/supplier"
)

// Store is the persistence surface the expense handlers need.
type Store interface {
	FindAll(ctx context.Context) ([]Expense, error)
	FindByID(ctx context.Context, id string) (*Expense, error)
	Insert(ctx context.Context, doc *Expense) error
	UpdateByID(ctx context.Context, id string, set bson.M) (*Expense, error)
	DeleteByID(ctx context.Context, id string) error
}

// SupplierStore resolves supplier references at read time.
type SupplierStore interface {
	Find(ctx context.Context, filter bson.M) ([]supplier.Supplier, error)
}

// CategoryStore resolves category references at read time.
type CategoryStore interface {
	Find(ctx context.Context, filter bson.M) ([]category.Category, error)
}

type Handler struct {
	store      Store
	suppliers  SupplierStore
	categories CategoryStore
}

func NewHandler(store Store, suppliers SupplierStore, categories CategoryStore) *Handler {
	return &Handler{store: store, suppliers: suppliers, categories: categories}
}

// populate resolves supplier and category references with one batched
// lookup per collection. Unresolved references keep the raw identifier.
func (h *Handler) populate(ctx context.Context, expenses []Expense) ([]Populated, error) {
	supplierIDs := make([]string, 0, len(expenses))
	categoryIDs := make([]string, 0, len(expenses))
	seenSupplier := make(map[string]bool)
	seenCategory := make(map[string]bool)
	for _, exp := range expenses {
		if exp.Supplier != "" && !seenSupplier[exp.Supplier] {
			seenSupplier[exp.Supplier] = true
			supplierIDs = append(supplierIDs, exp.Supplier)
		}
		if exp.Category != "" && !seenCategory[exp.Category] {
			seenCategory[exp.Category] = true
			categoryIDs = append(categoryIDs, exp.Category)
		}
	}

	suppliers := make(map[string]supplier.Supplier)
	if len(supplierIDs) > 0 {
		docs, err := h.suppliers.Find(ctx, bson.M{"_id": bson.M{"$in": supplierIDs}})
		if err != nil {
			return nil, err
		}
		for _, doc := range docs {
			suppliers[doc.ID] = doc
		}
	}

	categories := make(map[string]category.Category)
	if len(categoryIDs) > 0 {
		docs, err := h.categories.Find(ctx, bson.M{"_id": bson.M{"$in": categoryIDs}})
		if err != nil {
			return nil, err
		}
		for _, doc := range docs {
			categories[doc.ID] = doc
		}
	}

	populated := make([]Populated, 0, len(expenses))
	for _, exp := range expenses {
		p := Populated{Expense: exp, Supplier: exp.Supplier, Category: exp.Category}
		if doc, ok := suppliers[exp.Supplier]; ok {
			p.Supplier = doc
		}
		if doc, ok := categories[exp.Category]; ok {
			p.Category = doc
		}
		populated = append(populated, p)
	}
	return populated, nil
}

// List all expenses with resolved references
func (h *Handler) HandleListExpenses(c *gin.Context) {
	expenses, err := h.store.FindAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	populated, err := h.populate(c.Request.Context(), expenses)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, populated)
}

// Get single expense with resolved references
func (h *Handler) HandleGetExpense(c *gin.Context) {
	doc, err := h.store.FindByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	populated, err := h.populate(c.Request.Context(), []Expense{*doc})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, populated[0])
}

// Create expense
func (h *Handler) HandleCreateExpense(c *gin.Context) {
	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc := Expense{
		ID:              primitive.NewObjectID().Hex(),
		ReferenceNumber: req.ReferenceNumber,
		Date:            req.Date,
		Supplier:        req.Supplier,
		Category:        req.Category,
		Amount:          req.Amount,
		Vat:             *req.Vat,
		PaymentMethod:   req.PaymentMethod,
		ReferenceDoc:    req.ReferenceDoc,
		Details:         req.Details,
		FileURL:         req.FileURL,
		PaymentDetails:  req.PaymentDetails,
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

// Update expense
func (h *Handler) HandleUpdateExpense(c *gin.Context) {
	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	set := bson.M{}
	if req.ReferenceNumber != nil {
		set["referenceNumber"] = *req.ReferenceNumber
	}
	if req.Date != nil {
		set["date"] = *req.Date
	}
	if req.Supplier != nil {
		set["supplier"] = *req.Supplier
	}
	if req.Category != nil {
		set["category"] = *req.Category
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
	if req.ReferenceDoc != nil {
		set["referenceDoc"] = *req.ReferenceDoc
	}
	if req.Details != nil {
		set["details"] = *req.Details
	}
	if req.FileURL != nil {
		set["fileUrl"] = *req.FileURL
	}
	if req.PaymentDetails != nil {
		set["paymentDetails"] = *req.PaymentDetails
	}

	id := c.Param("id")
	if len(set) == 0 {
		doc, err := h.store.FindByID(c.Request.Context(), id)
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
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
		c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
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

// Delete expense
func (h *Handler) HandleDeleteExpense(c *gin.Context) {
	err := h.store.DeleteByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted"})
}
