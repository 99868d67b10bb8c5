// Package upload ingests an uploaded PDF into a new income record.
package upload

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookkeeping-backend/client"
	"bookkeeping-backend/docparse"
	"bookkeeping-backend/income"
	"bookkeeping-backend/storage"
)

// ClientStore looks up the counterparty extracted from the document.
type ClientStore interface {
	FindOne(ctx context.Context, filter bson.M) (*client.Client, error)
}

// IncomeStore persists the ingested income record.
type IncomeStore interface {
	Insert(ctx context.Context, doc *income.Income) error
}

type Handler struct {
	clients  ClientStore
	incomes  IncomeStore
	validate *validator.Validate

	// extractText is swapped out in tests to avoid crafting PDF fixtures.
	extractText func(data []byte) (string, error)
}

func NewHandler(clients ClientStore, incomes IncomeStore) *Handler {
	return &Handler{
		clients:     clients,
		incomes:     incomes,
		validate:    validator.New(),
		extractText: docparse.ExtractText,
	}
}

// Ingest an uploaded document: extract text, derive amount and client name,
// resolve the client, and persist a new income. The extracted name must
// match an existing client; an unknown name rejects the upload.
func (h *Handler) HandleUpload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	text, err := h.extractText(data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	lines := docparse.SplitLines(text)
	extracted := docparse.Extract(lines)

	clientDoc, err := h.clients.FindOne(c.Request.Context(), bson.M{"name": extracted.ClientName})
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Client not found in database"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	vat, _ := strconv.ParseFloat(c.PostForm("vat"), 64)
	receiptNumber, _ := strconv.Atoi(c.PostForm("receiptNumber"))

	doc := income.Income{
		ID:            primitive.NewObjectID().Hex(),
		ReceiptNumber: receiptNumber,
		Date:          time.Now().UTC(),
		Client:        clientDoc.ID,
		Amount:        extracted.Amount,
		Vat:           vat,
		PaymentMethod: c.PostForm("paymentMethod"),
	}

	if err := h.validate.Struct(doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.incomes.Insert(c.Request.Context(), &doc); err != nil {
		if storage.IsDuplicate(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "הקובץ נקלט והנתונים נשמרו",
		"totals":  docparse.TotalLines(lines),
		"allText": text,
		"income":  doc,
	})
}
