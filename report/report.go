// Package report builds and runs the read-only aggregation queries:
// the two-sided income/expense total and the grouped breakdowns.
package report

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Aggregator runs an aggregation pipeline over one collection.
type Aggregator interface {
	Aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]bson.M, error)
}

type Handler struct {
	incomes  Aggregator
	expenses Aggregator
}

func NewHandler(incomes, expenses Aggregator) *Handler {
	return &Handler{incomes: incomes, expenses: expenses}
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// dateWindow resolves the caller-supplied bounds. A missing lower bound
// falls back to the epoch, a missing upper bound to now.
func dateWindow(fromStr, toStr string) (time.Time, time.Time, error) {
	from := time.Unix(0, 0).UTC()
	to := time.Now().UTC()

	var err error
	if fromStr != "" {
		if from, err = parseDate(fromStr); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if toStr != "" {
		if to, err = parseDate(toStr); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return from, to, nil
}

func totalPipeline(from, to time.Time) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"date": bson.M{"$gte": from, "$lte": to}}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$amount"}}}},
	}
}

// breakdownPipeline groups matching documents by (reference, payment type).
// Filters not supplied are omitted from the match stage entirely, so an
// unfiltered, unbounded request matches every document.
func breakdownPipeline(refField, refValue, paymentType, fromStr, toStr string) (mongo.Pipeline, error) {
	match := bson.M{}
	if fromStr != "" || toStr != "" {
		from, to, err := dateWindow(fromStr, toStr)
		if err != nil {
			return nil, err
		}
		match["date"] = bson.M{"$gte": from, "$lte": to}
	}
	if refValue != "" {
		match[refField] = refValue
	}
	if paymentType != "" {
		match["paymentMethod"] = paymentType
	}

	group := bson.M{
		"_id":   bson.M{refField: "$" + refField, "paymentType": "$paymentMethod"},
		"total": bson.M{"$sum": "$amount"},
		"count": bson.M{"$sum": 1},
	}

	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: group}},
	}, nil
}

// totalFrom pulls the scalar out of a single-group total result. An empty
// result set means no documents matched and reports zero.
func totalFrom(results []bson.M) float64 {
	if len(results) == 0 {
		return 0
	}
	switch v := results[0]["total"].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int32:
		return float64(v)
	}
	return 0
}

// Two-sided total: sum of income amounts and sum of expense amounts over
// the same date window.
func (h *Handler) HandleIncomeVsExpense(c *gin.Context) {
	from, to, err := dateWindow(c.Query("from"), c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pipeline := totalPipeline(from, to)

	incomeResults, err := h.incomes.Aggregate(c.Request.Context(), pipeline)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	expenseResults, err := h.expenses.Aggregate(c.Request.Context(), pipeline)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totalIncome":  totalFrom(incomeResults),
		"totalExpense": totalFrom(expenseResults),
	})
}

// Grouped income breakdown by (client, payment type)
func (h *Handler) HandleIncomeAnalysis(c *gin.Context) {
	pipeline, err := breakdownPipeline("client", c.Query("client"), c.Query("paymentType"), c.Query("from"), c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, err := h.incomes.Aggregate(c.Request.Context(), pipeline)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, results)
}

// Grouped expense breakdown by (category, payment type)
func (h *Handler) HandleExpenseAnalysis(c *gin.Context) {
	pipeline, err := breakdownPipeline("category", c.Query("category"), c.Query("paymentType"), c.Query("from"), c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, err := h.expenses.Aggregate(c.Request.Context(), pipeline)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, results)
}
