package report

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type mockAggregator struct {
	aggregateFn func(ctx context.Context, pipeline mongo.Pipeline) ([]bson.M, error)
	// last pipeline seen, for shape assertions
	pipeline mongo.Pipeline
}

func (m *mockAggregator) Aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]bson.M, error) {
	m.pipeline = pipeline
	if m.aggregateFn != nil {
		return m.aggregateFn(ctx, pipeline)
	}
	return []bson.M{}, nil
}

func setupReportRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/reports/income-vs-expense", h.HandleIncomeVsExpense)
	r.GET("/reports/income-analysis", h.HandleIncomeAnalysis)
	r.GET("/reports/expense-analysis", h.HandleExpenseAnalysis)
	return r
}

func matchStage(t *testing.T, pipeline mongo.Pipeline) bson.M {
	t.Helper()
	require.NotEmpty(t, pipeline)
	stage := pipeline[0]
	require.Equal(t, "$match", stage[0].Key)
	match, ok := stage[0].Value.(bson.M)
	require.True(t, ok)
	return match
}

func TestIncomeVsExpenseTotals(t *testing.T) {
	incomes := &mockAggregator{aggregateFn: func(ctx context.Context, p mongo.Pipeline) ([]bson.M, error) {
		return []bson.M{{"_id": nil, "total": float64(5000)}}, nil
	}}
	expenses := &mockAggregator{aggregateFn: func(ctx context.Context, p mongo.Pipeline) ([]bson.M, error) {
		return []bson.M{{"_id": nil, "total": float64(3000)}}, nil
	}}
	router := setupReportRouter(NewHandler(incomes, expenses))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reports/income-vs-expense?from=2024-01-01&to=2024-12-31", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]float64
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(5000), body["totalIncome"])
	assert.Equal(t, float64(3000), body["totalExpense"])

	match := matchStage(t, incomes.pipeline)
	window, ok := match["date"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), window["$gte"])
	assert.Equal(t, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), window["$lte"])
}

func TestIncomeVsExpenseEmptyResultsReportZero(t *testing.T) {
	router := setupReportRouter(NewHandler(&mockAggregator{}, &mockAggregator{}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reports/income-vs-expense", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"totalIncome": 0, "totalExpense": 0}`, w.Body.String())
}

func TestIncomeVsExpenseDefaultWindow(t *testing.T) {
	incomes := &mockAggregator{}
	router := setupReportRouter(NewHandler(incomes, &mockAggregator{}))

	before := time.Now().UTC()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reports/income-vs-expense", nil)
	router.ServeHTTP(w, req)
	after := time.Now().UTC()

	require.Equal(t, http.StatusOK, w.Code)
	match := matchStage(t, incomes.pipeline)
	window := match["date"].(bson.M)
	assert.Equal(t, time.Unix(0, 0).UTC(), window["$gte"])

	to, ok := window["$lte"].(time.Time)
	require.True(t, ok)
	assert.False(t, to.Before(before))
	assert.False(t, to.After(after))
}

func TestIncomeVsExpenseAggregationError(t *testing.T) {
	incomes := &mockAggregator{aggregateFn: func(ctx context.Context, p mongo.Pipeline) ([]bson.M, error) {
		return nil, errors.New("Database error")
	}}
	router := setupReportRouter(NewHandler(incomes, &mockAggregator{}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reports/income-vs-expense", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error": "Database error"}`, w.Body.String())
}

func TestIncomeVsExpenseInvalidDate(t *testing.T) {
	router := setupReportRouter(NewHandler(&mockAggregator{}, &mockAggregator{}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reports/income-vs-expense?from=notadate", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIncomeAnalysisFilters(t *testing.T) {
	groups := []bson.M{
		{"_id": bson.M{"client": "clientId1", "paymentType": "cash"}, "total": float64(2000), "count": int32(3)},
	}
	incomes := &mockAggregator{aggregateFn: func(ctx context.Context, p mongo.Pipeline) ([]bson.M, error) {
		return groups, nil
	}}
	router := setupReportRouter(NewHandler(incomes, &mockAggregator{}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reports/income-analysis?from=2024-01-01&to=2024-12-31&client=clientId1&paymentType=cash", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, float64(2000), body[0]["total"])

	match := matchStage(t, incomes.pipeline)
	assert.Equal(t, "clientId1", match["client"])
	assert.Equal(t, "cash", match["paymentMethod"])
	assert.Contains(t, match, "date")
}

func TestIncomeAnalysisNoFiltersMatchesEverything(t *testing.T) {
	incomes := &mockAggregator{}
	router := setupReportRouter(NewHandler(incomes, &mockAggregator{}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reports/income-analysis", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	match := matchStage(t, incomes.pipeline)
	assert.Empty(t, match)

	group := incomes.pipeline[1][0].Value.(bson.M)
	id := group["_id"].(bson.M)
	assert.Equal(t, "$client", id["client"])
	assert.Equal(t, "$paymentMethod", id["paymentType"])
}

func TestExpenseAnalysisGroupsByCategory(t *testing.T) {
	expenses := &mockAggregator{}
	router := setupReportRouter(NewHandler(&mockAggregator{}, expenses))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reports/expense-analysis?category=categoryId1", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	match := matchStage(t, expenses.pipeline)
	assert.Equal(t, "categoryId1", match["category"])

	group := expenses.pipeline[1][0].Value.(bson.M)
	id := group["_id"].(bson.M)
	assert.Equal(t, "$category", id["category"])
}

func TestExpenseAnalysisError(t *testing.T) {
	expenses := &mockAggregator{aggregateFn: func(ctx context.Context, p mongo.Pipeline) ([]bson.M, error) {
		return nil, errors.New("Analysis error")
	}}
	router := setupReportRouter(NewHandler(&mockAggregator{}, expenses))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reports/expense-analysis", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error": "Analysis error"}`, w.Body.String())
}

func TestTotalFrom(t *testing.T) {
	assert.Equal(t, float64(0), totalFrom(nil))
	assert.Equal(t, float64(0), totalFrom([]bson.M{}))
	assert.Equal(t, float64(350), totalFrom([]bson.M{{"total": float64(350)}}))
	assert.Equal(t, float64(7), totalFrom([]bson.M{{"total": int32(7)}}))
	assert.Equal(t, float64(9), totalFrom([]bson.M{{"total": int64(9)}}))
}
