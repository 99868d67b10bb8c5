package category

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"bookkeeping-backend/storage"
)

type mockStore struct {
	findAllFn    func(ctx context.Context) ([]Category, error)
	findByIDFn   func(ctx context.Context, id string) (*Category, error)
	findOneFn    func(ctx context.Context, filter bson.M) (*Category, error)
	insertFn     func(ctx context.Context, doc *Category) error
	updateByIDFn func(ctx context.Context, id string, set bson.M) (*Category, error)
	deleteByIDFn func(ctx context.Context, id string) error
}

func (m *mockStore) FindAll(ctx context.Context) ([]Category, error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx)
	}
	return []Category{}, nil
}

func (m *mockStore) FindByID(ctx context.Context, id string) (*Category, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, storage.ErrNotFound
}

func (m *mockStore) FindOne(ctx context.Context, filter bson.M) (*Category, error) {
	if m.findOneFn != nil {
		return m.findOneFn(ctx, filter)
	}
	return nil, storage.ErrNotFound
}

func (m *mockStore) Insert(ctx context.Context, doc *Category) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, doc)
	}
	return nil
}

func (m *mockStore) UpdateByID(ctx context.Context, id string, set bson.M) (*Category, error) {
	if m.updateByIDFn != nil {
		return m.updateByIDFn(ctx, id, set)
	}
	return nil, storage.ErrNotFound
}

func (m *mockStore) DeleteByID(ctx context.Context, id string) error {
	if m.deleteByIDFn != nil {
		return m.deleteByIDFn(ctx, id)
	}
	return storage.ErrNotFound
}

var _ Store = (*mockStore)(nil)

func setupRouter(store Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(store)
	r := gin.New()
	r.GET("/categories", h.HandleListCategories)
	r.POST("/categories", h.HandleCreateCategory)
	r.GET("/categories/:id", h.HandleGetCategory)
	r.PUT("/categories/:id", h.HandleUpdateCategory)
	r.DELETE("/categories/:id", h.HandleDeleteCategory)
	return r
}

func postJSON(router *gin.Engine, path, payload string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestCreateCategory(t *testing.T) {
	var inserted *Category
	store := &mockStore{insertFn: func(ctx context.Context, doc *Category) error {
		inserted = doc
		return nil
	}}
	router := setupRouter(store)

	w := postJSON(router, "/categories", `{"name": "Office", "description": "Office supplies"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, inserted)
	assert.NotEmpty(t, inserted.ID)

	var body Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Office", body.Name)
	assert.Equal(t, "Office supplies", body.Description)
}

// Creation is rejected up front when a category with the same name exists,
// before any write is attempted.
func TestCreateCategoryDuplicateNamePreCheck(t *testing.T) {
	insertCalled := false
	store := &mockStore{
		findOneFn: func(ctx context.Context, filter bson.M) (*Category, error) {
			assert.Equal(t, bson.M{"name": "Office"}, filter)
			return &Category{ID: "c1", Name: "Office"}, nil
		},
		insertFn: func(ctx context.Context, doc *Category) error {
			insertCalled = true
			return nil
		},
	}
	router := setupRouter(store)

	w := postJSON(router, "/categories", `{"name": "Office"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error": "Category already exists"}`, w.Body.String())
	assert.False(t, insertCalled)
}

func TestCreateCategoryMissingName(t *testing.T) {
	router := setupRouter(&mockStore{})
	w := postJSON(router, "/categories", `{"description": "no name"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetCategoryNotFound(t *testing.T) {
	router := setupRouter(&mockStore{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/categories/missing", nil))

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error": "Category not found"}`, w.Body.String())
}

func TestDeleteCategoryNotFound(t *testing.T) {
	router := setupRouter(&mockStore{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/categories/missing", nil))

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error": "Category not found"}`, w.Body.String())
}
