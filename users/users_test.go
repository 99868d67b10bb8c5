package users

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
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
	findAllFn    func(ctx context.Context) ([]User, error)
	findByIDFn   func(ctx context.Context, id string) (*User, error)
	insertFn     func(ctx context.Context, doc *User) error
	updateByIDFn func(ctx context.Context, id string, set bson.M) (*User, error)
	deleteByIDFn func(ctx context.Context, id string) error
}

func (m *mockStore) FindAll(ctx context.Context) ([]User, error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx)
	}
	return []User{}, nil
}

func (m *mockStore) FindByID(ctx context.Context, id string) (*User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, storage.ErrNotFound
}

func (m *mockStore) Insert(ctx context.Context, doc *User) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, doc)
	}
	return nil
}

func (m *mockStore) UpdateByID(ctx context.Context, id string, set bson.M) (*User, error) {
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
	r.GET("/users", h.HandleListUsers)
	r.POST("/users", h.HandleCreateUser)
	r.GET("/users/:id", h.HandleGetUser)
	r.PUT("/users/:id", h.HandleUpdateUser)
	r.DELETE("/users/:id", h.HandleDeleteUser)
	return r
}

func postJSON(router *gin.Engine, path, payload string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestCreateUserStoresPasswordAsProvided(t *testing.T) {
	var inserted *User
	store := &mockStore{insertFn: func(ctx context.Context, doc *User) error {
		inserted = doc
		return nil
	}}
	router := setupRouter(store)

	w := postJSON(router, "/users", `{"username": "israel", "password": "plain-secret", "businessType": "זעיר"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, inserted)
	assert.Equal(t, "plain-secret", inserted.Password)
	assert.Equal(t, BusinessTypeZair, inserted.BusinessType)

	var body User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, inserted.ID, body.ID)
}

func TestCreateUserBusinessTypeEnum(t *testing.T) {
	for _, bt := range []string{BusinessTypeZair, BusinessTypePatur, BusinessTypeMursheh} {
		payload, err := json.Marshal(map[string]string{
			"username":     "u-" + bt,
			"password":     "pw",
			"businessType": bt,
		})
		require.NoError(t, err)

		w := postJSON(setupRouter(&mockStore{}), "/users", string(payload))
		assert.Equal(t, http.StatusCreated, w.Code, "businessType %q should be accepted", bt)
	}
}

func TestCreateUserInvalidBusinessType(t *testing.T) {
	w := postJSON(setupRouter(&mockStore{}), "/users", `{"username": "u", "password": "pw", "businessType": "invalid_type"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateUserMissingBusinessType(t *testing.T) {
	w := postJSON(setupRouter(&mockStore{}), "/users", `{"username": "u", "password": "pw"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateUserStoreError(t *testing.T) {
	store := &mockStore{insertFn: func(ctx context.Context, doc *User) error {
		return errors.New("write failed")
	}}
	router := setupRouter(store)

	w := postJSON(router, "/users", `{"username": "israel", "password": "pw", "businessType": "פטור"}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error": "write failed"}`, w.Body.String())
}

func TestGetUserNotFound(t *testing.T) {
	router := setupRouter(&mockStore{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/missing", nil))

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error": "User not found"}`, w.Body.String())
}

func TestListUsersError(t *testing.T) {
	store := &mockStore{findAllFn: func(ctx context.Context) ([]User, error) {
		return nil, errors.New("store down")
	}}
	router := setupRouter(store)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error": "store down"}`, w.Body.String())
}

func TestDeleteUserNotFound(t *testing.T) {
	router := setupRouter(&mockStore{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/users/missing", nil))

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error": "User not found"}`, w.Body.String())
}
