package router_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"invdash_backend/internal/router"
	"invdash_backend/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	router.Setup(engine, testutil.NewTestDB(t))
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRegisterLoginOrderFlow(t *testing.T) {
	engine := newTestEngine(t)

	rec := doJSON(t, engine, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": "shop",
		"email":    "shop@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, engine, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "shop@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	token, _ := decodeBody(t, rec)["access_token"].(string)
	require.NotEmpty(t, token)

	rec = doJSON(t, engine, http.MethodPost, "/api/v1/categories", token, gin.H{"name": "Beverages"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, engine, http.MethodPost, "/api/v1/inventory", token, gin.H{
		"name":     "Cola",
		"category": "Beverages",
		"quantity": 100,
		"price":    10.00,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	item := decodeBody(t, rec)["item"].(map[string]interface{})
	itemID := int64(item["id"].(float64))

	rec = doJSON(t, engine, http.MethodPost, "/api/v1/orders", token, gin.H{
		"order_items": []int64{itemID},
		"quantities":  []int{3},
		"prices":      []float64{10.00},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	orderBody := decodeBody(t, rec)
	assert.Equal(t, "30", orderBody["total"], "decimal totals marshal as JSON strings")
	assert.Regexp(t, `^ORD-\d{8}-0001$`, orderBody["order_number"])

	rec = doJSON(t, engine, http.MethodGet, "/api/v1/inventory", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items := decodeBody(t, rec)["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, float64(97), items[0].(map[string]interface{})["quantity"])

	rec = doJSON(t, engine, http.MethodGet, "/api/v1/orders", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	orders := decodeBody(t, rec)["orders"].([]interface{})
	require.Len(t, orders, 1)
	orderItems := orders[0].(map[string]interface{})["items"].([]interface{})
	require.Len(t, orderItems, 1)
	assert.Equal(t, "Cola", orderItems[0].(map[string]interface{})["item_name"])
}

func TestAuthRequiredOnProtectedRoutes(t *testing.T) {
	engine := newTestEngine(t)

	rec := doJSON(t, engine, http.MethodGet, "/api/v1/inventory", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, engine, http.MethodGet, "/api/v1/dashboard", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDuplicateRegistrationRejected(t *testing.T) {
	engine := newTestEngine(t)

	payload := gin.H{"username": "shop", "email": "shop@example.com", "password": "password123"}
	rec := doJSON(t, engine, http.MethodPost, "/api/v1/auth/register", "", payload)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, engine, http.MethodPost, "/api/v1/auth/register", "", payload)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
}

func TestStreamEndpoint(t *testing.T) {
	engine := newTestEngine(t)

	rec := doJSON(t, engine, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": "shop", "email": "shop@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = doJSON(t, engine, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": "shop@example.com", "password": "password123",
	})
	token, _ := decodeBody(t, rec)["access_token"].(string)

	rec = doJSON(t, engine, http.MethodGet, "/api/v1/stream", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/event-stream")
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
	assert.Contains(t, rec.Body.String(), "Connected to event stream")
}
