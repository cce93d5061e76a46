package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"qrmenu/configs"
	"qrmenu/entity"
	"qrmenu/pkg/logx"
	"qrmenu/routes"
	"qrmenu/utils"
	"qrmenu/ws"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/gin-gonic/gin"
)

const testSecret = "test-secret"

type envelope struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&entity.User{}, &entity.Order{}, &entity.OrderItem{}))
	require.NoError(t, db.Create(&entity.User{Email: "owner@example.com", RestaurantName: "Demo"}).Error)

	cfg := &configs.Config{JWTSecret: testSecret, AllowGuestJoin: true}
	hub := ws.NewOrderHub(logx.New(), true)
	go hub.Run()

	r := gin.New()
	routes.RegisterRoutes(r, db, cfg, hub)
	return r
}

func ownerToken(t *testing.T, userID uint) string {
	t.Helper()
	token, err := utils.GenerateToken(userID, "owner", testSecret, time.Hour)
	require.NoError(t, err)
	return token
}

func doJSON(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func pizzaBody() gin.H {
	return gin.H{
		"restaurantId": 1,
		"tableNumber":  5,
		"customerName": "Asha",
		"items": []gin.H{
			{"name": "Pizza", "price": 299, "quantity": 2},
		},
	}
}

func createOrder(t *testing.T, r *gin.Engine) entity.Order {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/orders", "", pizzaBody())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var order entity.Order
	require.NoError(t, json.Unmarshal(env.Data, &order))
	return order
}

func TestCreateOrderEndpoint(t *testing.T) {
	r := newTestRouter(t)

	order := createOrder(t, r)
	assert.Equal(t, entity.StatusPending, order.Status)
	assert.Equal(t, entity.TableLabel("5"), order.TableNumber)
	assert.True(t, order.TotalAmount.IntPart() == 598)
}

func TestCreateOrderValidation(t *testing.T) {
	r := newTestRouter(t)

	body := pizzaBody()
	delete(body, "restaurantId")
	w := doJSON(r, http.MethodPost, "/api/orders", "", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body = pizzaBody()
	body["items"] = []gin.H{}
	w = doJSON(r, http.MethodPost, "/api/orders", "", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListOrdersEndpoint(t *testing.T) {
	r := newTestRouter(t)
	createOrder(t, r)
	createOrder(t, r)

	// auth required
	w := doJSON(r, http.MethodGet, "/api/orders?restaurantId=1", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := ownerToken(t, 1)

	// missing restaurantId
	w = doJSON(r, http.MethodGet, "/api/orders", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// someone else's restaurant
	w = doJSON(r, http.MethodGet, "/api/orders?restaurantId=2", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(r, http.MethodGet, "/api/orders?restaurantId=1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var orders []entity.Order
	require.NoError(t, json.Unmarshal(env.Data, &orders))
	require.Len(t, orders, 2)
	assert.GreaterOrEqual(t, orders[0].ID, orders[1].ID, "expected newest-first")
}

func TestListOrdersStatusFilter(t *testing.T) {
	r := newTestRouter(t)
	order := createOrder(t, r)
	createOrder(t, r)
	token := ownerToken(t, 1)

	w := doJSON(r, http.MethodPut, fmt.Sprintf("/api/orders/%d", order.ID), token, gin.H{"status": "process"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/api/orders?restaurantId=1&status=process", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var orders []entity.Order
	require.NoError(t, json.Unmarshal(env.Data, &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)

	w = doJSON(r, http.MethodGet, "/api/orders?restaurantId=1&status=bogus", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderDetailEndpoint(t *testing.T) {
	r := newTestRouter(t)
	order := createOrder(t, r)

	w := doJSON(r, http.MethodGet, fmt.Sprintf("/api/orders/%d", order.ID), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/api/orders/9999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateStatusEndpoint(t *testing.T) {
	r := newTestRouter(t)
	order := createOrder(t, r)
	token := ownerToken(t, 1)

	// unauthenticated
	w := doJSON(r, http.MethodPut, fmt.Sprintf("/api/orders/%d", order.ID), "", gin.H{"status": "process"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// wrong owner
	w = doJSON(r, http.MethodPut, fmt.Sprintf("/api/orders/%d", order.ID), ownerToken(t, 2), gin.H{"status": "process"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(r, http.MethodPut, fmt.Sprintf("/api/orders/%d", order.ID), token, gin.H{"status": "process"})
	require.Equal(t, http.StatusOK, w.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var updated entity.Order
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, entity.StatusProcess, updated.Status)

	w = doJSON(r, http.MethodPut, fmt.Sprintf("/api/orders/%d", order.ID), token, gin.H{"status": "bogus"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid status")

	w = doJSON(r, http.MethodPut, "/api/orders/9999", token, gin.H{"status": "process"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateStatusTerminalEndpoint(t *testing.T) {
	r := newTestRouter(t)
	order := createOrder(t, r)
	token := ownerToken(t, 1)

	w := doJSON(r, http.MethodPut, fmt.Sprintf("/api/orders/%d", order.ID), token, gin.H{"status": "cancelled"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPut, fmt.Sprintf("/api/orders/%d", order.ID), token, gin.H{"status": "process"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// still cancelled
	w = doJSON(r, http.MethodGet, fmt.Sprintf("/api/orders/%d", order.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"cancelled"`)
}
