package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shanture-next/internal/config"
	"github.com/shanture-next/internal/constants"
	"github.com/shanture-next/internal/logger"
	"github.com/shanture-next/internal/models"
	"github.com/shanture-next/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type apiHarness struct {
	t      *testing.T
	db     *gorm.DB
	engine *gin.Engine
}

func newAPIHarness(t *testing.T) *apiHarness {
	t.Helper()
	gin.SetMode(gin.TestMode)
	prev := logger.L
	logger.L = zap.NewNop()
	t.Cleanup(func() { logger.L = prev })

	db, err := models.OpenDB(models.DBOptions{
		Driver:   "sqlite",
		DSN:      fmt.Sprintf("file:router_test_%d?mode=memory&cache=shared", time.Now().UnixNano()),
		LogLevel: "silent",
		Pool:     models.DBPoolConfig{MaxOpenConns: 1, MaxIdleConns: 1},
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))
	t.Cleanup(func() { _ = models.CloseDB(db) })

	cfg := &config.Config{
		Server:  config.ServerConfig{Mode: constants.ServerModeDebug},
		UserJWT: config.JWTConfig{SecretKey: "router-test-secret", ExpireHours: 1},
		Security: config.SecurityConfig{
			PasswordPolicy: config.PasswordPolicyConfig{MinLength: 6},
		},
		Order:   config.OrderConfig{PriceSource: constants.PriceSourceClient},
		Catalog: config.CatalogConfig{CacheTTLSeconds: 60},
	}
	container := provider.NewContainer(cfg, db)
	return &apiHarness{t: t, db: db, engine: SetupRouter(cfg, container)}
}

func (h *apiHarness) do(method, path, token string, body interface{}) (int, map[string]interface{}) {
	h.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(h.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.engine.ServeHTTP(w, req)

	var payload map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(h.t, json.Unmarshal(w.Body.Bytes(), &payload), w.Body.String())
	}
	return w.Code, payload
}

func (h *apiHarness) registerAndLogin(username string) (string, string) {
	h.t.Helper()
	code, body := h.do(http.MethodPost, "/api/register", "", gin.H{
		"username":  username,
		"email":     username + "@example.com",
		"password":  "secret123",
		"full_name": "Test " + username,
	})
	require.Equal(h.t, http.StatusCreated, code, body)
	user := body["data"].(map[string]interface{})["user"].(map[string]interface{})
	require.NotContains(h.t, user, "password")

	code, body = h.do(http.MethodPost, "/api/login", "", gin.H{"username": username, "password": "secret123"})
	require.Equal(h.t, http.StatusOK, code, body)
	data := body["data"].(map[string]interface{})
	return user["id"].(string), data["token"].(string)
}

func (h *apiHarness) createProduct(name string, price float64, stock int) *models.Product {
	h.t.Helper()
	product := &models.Product{Name: name, Price: models.NewMoneyFromFloat(price), Stock: stock, Category: "electronics"}
	require.NoError(h.t, h.db.Create(product).Error)
	return product
}

func (h *apiHarness) stockOf(productID string) int {
	h.t.Helper()
	var product models.Product
	require.NoError(h.t, h.db.Where("id = ?", productID).First(&product).Error)
	return product.Stock
}

func TestCheckoutFlow(t *testing.T) {
	h := newAPIHarness(t)
	_, token := h.registerAndLogin("alice")
	drone := h.createProduct("Drone with Camera", 599, 10)

	code, body := h.do(http.MethodPost, "/api/cart/"+drone.ID, token, gin.H{"quantity": 3})
	require.Equal(t, http.StatusOK, code, body)
	require.Equal(t, true, body["success"])
	require.Equal(t, float64(3), body["cart"].(map[string]interface{})["itemCount"])

	code, body = h.do(http.MethodPost, "/api/cart/"+drone.ID, token, gin.H{"quantity": "4"})
	require.Equal(t, http.StatusOK, code, body)

	code, body = h.do(http.MethodPost, "/api/cart/"+drone.ID, token, gin.H{"quantity": 5})
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, false, body["success"])
	require.Equal(t, "Insufficient stock", body["error"])
	require.NotEmpty(t, body["request_id"])

	code, body = h.do(http.MethodGet, "/api/cart", token, nil)
	require.Equal(t, http.StatusOK, code)
	items := body["items"].([]interface{})
	require.Len(t, items, 1)
	require.Equal(t, float64(7), items[0].(map[string]interface{})["quantity"])
	require.Equal(t, "4193.00", body["total"])

	code, body = h.do(http.MethodPost, "/api/orders", token, gin.H{
		"items":           []gin.H{{"product_id": drone.ID, "quantity": 7, "price": 599}},
		"shippingAddress": gin.H{"street": "1 Main St", "city": "Austin"},
		"paymentMethod":   "card",
	})
	require.Equal(t, http.StatusCreated, code, body)
	order := body["order"].(map[string]interface{})
	require.Equal(t, "4193.00", order["total"])
	require.Equal(t, "Austin", order["shipping_address"].(map[string]interface{})["city"])
	require.NotEmpty(t, order["formatted_date"])
	require.Equal(t, 3, h.stockOf(drone.ID))

	code, body = h.do(http.MethodGet, "/api/cart", token, nil)
	require.Equal(t, http.StatusOK, code)
	require.Empty(t, body["items"])

	code, body = h.do(http.MethodGet, "/api/orders", token, nil)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, body["orders"], 1)
}

func TestCartValidationAndOwnership(t *testing.T) {
	h := newAPIHarness(t)
	_, alice := h.registerAndLogin("alice")
	_, bob := h.registerAndLogin("bob")
	mouse := h.createProduct("Wireless Mouse", 25.5, 50)

	for _, quantity := range []interface{}{0, -1, "abc", 1.5} {
		code, body := h.do(http.MethodPost, "/api/cart/"+mouse.ID, alice, gin.H{"quantity": quantity})
		require.Equal(t, http.StatusBadRequest, code, "quantity %v", quantity)
		require.Equal(t, "Quantity must be a positive number", body["error"])
	}

	code, _ := h.do(http.MethodPost, "/api/cart/missing-product", alice, gin.H{"quantity": 1})
	require.Equal(t, http.StatusNotFound, code)

	code, body := h.do(http.MethodPost, "/api/cart/"+mouse.ID, alice, gin.H{"quantity": 2})
	require.Equal(t, http.StatusOK, code)
	lineID := body["cart"].(map[string]interface{})["items"].([]interface{})[0].(map[string]interface{})["id"].(string)

	code, _ = h.do(http.MethodPut, "/api/cart/items/"+lineID, bob, gin.H{"quantity": 9})
	require.Equal(t, http.StatusNotFound, code)
	code, _ = h.do(http.MethodDelete, "/api/cart/items/"+lineID, bob, nil)
	require.Equal(t, http.StatusNotFound, code)

	code, body = h.do(http.MethodPut, "/api/cart/items/"+lineID, alice, gin.H{"quantity": 9})
	require.Equal(t, http.StatusOK, code, body)
	require.Equal(t, float64(9), body["cartItem"].(map[string]interface{})["quantity"])

	code, body = h.do(http.MethodDelete, "/api/cart/items/"+lineID, alice, nil)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "Item removed from cart", body["message"])
}

func TestCreateOrderRejections(t *testing.T) {
	h := newAPIHarness(t)
	_, token := h.registerAndLogin("carol")
	tablet := h.createProduct("Tablet", 349.99, 18)

	code, body := h.do(http.MethodPost, "/api/orders", token, gin.H{"items": []gin.H{}})
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "No items in the order", body["error"])

	code, body = h.do(http.MethodPost, "/api/orders", token, gin.H{
		"items": []gin.H{
			{"product_id": tablet.ID, "quantity": 1, "price": 349.99},
			{"product_id": tablet.ID, "quantity": 0, "price": 349.99},
		},
	})
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "Invalid cart items data", body["error"])
	details := body["details"].(map[string]interface{})
	require.Len(t, details["invalid_items"], 1)

	code, body = h.do(http.MethodPost, "/api/orders", token, gin.H{
		"items": []gin.H{
			{"product_id": tablet.ID, "quantity": 1, "price": "abc"},
			{"product_id": tablet.ID, "quantity": 1, "price": "349.99"},
			{"product_id": "", "quantity": 1, "price": 1},
		},
	})
	require.Equal(t, http.StatusBadRequest, code, body)
	require.Equal(t, "Invalid cart items data", body["error"])
	invalid := body["details"].(map[string]interface{})["invalid_items"].([]interface{})
	require.Len(t, invalid, 2)
	require.Equal(t, float64(0), invalid[0].(map[string]interface{})["index"])
	require.Equal(t, "price must be a number", invalid[0].(map[string]interface{})["reason"])
	require.Equal(t, float64(2), invalid[1].(map[string]interface{})["index"])

	code, body = h.do(http.MethodPost, "/api/orders", token, gin.H{
		"items": []gin.H{
			{"product_id": tablet.ID, "quantity": 1, "price": 349.99},
			{"product_id": "no-such-product", "quantity": 1, "price": 1},
		},
	})
	require.Equal(t, http.StatusBadRequest, code, body)

	var orders int64
	require.NoError(t, h.db.Model(&models.Order{}).Count(&orders).Error)
	require.Zero(t, orders)
	require.Equal(t, 18, h.stockOf(tablet.ID))
}

func TestDeleteOrderOwnership(t *testing.T) {
	h := newAPIHarness(t)
	_, alice := h.registerAndLogin("alice")
	_, bob := h.registerAndLogin("bob")
	camera := h.createProduct("Camera", 549.99, 7)

	code, body := h.do(http.MethodPost, "/api/orders", alice, gin.H{
		"items": []gin.H{{"id": camera.ID, "quantity": "2", "price": "549.99"}},
	})
	require.Equal(t, http.StatusCreated, code, body)
	orderID := body["order"].(map[string]interface{})["id"].(string)

	code, body = h.do(http.MethodDelete, "/api/orders/"+orderID, bob, nil)
	require.Equal(t, http.StatusNotFound, code)
	require.Equal(t, "Order not found or does not belong to user", body["error"])

	code, body = h.do(http.MethodDelete, "/api/orders/"+orderID, alice, nil)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, orderID, body["order_id"])
	require.Equal(t, 5, h.stockOf(camera.ID))
}

func TestProfileEndpoints(t *testing.T) {
	h := newAPIHarness(t)
	aliceID, alice := h.registerAndLogin("alice")
	bobID, _ := h.registerAndLogin("bob")

	code, body := h.do(http.MethodGet, "/api/profile", alice, nil)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, aliceID, body["customer"].(map[string]interface{})["id"])

	code, _ = h.do(http.MethodPatch, "/api/register/"+bobID, alice, gin.H{"phone": "1"})
	require.Equal(t, http.StatusNotFound, code)

	code, body = h.do(http.MethodPatch, "/api/register/"+aliceID, alice, gin.H{})
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "No valid fields to update", body["error"])

	code, body = h.do(http.MethodPatch, "/api/register/"+aliceID, alice, gin.H{"username": "alice2"})
	require.Equal(t, http.StatusOK, code, body)
	require.NotEmpty(t, body["token"])

	code, _ = h.do(http.MethodPost, "/api/register", "", gin.H{
		"username": "bob", "email": "x@example.com", "password": "secret123", "full_name": "X",
	})
	require.Equal(t, http.StatusBadRequest, code)

	code, body = h.do(http.MethodPost, "/api/login", "", gin.H{"username": "bob", "password": "wrong-pass"})
	require.Equal(t, http.StatusUnauthorized, code)
	require.Equal(t, "Invalid credentials", body["error"])
}

func TestAuthRequiredAndDeletedCustomer(t *testing.T) {
	h := newAPIHarness(t)
	code, body := h.do(http.MethodGet, "/api/cart", "", nil)
	require.Equal(t, http.StatusUnauthorized, code)
	require.Equal(t, false, body["success"])

	code, _ = h.do(http.MethodGet, "/api/orders", "not-a-token", nil)
	require.Equal(t, http.StatusUnauthorized, code)

	id, token := h.registerAndLogin("dave")
	require.NoError(t, h.db.Exec("DELETE FROM customers WHERE id = ?", id).Error)
	code, body = h.do(http.MethodGet, "/api/profile", token, nil)
	require.Equal(t, http.StatusUnauthorized, code)
	require.Equal(t, "Not authorized, user not found", body["error"])
}

func TestProductsAndHealth(t *testing.T) {
	h := newAPIHarness(t)
	h.createProduct("Tablet", 349.99, 18)
	h.createProduct("Camera", 549.99, 7)
	appliance := &models.Product{Name: "Microwave", Price: models.NewMoneyFromFloat(89.99), Stock: 3, Category: "appliances"}
	require.NoError(t, h.db.Create(appliance).Error)

	code, body := h.do(http.MethodGet, "/api/products", "", nil)
	require.Equal(t, http.StatusOK, code)
	products := body["products"].([]interface{})
	require.Len(t, products, 3)
	require.Equal(t, "Camera", products[0].(map[string]interface{})["name"])

	code, body = h.do(http.MethodGet, "/api/products?category=appliances", "", nil)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, body["products"], 1)

	code, _ = h.do(http.MethodGet, "/api/products/"+appliance.ID, "", nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = h.do(http.MethodGet, "/api/products/unknown", "", nil)
	require.Equal(t, http.StatusNotFound, code)

	code, body = h.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "ok", body["status"])
}
