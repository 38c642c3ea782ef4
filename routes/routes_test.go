package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/junaidrashid-git/storefront-api/auth"
	"github.com/junaidrashid-git/storefront-api/config"
	orderControllers "github.com/junaidrashid-git/storefront-api/controllers/order"
	"github.com/junaidrashid-git/storefront-api/database/databasetest"
	"github.com/junaidrashid-git/storefront-api/eventbus"
	"github.com/junaidrashid-git/storefront-api/ledger"
	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu     sync.Mutex
	keys   []string
	events []interface{}
}

func (p *recordingPublisher) Publish(ctx context.Context, routingKey string, event interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, routingKey)
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() {}

type testEnv struct {
	t      *testing.T
	db     *gorm.DB
	engine *gin.Engine
	hub    *orderControllers.Hub
	pub    *recordingPublisher
	cfg    config.Config
}

func newEnv(t *testing.T) *testEnv {
	gin.SetMode(gin.TestMode)
	db := databasetest.New(t)
	cfg := config.Config{JWTSecret: "route-secret", JWTExpiresIn: time.Hour, OpsAPIKey: "ops-key"}
	env := &testEnv{t: t, db: db, hub: orderControllers.NewHub(), pub: &recordingPublisher{}, cfg: cfg}
	env.engine = NewEngine(Deps{
		Config:    cfg,
		DB:        db,
		Ledger:    ledger.New(db, ledger.Options{MaxRetries: 2}),
		Hub:       env.hub,
		Publisher: env.pub,
	})
	return env
}

func (e *testEnv) token(u models.User) string {
	tok, err := auth.IssueToken([]byte(e.cfg.JWTSecret), u, time.Hour)
	require.NoError(e.t, err)
	return tok
}

func (e *testEnv) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(e.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func TestCartFlow(t *testing.T) {
	env := newEnv(t)
	seller := databasetest.SeedUser(t, env.db, "seller@shop.test", models.RoleSeller)
	buyer := databasetest.SeedUser(t, env.db, "buyer@shop.test", models.RoleUser)
	p := databasetest.SeedProduct(t, env.db, seller.ID, "Blender", 80, 5)
	tok := env.token(buyer)

	w := env.do(http.MethodPost, "/user/cart", "", gin.H{"product_id": p.ID, "quantity": 1})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(http.MethodPost, "/user/cart", tok, gin.H{"product_id": p.ID, "quantity": 5})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var added ledger.Result
	decode(t, w, &added)
	assert.Equal(t, ledger.StatusCreated, added.Status)
	lineID := added.Line.ID

	w = env.do(http.MethodPost, "/user/cart", tok, gin.H{"product_id": p.ID, "quantity": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]string
	decode(t, w, &body)
	assert.Equal(t, "insufficient_stock", body["code"])

	w = env.do(http.MethodPut, "/user/cart/"+itoa(lineID), tok, gin.H{"quantity": 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, models.Availability{Total: 5, Remaining: 3, Sold: 2}, databasetest.Availability(t, env.db, p.ID))

	w = env.do(http.MethodPut, "/user/cart/"+itoa(lineID), tok, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodGet, "/user/cart", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var lines []models.CartLine
	decode(t, w, &lines)
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)

	w = env.do(http.MethodPut, "/user/cart/"+itoa(lineID), tok, gin.H{"quantity": 0})
	require.Equal(t, http.StatusOK, w.Code)
	var removed ledger.Result
	decode(t, w, &removed)
	assert.Equal(t, ledger.StatusRemoved, removed.Status)
	assert.Equal(t, models.NewAvailability(5), databasetest.Availability(t, env.db, p.ID))

	w = env.do(http.MethodDelete, "/user/cart/"+itoa(lineID), tok, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = env.do(http.MethodDelete, "/user/cart/abc", tok, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWishlistConflict(t *testing.T) {
	env := newEnv(t)
	seller := databasetest.SeedUser(t, env.db, "seller@shop.test", models.RoleSeller)
	buyer := databasetest.SeedUser(t, env.db, "buyer@shop.test", models.RoleUser)
	p := databasetest.SeedProduct(t, env.db, seller.ID, "Blender", 80, 5)
	tok := env.token(buyer)

	w := env.do(http.MethodPost, "/user/wishlist", tok, gin.H{"product_id": p.ID})
	require.Equal(t, http.StatusCreated, w.Code)
	w = env.do(http.MethodPost, "/user/wishlist", tok, gin.H{"product_id": p.ID})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.do(http.MethodGet, "/user/wishlist", tok, nil)
	var items []models.WishlistItem
	decode(t, w, &items)
	require.Len(t, items, 1)

	w = env.do(http.MethodDelete, "/user/wishlist/"+itoa(items[0].ID), tok, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSellerProductLifecycle(t *testing.T) {
	env := newEnv(t)
	seller := databasetest.SeedUser(t, env.db, "seller@shop.test", models.RoleSeller)
	admin := databasetest.SeedUser(t, env.db, "admin@shop.test", models.RoleAdmin)
	buyer := databasetest.SeedUser(t, env.db, "buyer@shop.test", models.RoleUser)
	sellerTok, adminTok, buyerTok := env.token(seller), env.token(admin), env.token(buyer)

	w := env.do(http.MethodPost, "/seller/products", buyerTok, gin.H{})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(http.MethodPost, "/seller/products", sellerTok, gin.H{
		"name": "Tea Set", "category": "Kitchen", "original_price": 100, "discount_percentage": 10, "total_quantity": 4,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var product models.Product
	decode(t, w, &product)
	assert.Equal(t, models.ProductStatusPending, product.Status)
	assert.InDelta(t, 90.0, product.Price, 0.001)
	assert.Equal(t, models.NewAvailability(4), product.Availability)

	// Pending products are hidden from the catalog.
	w = env.do(http.MethodGet, "/products/"+itoa(product.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(http.MethodPut, "/admin/products/"+itoa(product.ID)+"/status", adminTok, gin.H{"status": "approved"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(http.MethodGet, "/products?search=tea&sort_by=price&order=asc", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed []models.Product
	decode(t, w, &listed)
	require.Len(t, listed, 1)

	w = env.do(http.MethodGet, "/products?sort_by=password", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPost, "/user/cart", buyerTok, gin.H{"product_id": product.ID, "quantity": 3})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(http.MethodPut, "/seller/products/"+itoa(product.ID)+"/stock", sellerTok, gin.H{"total_quantity": 10})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, models.Availability{Total: 10, Remaining: 7, Sold: 3}, databasetest.Availability(t, env.db, product.ID))

	w = env.do(http.MethodPut, "/seller/products/"+itoa(product.ID), sellerTok, gin.H{
		"name": "Tea Set Deluxe", "category": "Kitchen", "original_price": 120, "total_quantity": 2,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var stored models.Product
	require.NoError(t, env.db.First(&stored, product.ID).Error)
	assert.Equal(t, "Tea Set Deluxe", stored.Name)
	assert.Equal(t, models.ProductStatusPending, stored.Status)
	assert.Equal(t, models.Availability{Total: 2, Remaining: 0, Sold: 3}, stored.Availability)

	w = env.do(http.MethodGet, "/seller/dashboard", sellerTok, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var overview map[string]interface{}
	decode(t, w, &overview)
	assert.EqualValues(t, 1, overview["total_products"])
	assert.EqualValues(t, 3, overview["units_in_carts"])

	w = env.do(http.MethodGet, "/admin/products/export-excel", adminTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "products.xlsx")
	assert.NotZero(t, w.Body.Len())

	w = env.do(http.MethodDelete, "/seller/products/"+itoa(product.ID), env.token(buyer), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = env.do(http.MethodDelete, "/seller/products/"+itoa(product.ID), sellerTok, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, "/user/cart", buyerTok, nil)
	var lines []models.CartLine
	decode(t, w, &lines)
	assert.Empty(t, lines)
}

func TestPlaceOrderBroadcastsAndPublishes(t *testing.T) {
	env := newEnv(t)
	seller := databasetest.SeedUser(t, env.db, "seller@shop.test", models.RoleSeller)
	admin := databasetest.SeedUser(t, env.db, "admin@shop.test", models.RoleAdmin)
	buyer := databasetest.SeedUser(t, env.db, "buyer@shop.test", models.RoleUser)
	p := databasetest.SeedProduct(t, env.db, seller.ID, "Kettle", 20, 3)
	buyerTok := env.token(buyer)

	srv := httptest.NewServer(env.engine)
	defer srv.Close()

	header := http.Header{}
	header.Set("Authorization", "Bearer "+env.token(seller))
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/seller/orders/ws", header)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return env.hub.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)

	w := env.do(http.MethodPost, "/user/cart", buyerTok, gin.H{"product_id": p.ID, "quantity": 2})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(http.MethodPost, "/orders", buyerTok, gin.H{
		"items":            []gin.H{{"product_id": p.ID, "quantity": 2}},
		"total_amount":     40,
		"customer_details": gin.H{"name": "Buyer", "email": "buyer@shop.test", "phone": "017", "address": "Road 1"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg orderControllers.OrderMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, eventbus.RoutingKeyOrderPlaced, msg.Type)
	require.Len(t, msg.Order.Items, 1)
	assert.Equal(t, p.ID, msg.Order.Items[0].ProductID)

	require.Len(t, env.pub.keys, 1)
	assert.Equal(t, eventbus.RoutingKeyOrderPlaced, env.pub.keys[0])
	event, ok := env.pub.events[0].(eventbus.OrderPlacedEvent)
	require.True(t, ok)
	assert.Equal(t, 40.0, event.TotalAmount)

	w = env.do(http.MethodGet, "/user/orders", buyerTok, nil)
	var orders []models.Order
	decode(t, w, &orders)
	require.Len(t, orders, 1)

	w = env.do(http.MethodPut, "/admin/orders/"+itoa(orders[0].ID)+"/status", env.token(admin), gin.H{"status": "delivered"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "order.updated", msg.Type)
	assert.Equal(t, "Delivered", msg.Order.OrderStatus)

	w = env.do(http.MethodGet, "/admin/orders", env.token(admin), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all []models.Order
	decode(t, w, &all)
	require.Len(t, all, 1)
	assert.Equal(t, "Delivered", all[0].OrderStatus)

	w = env.do(http.MethodPost, "/orders", buyerTok, gin.H{
		"items":            []gin.H{{"product_id": p.ID, "quantity": 1}},
		"total_amount":     20,
		"customer_details": gin.H{"name": "Buyer", "email": "buyer@shop.test", "phone": "017", "address": "Road 1"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOpsReconcile(t *testing.T) {
	env := newEnv(t)
	seller := databasetest.SeedUser(t, env.db, "seller@shop.test", models.RoleSeller)
	p := databasetest.SeedProduct(t, env.db, seller.ID, "Broken", 10, 5)
	require.NoError(t, env.db.Model(&models.Product{}).Where("id = ?", p.ID).
		Update("availability_sold", 2).Error)

	w := env.do(http.MethodGet, "/ops/reconcile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/ops/reconcile", nil)
	req.Header.Set("X-API-KEY", "ops-key")
	rec := httptest.NewRecorder()
	env.engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out struct {
		Repair bool           `json:"repair"`
		Drift  []ledger.Drift `json:"drift"`
	}
	decode(t, rec, &out)
	assert.True(t, out.Repair)
	require.Len(t, out.Drift, 1)
	assert.True(t, out.Drift[0].Repaired)
	assert.Equal(t, models.NewAvailability(5), databasetest.Availability(t, env.db, p.ID))

	w = env.do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func itoa(id uint) string {
	b, _ := json.Marshal(id)
	return string(b)
}

func TestAdminUserManagement(t *testing.T) {
	env := newEnv(t)
	seller := databasetest.SeedUser(t, env.db, "seller@shop.test", models.RoleSeller)
	admin := databasetest.SeedUser(t, env.db, "admin@shop.test", models.RoleAdmin)
	buyer := databasetest.SeedUser(t, env.db, "buyer@shop.test", models.RoleUser)
	p := databasetest.SeedProduct(t, env.db, seller.ID, "Kettle", 20, 3)
	adminTok := env.token(admin)

	w := env.do(http.MethodPost, "/user/cart", env.token(buyer), gin.H{"product_id": p.ID, "quantity": 2})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(http.MethodPut, "/admin/users/"+itoa(buyer.ID), env.token(buyer), gin.H{"is_active": false})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(http.MethodPut, "/admin/users/"+itoa(buyer.ID), adminTok, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = env.do(http.MethodPut, "/admin/users/"+itoa(buyer.ID), adminTok, gin.H{"role": "superuser"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = env.do(http.MethodPut, "/admin/users/9999", adminTok, gin.H{"role": "seller"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(http.MethodPut, "/admin/users/"+itoa(buyer.ID), adminTok, gin.H{"role": "seller", "is_active": false})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var stored models.User
	require.NoError(t, env.db.First(&stored, buyer.ID).Error)
	assert.Equal(t, models.RoleSeller, stored.Role)
	assert.False(t, stored.IsActive)

	w = env.do(http.MethodDelete, "/admin/users/"+itoa(admin.ID), adminTok, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = env.do(http.MethodDelete, "/admin/users/"+itoa(seller.ID), adminTok, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.do(http.MethodDelete, "/admin/users/"+itoa(buyer.ID), adminTok, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, models.NewAvailability(3), databasetest.Availability(t, env.db, p.ID))

	w = env.do(http.MethodDelete, "/admin/users/"+itoa(buyer.ID), adminTok, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
