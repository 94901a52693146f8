package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/766ms/Glam-rent-v1/app/models"
	"github.com/766ms/Glam-rent-v1/internal/payment"
	"github.com/766ms/Glam-rent-v1/internal/server"
	"github.com/766ms/Glam-rent-v1/pkg/apperr"
	"github.com/766ms/Glam-rent-v1/pkg/cache"
	"github.com/766ms/Glam-rent-v1/pkg/database"
	"github.com/766ms/Glam-rent-v1/pkg/storage"
)

// fakeGateway approves any intent and accepts any webhook whose body is
// the JSON form of a payment.WebhookEvent.
type fakeGateway struct {
	seq    int
	orders map[string]uint
}

func (g *fakeGateway) PublishableKey() string { return "pk_test_fake" }

func (g *fakeGateway) CreateIntent(_ context.Context, order *models.Order) (payment.Intent, error) {
	g.seq++
	id := fmt.Sprintf("pi_fake_%d", g.seq)
	if g.orders == nil {
		g.orders = map[string]uint{}
	}
	g.orders[id] = order.ID
	return payment.Intent{ID: id, ClientSecret: id + "_secret", Status: "requires_payment_method", OrderID: order.ID}, nil
}

func (g *fakeGateway) RetrieveIntent(_ context.Context, intentID string) (payment.Intent, error) {
	return payment.Intent{ID: intentID, Status: "succeeded", OrderID: g.orders[intentID]}, nil
}

func (g *fakeGateway) ParseWebhook(payload []byte, signature string) (payment.WebhookEvent, error) {
	if signature != "t=test,v1=valid" {
		return payment.WebhookEvent{}, apperr.New(apperr.Validation, "Invalid webhook signature")
	}
	var event struct {
		Type     string `json:"type"`
		IntentID string `json:"intent_id"`
		OrderID  uint   `json:"order_id"`
	}
	if err := json.Unmarshal(payload, &event); err != nil {
		return payment.WebhookEvent{}, apperr.New(apperr.Validation, "Malformed webhook payload")
	}
	return payment.WebhookEvent{Type: event.Type, IntentID: event.IntentID, OrderID: event.OrderID}, nil
}

type apiTest struct {
	t   *testing.T
	app *server.App
	srv *httptest.Server
}

func newAPITest(t *testing.T) *apiTest {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := database.Open("sqlite", dsn)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Category{}, &models.Product{},
		&models.CartItem{}, &models.Order{}, &models.OrderItem{},
	))

	app := server.Build(db, cache.Disabled(), storage.Connect(), &fakeGateway{})
	srv := httptest.NewServer(app.Router.Handler())
	t.Cleanup(srv.Close)

	return &apiTest{t: t, app: app, srv: srv}
}

type apiResponse struct {
	Code int
	Body map[string]json.RawMessage
}

func (a *apiTest) do(method, path, token string, body any) apiResponse {
	a.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, a.srv.URL+path, reader)
	require.NoError(a.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := http.DefaultClient.Do(req)
	require.NoError(a.t, err)
	defer res.Body.Close()

	var envelope map[string]json.RawMessage
	require.NoError(a.t, json.NewDecoder(res.Body).Decode(&envelope))
	return apiResponse{Code: res.StatusCode, Body: envelope}
}

func (r apiResponse) data(t *testing.T, dest any) {
	t.Helper()
	raw, ok := r.Body["data"]
	require.True(t, ok, "response has no data field")
	require.NoError(t, json.Unmarshal(raw, dest))
}

func (a *apiTest) register(email string) string {
	a.t.Helper()
	res := a.do(http.MethodPost, "/api/register", "", map[string]string{
		"name":     "Test User",
		"email":    email,
		"password": "s3cret-password",
	})
	require.Equal(a.t, http.StatusCreated, res.Code)

	var data struct {
		Token string `json:"token"`
	}
	res.data(a.t, &data)
	return data.Token
}

func (a *apiTest) registerAdmin(email string) string {
	a.t.Helper()
	token := a.register(email)
	require.NoError(a.t, a.app.DB.Model(&models.User{}).
		Where("email = ?", email).Update("is_admin", true).Error)
	return token
}

func TestHealthAndConfigEndpoints(t *testing.T) {
	api := newAPITest(t)

	res := api.do(http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, res.Code)

	res = api.do(http.MethodGet, "/api/payment/config", "", nil)
	require.Equal(t, http.StatusOK, res.Code)
	var cfg struct {
		PublishableKey string `json:"publishable_key"`
	}
	res.data(t, &cfg)
	assert.Equal(t, "pk_test_fake", cfg.PublishableKey)
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	api := newAPITest(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/cart"},
		{http.MethodPost, "/api/orders"},
		{http.MethodGet, "/api/orders"},
		{http.MethodPost, "/api/payment/create-intent"},
	} {
		res := api.do(route.method, route.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, res.Code, "%s %s", route.method, route.path)
	}
}

func TestAdminRoutesRejectNonAdmin(t *testing.T) {
	api := newAPITest(t)
	token := api.register("shopper@example.com")

	res := api.do(http.MethodPost, "/api/products", token, map[string]any{
		"name": "Dama Carmesí", "price": 189999, "stock": 10,
	})
	assert.Equal(t, http.StatusForbidden, res.Code)

	res = api.do(http.MethodGet, "/api/admin/stats", token, nil)
	assert.Equal(t, http.StatusForbidden, res.Code)
}

func TestRegisterValidation(t *testing.T) {
	api := newAPITest(t)

	res := api.do(http.MethodPost, "/api/register", "", map[string]string{
		"name":     "X",
		"email":    "not-an-email",
		"password": "short",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, res.Code)
}

// The full storefront flow: admin stocks the catalogue, a shopper
// builds a cart, places the order, pays, and the webhook confirms it.
func TestStorefrontFlow(t *testing.T) {
	api := newAPITest(t)
	adminToken := api.registerAdmin("admin@glamrent.com")
	shopperToken := api.register("shopper@example.com")

	// Admin creates a category and a dress.
	res := api.do(http.MethodPost, "/api/categories", adminToken, map[string]string{
		"name": "Vestidos de Fiesta",
	})
	require.Equal(t, http.StatusCreated, res.Code)
	var category models.Category
	res.data(t, &category)

	res = api.do(http.MethodPost, "/api/products", adminToken, map[string]any{
		"name":        "Wings of Losie Corset Dress",
		"description": "Elegante vestido con corsé estilo wings",
		"price":       299999,
		"size":        "S/M/L",
		"color":       "Rosa",
		"stock":       10,
		"category_id": category.ID,
	})
	require.Equal(t, http.StatusCreated, res.Code)
	var dress models.Product
	res.data(t, &dress)

	// The catalogue and search are public.
	res = api.do(http.MethodGet, "/api/products", "", nil)
	require.Equal(t, http.StatusOK, res.Code)
	var listing []models.Product
	res.data(t, &listing)
	require.Len(t, listing, 1)

	res = api.do(http.MethodGet, "/api/products/search?q=wings", "", nil)
	require.Equal(t, http.StatusOK, res.Code)
	var found []models.Product
	res.data(t, &found)
	require.Len(t, found, 1)

	// Shopper takes three.
	res = api.do(http.MethodPost, "/api/cart", shopperToken, map[string]any{
		"product_id": dress.ID, "quantity": 3,
	})
	require.Equal(t, http.StatusCreated, res.Code)

	res = api.do(http.MethodPost, "/api/orders", shopperToken, map[string]string{
		"shipping_address": "Calle 10 #4-21, Bogotá",
	})
	require.Equal(t, http.StatusCreated, res.Code)
	var order models.Order
	res.data(t, &order)
	assert.Equal(t, float64(899997), order.Total)
	assert.Equal(t, models.OrderStatusPending, order.Status)

	// Open the intent.
	res = api.do(http.MethodPost, "/api/payment/create-intent", shopperToken, map[string]any{
		"order_id": order.ID,
	})
	require.Equal(t, http.StatusOK, res.Code)
	var intent struct {
		PaymentIntentID string `json:"payment_intent_id"`
		ClientSecret    string `json:"client_secret"`
	}
	res.data(t, &intent)
	require.NotEmpty(t, intent.ClientSecret)

	// The gateway notifies us out of band.
	req, err := http.NewRequest(http.MethodPost, api.srv.URL+"/api/payment/webhook",
		bytes.NewReader([]byte(fmt.Sprintf(
			`{"type":"payment_intent.succeeded","intent_id":%q,"order_id":%d}`,
			intent.PaymentIntentID, order.ID))))
	require.NoError(t, err)
	req.Header.Set("Stripe-Signature", "t=test,v1=valid")
	webhookRes, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	webhookRes.Body.Close()
	require.Equal(t, http.StatusOK, webhookRes.StatusCode)

	// Paid, stock down from 10 to 7, cart empty.
	res = api.do(http.MethodGet, fmt.Sprintf("/api/orders/%d", order.ID), shopperToken, nil)
	require.Equal(t, http.StatusOK, res.Code)
	var paid models.Order
	res.data(t, &paid)
	assert.Equal(t, models.OrderStatusPaid, paid.Status)

	res = api.do(http.MethodGet, fmt.Sprintf("/api/products/%d", dress.ID), "", nil)
	require.Equal(t, http.StatusOK, res.Code)
	var after models.Product
	res.data(t, &after)
	assert.Equal(t, 7, after.Stock)

	res = api.do(http.MethodGet, "/api/cart", shopperToken, nil)
	require.Equal(t, http.StatusOK, res.Code)
	var cart struct {
		Items []json.RawMessage `json:"items"`
		Total float64           `json:"total"`
	}
	res.data(t, &cart)
	assert.Empty(t, cart.Items)

	// The client confirm racing the webhook is a harmless no-op.
	res = api.do(http.MethodPost, fmt.Sprintf("/api/orders/%d/confirm-payment", order.ID),
		shopperToken, map[string]string{"payment_intent_id": intent.PaymentIntentID})
	require.Equal(t, http.StatusOK, res.Code)
	res = api.do(http.MethodGet, fmt.Sprintf("/api/products/%d", dress.ID), "", nil)
	res.data(t, &after)
	assert.Equal(t, 7, after.Stock)

	// Admin sees it all.
	res = api.do(http.MethodGet, "/api/admin/orders?status=paid", adminToken, nil)
	require.Equal(t, http.StatusOK, res.Code)
	var adminOrders []models.Order
	res.data(t, &adminOrders)
	require.Len(t, adminOrders, 1)

	res = api.do(http.MethodPut, fmt.Sprintf("/api/admin/orders/%d/status", order.ID),
		adminToken, map[string]string{"status": "shipped"})
	require.Equal(t, http.StatusOK, res.Code)

	res = api.do(http.MethodGet, "/api/admin/stats", adminToken, nil)
	require.Equal(t, http.StatusOK, res.Code)
	var stats struct {
		TotalOrders int64   `json:"total_orders"`
		Revenue     float64 `json:"revenue"`
	}
	res.data(t, &stats)
	assert.Equal(t, int64(1), stats.TotalOrders)
	assert.Equal(t, float64(899997), stats.Revenue)
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	api := newAPITest(t)

	req, err := http.NewRequest(http.MethodPost, api.srv.URL+"/api/payment/webhook",
		bytes.NewReader([]byte(`{"type":"payment_intent.succeeded","order_id":1}`)))
	require.NoError(t, err)
	req.Header.Set("Stripe-Signature", "t=test,v1=forged")

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}
