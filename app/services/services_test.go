package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/766ms/Glam-rent-v1/app/models"
	"github.com/766ms/Glam-rent-v1/app/repositories"
	"github.com/766ms/Glam-rent-v1/internal/payment"
	"github.com/766ms/Glam-rent-v1/pkg/apperr"
	"github.com/766ms/Glam-rent-v1/pkg/cache"
	"github.com/766ms/Glam-rent-v1/pkg/database"
)

// newTestDB opens a private in-memory database. The shared-cache DSN
// keeps every pooled connection on the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := database.Open("sqlite", dsn)
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

type testEnv struct {
	db       *gorm.DB
	gateway  *fakeGateway
	auth     *AuthService
	catalog  *CatalogService
	cart     *CartService
	checkout *CheckoutService
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvStrict(t, false)
}

func newTestEnvStrict(t *testing.T, strictStock bool) *testEnv {
	t.Helper()
	db := newTestDB(t)

	users := repositories.NewUserRepository(db)
	products := repositories.NewProductRepository(db)
	carts := repositories.NewCartRepository(db)
	orders := repositories.NewOrderRepository(db)
	gw := newFakeGateway()

	return &testEnv{
		db:       db,
		gateway:  gw,
		auth:     NewAuthService(users),
		catalog:  NewCatalogService(products, cache.Disabled()),
		cart:     NewCartService(carts, products),
		checkout: NewCheckoutService(orders, carts, gw, strictStock),
	}
}

func (e *testEnv) createUser(t *testing.T, email string) models.User {
	t.Helper()
	user, _, err := e.auth.Register("Test User", email, "s3cret-password")
	require.NoError(t, err)
	return user
}

func (e *testEnv) createProduct(t *testing.T, name string, price float64, stock int) models.Product {
	t.Helper()
	p := models.Product{Name: name, Price: price, Stock: stock, Size: "S/M/L", Color: "Rosa"}
	require.NoError(t, e.db.Create(&p).Error)
	return p
}

func (e *testEnv) stockOf(t *testing.T, productID uint) int {
	t.Helper()
	var p models.Product
	require.NoError(t, e.db.First(&p, productID).Error)
	return p.Stock
}

func (e *testEnv) cartCount(t *testing.T, userID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(&models.CartItem{}).Where("user_id = ?", userID).Count(&n).Error)
	return n
}

// fakeGateway is an in-memory payment.Gateway. Intents start
// unconfirmed; tests flip them with succeed().
type fakeGateway struct {
	intents map[string]payment.Intent
	seq     int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{intents: map[string]payment.Intent{}}
}

func (g *fakeGateway) PublishableKey() string { return "pk_test_fake" }

func (g *fakeGateway) CreateIntent(_ context.Context, order *models.Order) (payment.Intent, error) {
	g.seq++
	in := payment.Intent{
		ID:           fmt.Sprintf("pi_fake_%d", g.seq),
		ClientSecret: fmt.Sprintf("pi_fake_%d_secret", g.seq),
		Status:       "requires_payment_method",
		OrderID:      order.ID,
	}
	g.intents[in.ID] = in
	return in, nil
}

func (g *fakeGateway) RetrieveIntent(_ context.Context, intentID string) (payment.Intent, error) {
	in, ok := g.intents[intentID]
	if !ok {
		return payment.Intent{}, apperr.New(apperr.Gateway, "Payment provider rejected the request")
	}
	return in, nil
}

func (g *fakeGateway) ParseWebhook(payload []byte, signature string) (payment.WebhookEvent, error) {
	return payment.WebhookEvent{}, apperr.New(apperr.Validation, "Invalid webhook signature")
}

func (g *fakeGateway) succeed(intentID string) {
	in := g.intents[intentID]
	in.Status = "succeeded"
	g.intents[intentID] = in
}
