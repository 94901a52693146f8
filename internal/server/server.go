// Package server wires configuration, storage and the HTTP surface into
// a runnable application.
package server

import (
	"fmt"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/766ms/Glam-rent-v1/app/controllers"
	"github.com/766ms/Glam-rent-v1/app/repositories"
	"github.com/766ms/Glam-rent-v1/app/routes"
	"github.com/766ms/Glam-rent-v1/app/services"
	"github.com/766ms/Glam-rent-v1/config"
	"github.com/766ms/Glam-rent-v1/internal/payment"
	"github.com/766ms/Glam-rent-v1/pkg/cache"
	"github.com/766ms/Glam-rent-v1/pkg/database"
	"github.com/766ms/Glam-rent-v1/pkg/logger"
	"github.com/766ms/Glam-rent-v1/pkg/router"
	"github.com/766ms/Glam-rent-v1/pkg/storage"
)

// App holds every constructed dependency. Tests build one against an
// in-memory database and fake gateway.
type App struct {
	DB       *gorm.DB
	Router   *router.Router
	Checkout *services.CheckoutService
	Auth     *services.AuthService
	Catalog  *services.CatalogService
	Cart     *services.CartService
}

// Build constructs the application graph from the given dependencies.
func Build(db *gorm.DB, store *cache.Store, files *storage.Manager, gateway payment.Gateway) *App {
	users := repositories.NewUserRepository(db)
	products := repositories.NewProductRepository(db)
	carts := repositories.NewCartRepository(db)
	orders := repositories.NewOrderRepository(db)

	auth := services.NewAuthService(users)
	catalog := services.NewCatalogService(products, store)
	cart := services.NewCartService(carts, products)
	checkout := services.NewCheckoutService(orders, carts, gateway, config.StrictStock())

	r := router.New()
	routes.RegisterAPI(r, routes.Controllers{
		Auth:     controllers.NewAuthController(auth),
		Product:  controllers.NewProductController(catalog),
		Category: controllers.NewCategoryController(catalog),
		Cart:     controllers.NewCartController(cart),
		Order:    controllers.NewOrderController(checkout),
		Payment:  controllers.NewPaymentController(checkout),
		Admin:    controllers.NewAdminController(files),
		Identity: auth,
	})

	return &App{
		DB:       db,
		Router:   r,
		Checkout: checkout,
		Auth:     auth,
		Catalog:  catalog,
		Cart:     cart,
	}
}

// Start boots the application against the configured environment and
// serves HTTP until the listener fails.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	db, err := database.Connect()
	if err != nil {
		return fmt.Errorf("server: database: %w", err)
	}

	store, err := cache.Connect()
	if err != nil {
		// The catalogue works uncached; log and keep going.
		logger.Warn("cache unavailable, continuing without it", "error", err)
	}

	files := storage.Connect()

	gateway := payment.NewStripeGateway(
		config.StripeSecretKey(),
		config.StripePublishableKey(),
		config.StripeWebhookSecret(),
		config.Currency(),
	)

	app := Build(db, store, files, gateway)

	addr := ":" + config.AppPort()
	srv := &http.Server{
		Addr:              addr,
		Handler:           app.Router.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("glamrent listening", "addr", addr, "env", config.AppEnv())
	fmt.Printf("Glam Rent running on %s\n", addr)
	return srv.ListenAndServe()
}
