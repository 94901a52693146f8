package routes

import (
	"net/http"
	"time"

	"github.com/766ms/Glam-rent-v1/app/controllers"
	"github.com/766ms/Glam-rent-v1/pkg/metrics"
	"github.com/766ms/Glam-rent-v1/pkg/middleware"
	"github.com/766ms/Glam-rent-v1/pkg/reqid"
	"github.com/766ms/Glam-rent-v1/pkg/response"
	"github.com/766ms/Glam-rent-v1/pkg/router"
)

// Controllers bundles every handler the API mounts.
type Controllers struct {
	Auth     *controllers.AuthController
	Product  *controllers.ProductController
	Category *controllers.CategoryController
	Cart     *controllers.CartController
	Order    *controllers.OrderController
	Payment  *controllers.PaymentController
	Admin    *controllers.AdminController

	// Identity resolves bearer tokens for the protected groups.
	Identity middleware.IdentityResolver
}

// RegisterAPI mounts the full route table.
func RegisterAPI(r *router.Router, c Controllers) {
	r.Use(
		metrics.Middleware(),
		reqid.Middleware(),
		middleware.Recovery,
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
	)

	r.Get("/api/health", "health", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})
	r.Handle(http.MethodGet, "/metrics", "metrics", metrics.Handler())

	api := r.Group("/api")

	// Credential endpoints carry a per-IP rate limit.
	loginLimit := middleware.RateLimit(10, time.Minute)
	api.Post("/register", "auth.register", c.Auth.Register, loginLimit)
	api.Post("/login", "auth.login", c.Auth.Login, loginLimit)

	// Public catalogue.
	api.Get("/products", "products.list", c.Product.List)
	api.Get("/products/search", "products.search", c.Product.Search)
	api.Get("/products/{id}", "products.get", c.Product.Get)
	api.Get("/categories", "categories.list", c.Category.List)

	// Gateway surface that needs no session: the browser key and the
	// signed webhook.
	api.Get("/payment/config", "payment.config", c.Payment.Config)
	api.Post("/payment/webhook", "payment.webhook", c.Payment.Webhook)

	// Everything below needs a bearer token.
	authed := api.Group("", middleware.Authenticate(c.Identity))

	authed.Get("/cart", "cart.list", c.Cart.List)
	authed.Post("/cart", "cart.add", c.Cart.Add)
	authed.Put("/cart/{id}", "cart.update", c.Cart.Update)
	authed.Delete("/cart/{id}", "cart.remove", c.Cart.Remove)
	authed.Delete("/cart", "cart.clear", c.Cart.Clear)

	authed.Post("/orders", "orders.create", c.Order.Create)
	authed.Get("/orders", "orders.list", c.Order.List)
	authed.Get("/orders/{id}", "orders.get", c.Order.Get)
	authed.Post("/payment/create-intent", "payment.create_intent", c.Payment.CreateIntent)
	authed.Post("/orders/{id}/confirm-payment", "payment.confirm", c.Payment.Confirm)

	// Back office.
	admin := authed.Group("", middleware.RequireAdmin)

	admin.Post("/products", "admin.products.create", c.Product.Create)
	admin.Post("/categories", "admin.categories.create", c.Category.Create)

	admin.Post("/admin/products", "admin.products.create_alias", c.Product.Create)
	admin.Put("/admin/products/{id}", "admin.products.update", c.Product.Update)
	admin.Delete("/admin/products/{id}", "admin.products.delete", c.Product.Delete)
	admin.Post("/admin/upload-image", "admin.upload_image", c.Admin.UploadImage)
	admin.Get("/admin/orders", "admin.orders.list", c.Order.ListAll)
	admin.Put("/admin/orders/{id}/status", "admin.orders.status", c.Order.SetStatus)
	admin.Get("/admin/stats", "admin.stats", c.Order.Stats)
}
