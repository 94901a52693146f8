package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/766ms/Glam-rent-v1/pkg/router"
)

func ok(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func TestNamedRoutes(t *testing.T) {
	r := router.New()
	r.Get("/products", "products.list", ok)
	r.Get("/products/{id}", "products.get", ok)

	path, found := r.Path("products.list")
	if !found || path != "/products" {
		t.Errorf("expected /products, got %q (found=%v)", path, found)
	}

	url, err := r.URL("products.get", map[string]string{"id": "42"})
	if err != nil {
		t.Fatalf("URL: %v", err)
	}
	if url != "/products/42" {
		t.Errorf("expected /products/42, got %q", url)
	}

	if _, err := r.URL("does.not.exist", nil); err == nil {
		t.Error("expected error for unknown route name")
	}
}

func TestGroupPrefixes(t *testing.T) {
	r := router.New()
	api := r.Group("/api")
	admin := api.Group("/admin")
	admin.Get("/stats", "admin.stats", ok)

	path, found := r.Path("admin.stats")
	if !found || path != "/api/admin/stats" {
		t.Errorf("expected /api/admin/stats, got %q (found=%v)", path, found)
	}

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	res, err := http.Get(srv.URL + "/api/admin/stats")
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", res.StatusCode)
	}
}

func TestGroupMiddleware(t *testing.T) {
	var order []string
	mw := func(tag string) router.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, tag)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := router.New()
	g := r.Group("/api", mw("group"))
	g.Get("/ping", "ping", ok, mw("route"))

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	res, err := http.Get(srv.URL + "/api/ping")
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()

	if len(order) != 2 || order[0] != "group" || order[1] != "route" {
		t.Errorf("expected [group route], got %v", order)
	}
}

func TestRoutesListing(t *testing.T) {
	r := router.New()
	r.Get("/a", "a", ok)
	r.Post("/b", "b", ok)

	infos := r.Routes()
	if len(infos) != 2 {
		t.Fatalf("expected 2 routes, got %d", len(infos))
	}
}
