package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	apiMiddleware "github.com/phrazzld/shop-api/internal/api/middleware"
)

// Handlers groups the handlers served by NewRouter.
type Handlers struct {
	Index    *IndexHandler
	Users    *UserHandler
	Products *ProductHandler
	Orders   *OrderHandler
}

// NewRouter builds the chi router with the middleware chain and every route.
// IDs in paths are digits only; anything else falls through to a 404.
func NewRouter(h Handlers, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(logger))
	r.Use(apiMiddleware.Recoverer)

	r.NotFound(NotFound)
	r.MethodNotAllowed(MethodNotAllowed)

	r.Get("/", h.Index.Index)
	r.Get("/create-tables", h.Index.CreateTables)

	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.Users.ListUsers)
		r.Post("/", h.Users.CreateUser)
		r.Get("/{id:[0-9]+}", h.Users.GetUser)
		r.Put("/{id:[0-9]+}", h.Users.UpdateUser)
		r.Delete("/{id:[0-9]+}", h.Users.DeleteUser)
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.Products.ListProducts)
		r.Post("/", h.Products.CreateProduct)
		r.Get("/{id:[0-9]+}", h.Products.GetProduct)
		r.Put("/{id:[0-9]+}", h.Products.UpdateProduct)
		r.Delete("/{id:[0-9]+}", h.Products.DeleteProduct)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.Orders.CreateOrder)
		r.Put("/{order_id:[0-9]+}/add_product/{product_id:[0-9]+}", h.Orders.AddProduct)
		r.Delete("/{order_id:[0-9]+}/remove_product/{product_id:[0-9]+}", h.Orders.RemoveProduct)
		r.Get("/user/{user_id:[0-9]+}", h.Orders.ListOrdersByUser)
		r.Get("/{order_id:[0-9]+}/products", h.Orders.ListOrderProducts)
	})

	return r
}
