package main

import (
	"net/http"

	"github.com/phrazzld/shop-api/internal/api"
)

// setupRouter creates the handlers from the application services and
// registers every route.
func (app *application) setupRouter() http.Handler {
	return api.NewRouter(api.Handlers{
		Index:    api.NewIndexHandler(app.migrator, app.logger),
		Users:    api.NewUserHandler(app.userService, app.logger),
		Products: api.NewProductHandler(app.productService, app.logger),
		Orders:   api.NewOrderHandler(app.orderService, app.logger),
	}, app.logger)
}
