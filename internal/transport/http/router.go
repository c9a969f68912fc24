package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/amazoniatrade/marketplace/internal/handlers"
	"github.com/amazoniatrade/marketplace/internal/middleware/auth"
	"github.com/amazoniatrade/marketplace/internal/models"
)

type Deps struct {
	AuthHandler    *handlers.AuthHandler
	ProductHandler *handlers.ProductHandler
	OrderHandler   *handlers.OrderHandler
	SearchHandler  *handlers.SearchHandler
	Auth           *auth.Middleware
	UploadDir      string
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	e.POST("/auth/register", d.AuthHandler.Register)
	e.POST("/auth", d.AuthHandler.Login)

	e.GET("/users/me", d.AuthHandler.Me, d.Auth.Require)
	e.GET("/users/:id", d.AuthHandler.GetUser)

	products := e.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)
	products.POST("", d.ProductHandler.CreateProduct, d.Auth.RequireRole(models.RoleSeller))

	if d.SearchHandler != nil {
		e.GET("/search", d.SearchHandler.Search)
	}

	compras := e.Group("/compras", d.Auth.Require)
	compras.POST("", d.OrderHandler.PlaceOrder)
	compras.GET("/user", d.OrderHandler.ListMine)
	compras.PUT("/:id/confirmar-entrega", d.OrderHandler.ConfirmDelivery)

	e.Static("/uploads", d.UploadDir)
}
