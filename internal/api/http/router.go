package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tiffin-service/internal/api/http/handlers"
	"github.com/spec-kit/tiffin-service/internal/auth"
	"github.com/spec-kit/tiffin-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Catalog        *handlers.CatalogHandler
	Subscriptions  *handlers.SubscriptionsHandler
	Orders         *handlers.OrdersHandler
	Admin          *handlers.AdminHandler
	Guard          *GuardMiddleware
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Public paths carry no guard; every
// role namespace is wrapped in the navigation guard followed by token
// authentication, mirroring how the front end walks the same policy.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/vendor-register", cfg.Auth.RegisterVendor)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)

	// Public catalog pages.
	app.Get("/restaurants", cfg.Catalog.ListVendors)
	app.Get("/restaurants/:id", cfg.Catalog.GetVendor)
	app.Get("/packages", cfg.Catalog.ListPackages)

	// Customer namespace plus the shared checkout flow.
	userGroup := app.Group("/user", cfg.Guard.Handle, cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleUser))
	userGroup.Get("/subscriptions", cfg.Subscriptions.List)
	userGroup.Patch("/subscriptions/:id", cfg.Subscriptions.SetStatus)
	userGroup.Get("/orders", cfg.Orders.List)

	checkout := app.Group("/checkout", cfg.Guard.Handle, cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleUser))
	checkout.Post("/", cfg.Subscriptions.Create)

	vendorGroup := app.Group("/vendor", cfg.Guard.Handle, cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleVendor))
	vendorGroup.Get("/dashboard", cfg.Catalog.VendorDashboard)
	vendorGroup.Post("/packages", cfg.Catalog.CreatePackage)
	vendorGroup.Put("/packages/:id", cfg.Catalog.UpdatePackage)
	vendorGroup.Get("/orders", cfg.Orders.List)

	deliveryGroup := app.Group("/delivery", cfg.Guard.Handle, cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleDelivery))
	deliveryGroup.Get("/routes", cfg.Orders.List)
	deliveryGroup.Post("/orders/:id/delivered", cfg.Orders.MarkDelivered)

	adminGroup := app.Group("/admin", cfg.Guard.Handle, cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin))
	adminGroup.Get("/orders", cfg.Orders.List)
	adminGroup.Get("/analytics", cfg.Orders.Analytics)
	adminGroup.Get("/customers", cfg.Admin.ListCustomers)
	adminGroup.Get("/delivery-partners", cfg.Admin.ListDeliveryPartners)
	adminGroup.Post("/orders/:id/assign", cfg.Orders.Assign)
	adminGroup.Patch("/vendors/:id", cfg.Admin.SetVendorStatus)
	adminGroup.Patch("/accounts/:id", cfg.Admin.SetAccountStatus)
}
