package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/vetlinkpe/vetlink-api/internal/audit"
	"github.com/vetlinkpe/vetlink-api/internal/cart"
	"github.com/vetlinkpe/vetlink-api/internal/config"
	"github.com/vetlinkpe/vetlink-api/internal/handlers"
	infraRepo "github.com/vetlinkpe/vetlink-api/internal/infra/repository"
	"github.com/vetlinkpe/vetlink-api/internal/middleware"
	"github.com/vetlinkpe/vetlink-api/internal/storage"
	"github.com/vetlinkpe/vetlink-api/internal/tenant"
	"github.com/vetlinkpe/vetlink-api/internal/token"
	ucOrder "github.com/vetlinkpe/vetlink-api/internal/usecase/order"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	resolver := tenant.NewResolver(cfg.DefaultTenantSlug)
	tenantCache := tenant.NewCache(db, rdb)
	denylist := token.NewDenylist(rdb)

	orderRepo := infraRepo.NewOrderGormRepository(db)
	cartStore := cart.NewStore()
	uploader := storage.NewS3Uploader(cfg)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES — ORDERS
	// ======================================================
	placeOrderUC := ucOrder.NewPlaceOrder(orderRepo, auditDispatcher)
	markReadyUC := ucOrder.NewMarkOrderReady(orderRepo, auditDispatcher)
	markPickedUpUC := ucOrder.NewMarkOrderPickedUp(orderRepo, auditDispatcher)
	cancelOrderUC := ucOrder.NewCancelOrder(orderRepo, auditDispatcher)
	expireOrdersUC := ucOrder.NewExpireOverdueOrders(orderRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, denylist)
	clientAuthHandler := handlers.NewClientAuthHandler(db, cfg)

	tenantHandler := handlers.NewTenantHandler(db, tenantCache)
	staffHandler := handlers.NewStaffHandler(db, auditDispatcher)
	serviceHandler := handlers.NewServiceHandler(db, auditDispatcher)

	categoryHandler := handlers.NewCategoryAdminHandler(db, auditDispatcher)
	productHandler := handlers.NewProductAdminHandler(db, auditDispatcher, uploader)

	storeHandler := handlers.NewStoreHandler(db)
	cartHandler := handlers.NewCartHandler(db, cartStore)

	orderHandler := handlers.NewOrderHandler(
		orderRepo,
		cartStore,
		placeOrderUC,
		markReadyUC,
		markPickedUpUC,
		cancelOrderUC,
		expireOrdersUC,
	)

	appointmentHandler := handlers.NewAppointmentHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// GUARDS
	// ======================================================
	staffGuard := middleware.StaffAuthMiddleware(cfg, denylist)
	clientGuard := middleware.ClientAuthMiddleware(cfg, denylist)

	// ======================================================
	// API (JSON) — every route is tenant-scoped by hostname
	// ======================================================
	api := r.Group("/api")
	api.Use(tenant.Middleware(resolver, tenantCache))
	{
		// ------------------------------
		// TENANT PROFILE
		// ------------------------------
		api.GET("/tenants/profile", tenantHandler.GetProfile)
		api.PUT("/tenants/:tenantRef", staffGuard, middleware.RequireAdmin(), tenantHandler.UpdateProfile)

		// ------------------------------
		// STAFF & SERVICES (numeric tenant id in the path)
		// ------------------------------
		tenantScoped := api.Group("/tenants/:tenantRef")
		tenantScoped.Use(staffGuard)
		{
			tenantScoped.GET("/staff", staffHandler.List)
			tenantScoped.POST("/staff", middleware.RequireAdmin(), staffHandler.Create)
			tenantScoped.PUT("/staff/:id", middleware.RequireAdmin(), staffHandler.Update)
			tenantScoped.DELETE("/staff/:id", middleware.RequireAdmin(), staffHandler.Delete)

			tenantScoped.GET("/services", serviceHandler.List)
			tenantScoped.POST("/services", serviceHandler.Create)
			tenantScoped.PUT("/services/:id", serviceHandler.Update)
			tenantScoped.DELETE("/services/:id", serviceHandler.Delete)
		}

		// ------------------------------
		// AUTH — STAFF
		// ------------------------------
		api.POST("/auth/admin/login", authHandler.Login)
		api.POST("/auth/admin/logout", authHandler.Logout)
		api.GET("/auth/admin/me", staffGuard, authHandler.Me)

		// ------------------------------
		// AUTH — CLIENTS
		// ------------------------------
		api.POST("/client/auth/register", clientAuthHandler.Register)
		api.POST("/client/auth/login", clientAuthHandler.Login)
		api.GET("/client/auth/me", clientGuard, clientAuthHandler.Me)

		// ------------------------------
		// PUBLIC STOREFRONT
		// ------------------------------
		api.GET("/store/categories", storeHandler.ListCategories)
		api.GET("/store/products", storeHandler.ListProducts)
		api.POST("/appointments", appointmentHandler.Create)

		// ------------------------------
		// CART (client session)
		// ------------------------------
		cartAPI := api.Group("/cart")
		cartAPI.Use(clientGuard)
		{
			cartAPI.GET("", cartHandler.Get)
			cartAPI.POST("", cartHandler.Add)
			cartAPI.DELETE("", cartHandler.Clear)
			cartAPI.PUT("/items/:productId", cartHandler.SetQuantity)
			cartAPI.DELETE("/items/:productId", cartHandler.Remove)
		}

		// ------------------------------
		// ORDERS (client session)
		// ------------------------------
		api.POST("/orders", clientGuard, orderHandler.Place)
		api.GET("/orders/my-orders", clientGuard, orderHandler.MyOrders)

		// ------------------------------
		// ADMIN CONSOLE (staff session)
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(staffGuard)
		{
			admin.GET("/categories", categoryHandler.List)
			admin.POST("/categories", categoryHandler.Create)
			admin.PUT("/categories/:id", categoryHandler.Update)
			admin.PUT("/categories/:id/activate", categoryHandler.Activate)
			admin.PUT("/categories/:id/deactivate", categoryHandler.Deactivate)

			admin.GET("/products", productHandler.List)
			admin.POST("/products", productHandler.Create)
			admin.PUT("/products/:id", productHandler.Update)
			admin.PUT("/products/:id/activate", productHandler.Activate)
			admin.PUT("/products/:id/deactivate", productHandler.Deactivate)

			admin.GET("/orders", orderHandler.AdminList)
			admin.PUT("/orders/:id/ready", orderHandler.MarkReady)
			admin.PUT("/orders/:id/picked-up", orderHandler.MarkPickedUp)
			admin.PUT("/orders/:id/cancel", orderHandler.Cancel)

			admin.GET("/appointments", appointmentHandler.AdminList)

			admin.GET("/audit-logs", middleware.RequireAdmin(), auditLogsHandler.List)
		}
	}
}
