package router

import (
	"time"

	"github.com/Sabogal22/Sistema-de-inventario/internal/config"
	"github.com/Sabogal22/Sistema-de-inventario/internal/handler"
	"github.com/Sabogal22/Sistema-de-inventario/internal/infra"
	"github.com/Sabogal22/Sistema-de-inventario/internal/middleware"
	"github.com/Sabogal22/Sistema-de-inventario/internal/model"
	"github.com/Sabogal22/Sistema-de-inventario/internal/repository"
	"github.com/Sabogal22/Sistema-de-inventario/internal/service"
	"github.com/Sabogal22/Sistema-de-inventario/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler <- Service <- Repository <- DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, mailer *infra.Mailer) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// Repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	statusRepo := repository.NewStatusRepository(db)
	itemRepo := repository.NewItemRepository(db)
	historyRepo := repository.NewStockHistoryRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	// Worker dispatcher, injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// Services
	authSvc := service.NewAuthService(userRepo, cfg)
	catalogSvc := service.NewCatalogService(categoryRepo, locationRepo, statusRepo)
	notifSvc := service.NewNotificationService(notifRepo, userRepo, dispatcher)
	stockSvc := service.NewStockService(itemRepo, historyRepo, notifSvc)
	itemSvc := service.NewItemService(itemRepo, categoryRepo, locationRepo, statusRepo, userRepo, historyRepo, notifRepo)
	dashboardSvc := service.NewDashboardService(itemRepo)

	// Handlers
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	catalogH := handler.NewCatalogHandler(catalogSvc)
	itemsH := handler.NewItemsHandler(itemSvc, stockSvc, dashboardSvc, cfg.ImageStoragePath)
	notifsH := handler.NewNotificationsHandler(notifSvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc, itemRepo, cfg.ImageStoragePath)

	// Public
	r.GET("/health", handler.Health(db, rdb, mailer))
	r.POST("/api/token/", middleware.LoginRateLimiter(), authH.Token)
	r.POST("/api/token/refresh/", authH.Refresh)

	// Everything else requires a valid token
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	adminOnly := middleware.RequireRole(model.RoleAdmin)
	anyRole := middleware.RequireRole(model.RoleAdmin, model.RoleIntern)

	api := r.Group("", jwtMW)
	{
		// Catalogs: reads open to both roles, writes admin only
		api.GET("/category/all/", anyRole, catalogH.ListCategories)
		api.POST("/category/create/", adminOnly, catalogH.CreateCategory)
		api.PUT("/category/:id/update/", adminOnly, catalogH.UpdateCategory)
		api.DELETE("/category/:id/delete/", adminOnly, catalogH.DeleteCategory)

		api.GET("/location/all/", anyRole, catalogH.ListLocations)
		api.POST("/location/create/", adminOnly, catalogH.CreateLocation)
		api.PUT("/location/:id/update/", adminOnly, catalogH.UpdateLocation)
		api.DELETE("/location/:id/delete/", adminOnly, catalogH.DeleteLocation)

		api.GET("/status/all/", anyRole, catalogH.ListStatuses)

		api.GET("/user/", anyRole, authH.Me)

		users := api.Group("/users", adminOnly)
		{
			users.GET("/all/", usersH.List)
			users.POST("/create/", usersH.Create)
			users.PUT("/:id/update/", usersH.Update)
			users.DELETE("/:id/delete/", usersH.Delete)
		}

		// Items: reads and stock mutation for both roles (interns operate
		// stock day-to-day), catalog writes admin only
		api.GET("/items/all/", anyRole, itemsH.List)
		api.GET("/items/search/", anyRole, itemsH.Search)
		api.POST("/items/create/", adminOnly, itemsH.Create)
		api.PATCH("/items/update/:id/", adminOnly, itemsH.Update)
		api.DELETE("/items/delete/:id/", adminOnly, itemsH.Delete)
		api.POST("/items/:id/update-stock/", anyRole, itemsH.UpdateStock)
		api.GET("/items/:id/stock-history/", anyRole, itemsH.StockHistory)
		api.GET("/items/:id/", anyRole, itemsH.Get)

		api.GET("/dashboard/summary/", anyRole, dashboardH.Summary)
		api.GET("/dashboard/report/", adminOnly, dashboardH.Report)

		notifs := api.Group("/notifications", anyRole)
		{
			notifs.GET("/", notifsH.List)
			notifs.POST("/mark-all/", notifsH.MarkAll)
			notifs.POST("/mark/:id/", notifsH.Mark)
			notifs.DELETE("/delete/:id/", notifsH.Delete)
			notifs.POST("/send/", adminOnly, notifsH.Send)
		}
	}

	// Swagger UI, only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
