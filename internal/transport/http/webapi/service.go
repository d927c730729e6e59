// Package webapi exposes the application's JSON API: authentication,
// the store/product catalog, shopping lists, dashboard figures and the
// admin surface. Route protection follows the navigation guard's
// decisions.
package webapi

import (
	"context"

	"github.com/gin-gonic/gin"

	"shopwise-server/internal/domain/access"
	"shopwise-server/internal/domain/activity"
	"shopwise-server/internal/domain/catalog"
	"shopwise-server/internal/domain/directory"
	"shopwise-server/internal/domain/lists"
	"shopwise-server/internal/domain/session"
	"shopwise-server/internal/platform/config"
	"shopwise-server/internal/platform/logging"
)

// Service registers and serves the web API routes.
type Service struct {
	cfg      *config.Config
	logger   *logging.Logger
	sessions *session.Manager
	guard    *access.Guard
	users    *directory.Directory
	catalog  *catalog.Catalog
	lists    *lists.Service
	activity *activity.Recorder
}

// Options carries the dependencies for NewService.
type Options struct {
	Config    *config.Config
	Logger    *logging.Logger
	Sessions  *session.Manager
	Guard     *access.Guard
	Directory *directory.Directory
	Catalog   *catalog.Catalog
	Lists     *lists.Service
	Activity  *activity.Recorder
}

// NewService constructs the web API service.
func NewService(opts Options) *Service {
	return &Service{
		cfg:      opts.Config,
		logger:   opts.Logger,
		sessions: opts.Sessions,
		guard:    opts.Guard,
		users:    opts.Directory,
		catalog:  opts.Catalog,
		lists:    opts.Lists,
		activity: opts.Activity,
	}
}

// Start registers all routes on the API group.
func (s *Service) Start(ctx context.Context, engine *gin.Engine, apiGroup *gin.RouterGroup) error {
	_ = ctx
	_ = engine

	auth := apiGroup.Group("/auth")
	auth.POST("/login", s.handleLogin)
	auth.POST("/register", s.handleRegister)
	auth.POST("/logout", s.handleLogout)
	auth.GET("/session", s.handleSession)
	auth.GET("/guard", s.handleGuard)

	// signed-in surface
	secured := apiGroup.Group("")
	secured.Use(s.requireAuth())
	secured.GET("/pricing", s.handlePricing)
	secured.GET("/stores", s.handleStores)
	secured.GET("/stores/:id", s.handleStore)
	secured.GET("/products", s.handleProducts)
	secured.GET("/categories", s.handleCategories)
	secured.GET("/dashboard", s.handleDashboard)
	secured.GET("/lists", s.handleLists)
	secured.POST("/lists", s.handleCreateList)
	secured.GET("/lists/:id", s.handleList)
	secured.PUT("/lists/:id", s.handleRenameList)
	secured.DELETE("/lists/:id", s.handleDeleteList)
	secured.POST("/lists/:id/items", s.handleAddItem)
	secured.PATCH("/lists/:id/items/:itemID", s.handleToggleItem)
	secured.DELETE("/lists/:id/items/:itemID", s.handleRemoveItem)

	// admin surface
	admin := apiGroup.Group("/admin")
	admin.Use(s.requireAdmin())
	admin.GET("/users", s.handleAdminUsers)
	admin.POST("/users", s.handleAdminCreateUser)
	admin.PUT("/users/:id", s.handleAdminUpdateUser)
	admin.DELETE("/users/:id", s.handleAdminDeleteUser)
	admin.GET("/products", s.handleAdminProducts)
	admin.POST("/products", s.handleAdminCreateProduct)
	admin.PUT("/products/:id", s.handleAdminUpdateProduct)
	admin.DELETE("/products/:id", s.handleAdminDeleteProduct)
	admin.GET("/stats", s.handleAdminStats)
	admin.GET("/activity", s.handleAdminActivity)

	s.logger.InfoTag("WEBAPI", "route registration complete")
	return nil
}
