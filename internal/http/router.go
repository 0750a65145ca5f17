package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/auth"
	"github.com/mrlokans/bookshelf/internal/logging"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = logging.Discard()
	}

	router := gin.New()
	// "/books/" answers like any other unknown path instead of redirecting.
	router.RedirectTrailingSlash = false
	router.Use(RequestLogger(log))
	router.Use(Recovery(log))
	router.Use(auth.SecurityHeadersMiddleware())
	router.Use(auth.StrictTransportSecurityMiddleware())
	router.Use(ErrorHandler(log))

	router.NoRoute(notFound)

	health := NewHealthController(cfg.Datastore, cfg.DatastoreName, cfg.Version)
	router.GET("/", Welcome)
	router.GET("/health", health.Status)

	if cfg.Accounts != nil {
		accounts := NewAccountsController(cfg.Accounts)
		authGroup := router.Group("/auth")
		authGroup.POST("/register", accounts.Register)
		authGroup.POST("/login", accounts.Login)
	}

	// Book routes are never served without the auth gate.
	if cfg.Books != nil && cfg.AuthMiddleware != nil {
		registerBookRoutes(router, NewBooksController(cfg.Books), cfg.AuthMiddleware)
	} else if cfg.Books != nil {
		log.Error("book routes disabled: no auth middleware configured")
	}

	return router
}

func registerBookRoutes(router *gin.Engine, books *BooksController, mw *auth.Middleware) {
	group := router.Group("/books", mw.Handler())

	group.POST("", books.Create)
	group.GET("", books.List)
	group.GET("/:id", books.Get)
	group.PUT("/:id", books.Update)
	group.PATCH("/:id", books.Patch)
	group.DELETE("/:id", books.Delete)
}
