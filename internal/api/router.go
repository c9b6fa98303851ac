package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nekogravitycat/shareit-backend/internal/auth"
	bookingHttp "github.com/nekogravitycat/shareit-backend/internal/booking/http"
	fileHttp "github.com/nekogravitycat/shareit-backend/internal/file/http"
	itemHttp "github.com/nekogravitycat/shareit-backend/internal/item/http"
	"github.com/nekogravitycat/shareit-backend/internal/metrics"
	requestHttp "github.com/nekogravitycat/shareit-backend/internal/request/http"
	userHttp "github.com/nekogravitycat/shareit-backend/internal/user/http"
)

// Config holds everything the router needs. Handlers are built by the caller.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	Logger       *zap.Logger

	// Health is called by /healthz. Nil means always healthy.
	Health func(ctx context.Context) error

	JWTManager        *auth.JWTManager
	Denylist          auth.Denylist
	TrustSharerHeader bool
	Users             UserGetter

	UserHandler    *userHttp.UserHandler
	ItemHandler    *itemHttp.Handler
	RequestHandler *requestHttp.Handler
	BookingHandler *bookingHttp.Handler
	FileHandler    *fileHttp.Handler
}

// NewRouter initializes the HTTP router engine.
// It assembles middleware (logging, recovery, CORS, metrics, auth) and registers routes for every module.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()

	// Global Middleware:
	// - RequestLogger: one structured line per request.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(RequestLogger(logger), gin.Recovery())
	r.Use(cors.New(corsConfig(cfg.IsProduction, cfg.ProdOrigins)))
	r.Use(metrics.Middleware())

	r.GET("/metrics", metrics.Handler())
	r.GET("/healthz", healthz(cfg.Health))

	// authMiddleware: Validates the bearer token, or the gateway header when trusted.
	authMiddleware := auth.AuthRequired(auth.MiddlewareConfig{
		JWTManager:        cfg.JWTManager,
		Denylist:          cfg.Denylist,
		TrustSharerHeader: cfg.TrustSharerHeader,
		Logger:            logger,
	})
	// sysAdminMiddleware: Further checks if the authenticated user has System Admin privileges.
	sysAdminMiddleware := RequireSystemAdmin(cfg.Users)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, cfg.UserHandler, authMiddleware, sysAdminMiddleware)
		itemHttp.RegisterRoutes(v1, cfg.ItemHandler, authMiddleware)
		requestHttp.RegisterRoutes(v1, cfg.RequestHandler, authMiddleware)
		bookingHttp.RegisterRoutes(v1, cfg.BookingHandler, authMiddleware)
		fileHttp.RegisterRoutes(v1, cfg.FileHandler, authMiddleware)
	}

	return r
}

func corsConfig(isProduction bool, prodOrigins string) cors.Config {
	config := cors.DefaultConfig()
	if isProduction {
		config.AllowOrigins = splitOrigins(prodOrigins)
	} else {
		config.AllowOrigins = []string{
			"http://localhost:3000",
			"http://localhost:8081", // Swagger
		}
	}
	if len(config.AllowOrigins) == 0 {
		// cors.New panics on an empty origin list.
		config.AllowOrigins = []string{"http://localhost"}
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", auth.SharerHeader}
	config.ExposeHeaders = []string{"X-Total-Count"}
	return config
}

func splitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func healthz(check func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			if err := check(c.Request.Context()); err != nil {
				_ = c.Error(err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
