package app

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/nekogravitycat/shareit-backend/internal/api"
	"github.com/nekogravitycat/shareit-backend/internal/auth"
	"github.com/nekogravitycat/shareit-backend/internal/booking"
	bookingHttp "github.com/nekogravitycat/shareit-backend/internal/booking/http"
	"github.com/nekogravitycat/shareit-backend/internal/db"
	"github.com/nekogravitycat/shareit-backend/internal/file"
	fileHttp "github.com/nekogravitycat/shareit-backend/internal/file/http"
	"github.com/nekogravitycat/shareit-backend/internal/item"
	itemHttp "github.com/nekogravitycat/shareit-backend/internal/item/http"
	"github.com/nekogravitycat/shareit-backend/internal/metrics"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/storage"
	"github.com/nekogravitycat/shareit-backend/internal/request"
	requestHttp "github.com/nekogravitycat/shareit-backend/internal/request/http"
	"github.com/nekogravitycat/shareit-backend/internal/user"
	userHttp "github.com/nekogravitycat/shareit-backend/internal/user/http"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction      bool
	ProdOrigins       string
	Logger            *zap.Logger
	DBPool            *pgxpool.Pool
	Redis             *redis.Client // optional
	Storage           storage.Storage
	JWTSecret         string
	JWTTTL            time.Duration
	BcryptCost        int
	TrustSharerHeader bool
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router         *gin.Engine
	JWTManager     *auth.JWTManager
	UserService    user.Service
	ItemService    item.Service
	RequestService request.Service
	BookingService booking.Service
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics.Register()

	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasher(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	var denylist auth.Denylist
	if cfg.Redis != nil {
		denylist = auth.NewRedisDenylist(cfg.Redis)
	}

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher, logger.Named("user"))

	// File Module
	fileRepo := file.NewRepository(cfg.DBPool)
	fileService := file.NewService(fileRepo, cfg.Storage, logger.Named("file"))

	// Booking store is shared: items read last/next bookings from it.
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)

	// Item Module
	requestRepo := request.NewPgxRepository(cfg.DBPool)
	itemRepo := item.NewPgxRepository(cfg.DBPool)
	itemService := item.NewService(itemRepo, userService, requestRepo, booking.NewItemNeighbors(bookingRepo), logger.Named("item"))

	// Booking Module
	bookingService := booking.NewService(bookingRepo, userService, itemService, logger.Named("booking"))

	// Request Module
	requestService := request.NewService(requestRepo, userService, itemService, logger.Named("request"))

	// Handlers
	fileHandler := fileHttp.NewHandler(fileService, logger.Named("file"))

	routerParams := api.Config{
		IsProduction: cfg.IsProduction,
		ProdOrigins:  cfg.ProdOrigins,
		Logger:       logger.Named("http"),
		Health: func(ctx context.Context) error {
			return db.Ping(ctx, cfg.DBPool)
		},
		JWTManager:        jwtManager,
		Denylist:          denylist,
		TrustSharerHeader: cfg.TrustSharerHeader,
		Users:             userService,
		UserHandler:       userHttp.NewHandler(userService, jwtManager, denylist, logger.Named("user")),
		ItemHandler:       itemHttp.NewHandler(itemService, fileHandler),
		RequestHandler:    requestHttp.NewHandler(requestService),
		BookingHandler:    bookingHttp.NewHandler(bookingService),
		FileHandler:       fileHandler,
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:         router,
		JWTManager:     jwtManager,
		UserService:    userService,
		ItemService:    itemService,
		RequestService: requestService,
		BookingService: bookingService,
	}
}
