package api

import (
	"context"
	"database/sql"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/lockerhub/locker-system/docs"
	"github.com/lockerhub/locker-system/internal/api/handler"
	"github.com/lockerhub/locker-system/internal/api/middleware"
	"github.com/lockerhub/locker-system/internal/core/domain"
	"github.com/lockerhub/locker-system/internal/core/ports"
	"github.com/lockerhub/locker-system/internal/core/service"
	mongodb "github.com/lockerhub/locker-system/internal/infrastructure/db/mongo"
	redisdb "github.com/lockerhub/locker-system/internal/infrastructure/db/redis"
	"github.com/lockerhub/locker-system/internal/infrastructure/db/sqlite"
)

// RouterDeps carries the backing stores and settings the router wires
// together.
type RouterDeps struct {
	DB        *sql.DB
	Mongo     *mongo.Database
	Redis     *goredis.Client
	Recorder  ports.ActivityRecorder
	JWTSecret string
	TokenTTL  time.Duration
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("locker"))

	// --- Repositories ---
	userRepo := sqlite.NewUserRepository(deps.DB)
	itemRepo := sqlite.NewItemRepository(deps.DB)
	lockerRepo := sqlite.NewLockerRepository(deps.DB)
	borrowRepo := sqlite.NewBorrowRepository(deps.DB)
	reservationRepo := sqlite.NewReservationRepository(deps.DB)
	paymentRepo := sqlite.NewPaymentRepository(deps.DB)
	activityRepo := mongodb.NewActivityRepository(deps.Mongo)
	revocations := redisdb.NewRevocationList(deps.Redis)

	// --- Services ---
	authService := service.NewAuthService(userRepo, revocations, deps.Recorder, deps.JWTSecret, deps.TokenTTL, deps.Log)
	userService := service.NewUserService(userRepo, deps.Log)
	itemService := service.NewItemService(itemRepo, deps.Log)
	lockerService := service.NewLockerService(lockerRepo, deps.Recorder, deps.Log)
	borrowService := service.NewBorrowService(borrowRepo, deps.Recorder, deps.Log)
	reservationService := service.NewReservationService(reservationRepo, itemRepo, deps.Log)
	paymentService := service.NewPaymentService(paymentRepo, deps.Log)
	adminService := service.NewAdminService(userRepo, itemRepo, lockerRepo, borrowRepo, activityRepo, deps.Log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	itemHandler := handler.NewItemHandler(itemService)
	lockerHandler := handler.NewLockerHandler(lockerService)
	borrowHandler := handler.NewBorrowHandler(borrowService)
	reservationHandler := handler.NewReservationHandler(reservationService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	adminHandler := handler.NewAdminHandler(adminService, activityRepo)

	auth := middleware.Auth(deps.JWTSecret, revocations)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Public routes ---
	e.POST("/api/auth/login", authHandler.Login)
	e.POST("/api/auth/register", authHandler.Register)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler(map[string]handler.Pinger{
		"sqlite": handler.PingerFunc(deps.DB.PingContext),
		"mongo": handler.PingerFunc(func(ctx context.Context) error {
			return deps.Mongo.Client().Ping(ctx, nil)
		}),
		"redis": handler.PingerFunc(func(ctx context.Context) error {
			return deps.Redis.Ping(ctx).Err()
		}),
	})
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)

	// --- Authenticated routes ---
	api := e.Group("/api", auth)

	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/user/profile", authHandler.Profile)

	// User management is admin-only.
	users := api.Group("/users", adminOnly)
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// Items: anyone can browse, only admins mutate.
	api.GET("/items", itemHandler.List)
	api.GET("/items/:id", itemHandler.Get)
	api.POST("/items", itemHandler.Create, adminOnly)
	api.PUT("/items/:id", itemHandler.Update, adminOnly)
	api.DELETE("/items/:id", itemHandler.Delete, adminOnly)

	// Lockers: open/close are for any authenticated user, the rest of the
	// mutations are admin-only.
	api.GET("/lockers", lockerHandler.List)
	api.GET("/lockers/:id", lockerHandler.Get)
	api.POST("/lockers", lockerHandler.Create, adminOnly)
	api.PUT("/lockers/:id", lockerHandler.Update, adminOnly)
	api.DELETE("/lockers/:id", lockerHandler.Delete, adminOnly)
	api.POST("/lockers/:id/open", lockerHandler.Open)
	api.POST("/lockers/:id/close", lockerHandler.Close)

	// Borrows.
	api.GET("/borrows", borrowHandler.List)
	api.POST("/borrows", borrowHandler.Create)
	api.GET("/borrows/:id", borrowHandler.Get)
	api.POST("/borrows/:id/return", borrowHandler.Return)

	// Reservations.
	api.GET("/reservations", reservationHandler.List)
	api.POST("/reservations", reservationHandler.Create)
	api.GET("/reservations/:id", reservationHandler.Get)
	api.PUT("/reservations/:id", reservationHandler.Update)
	api.DELETE("/reservations/:id", reservationHandler.Delete)

	// Payments: users see their own, admins manage.
	api.GET("/payments", paymentHandler.List)
	api.GET("/payments/:id", paymentHandler.Get)
	api.POST("/payments", paymentHandler.Create, adminOnly)
	api.PUT("/payments/:id", paymentHandler.Update, adminOnly)
	api.DELETE("/payments/:id", paymentHandler.Delete, adminOnly)

	// Admin dashboard and exports.
	api.GET("/logs", adminHandler.Logs, adminOnly)
	admin := api.Group("/admin", adminOnly)
	admin.GET("/stats", adminHandler.Stats)
	admin.GET("/active-borrows", adminHandler.ActiveBorrows)
	admin.GET("/recent-activity", adminHandler.RecentActivity)
	admin.GET("/export/:kind", adminHandler.Export)

	return e
}
