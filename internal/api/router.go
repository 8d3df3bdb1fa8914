package api

import (
	"context"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/teamorders/orderdesk/internal/api/handler"
	"github.com/teamorders/orderdesk/internal/api/middleware"
	"github.com/teamorders/orderdesk/internal/core/domain"
	"github.com/teamorders/orderdesk/internal/core/ports"
	"github.com/teamorders/orderdesk/internal/core/service"
	"github.com/teamorders/orderdesk/internal/infrastructure/config"
	redisdb "github.com/teamorders/orderdesk/internal/infrastructure/db/redis"
	"github.com/teamorders/orderdesk/internal/infrastructure/db/sheets"
)

// NewRouter opens every table (reconciling headers once at startup), wires
// repositories, services, and handlers, seeds the users table if it is
// empty, and returns the Echo instance with all routes registered.
func NewRouter(ctx context.Context, cfg *config.Config, log zerolog.Logger, doc ports.Spreadsheet, rdb *redis.Client) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("orderdesk"))

	// --- Tables ---
	cache := redisdb.NewSnapshotStore(rdb, cfg.Sheets.CacheTTL)
	open := func(schema sheets.Schema) (*sheets.Table, error) {
		return sheets.OpenTable(ctx, doc, schema, cfg.Sheets.FixHeaders, cache, log)
	}

	ordersTable, err := open(sheets.OrdersSchema)
	if err != nil {
		return nil, err
	}
	clientsTable, err := open(sheets.ClientsSchema)
	if err != nil {
		return nil, err
	}
	usersTable, err := open(sheets.UsersSchema)
	if err != nil {
		return nil, err
	}
	presetsTable, err := open(sheets.PresetsSchema)
	if err != nil {
		return nil, err
	}
	auditTable, err := open(sheets.AuditSchema)
	if err != nil {
		return nil, err
	}

	// --- Repositories and services ---
	orderRepo := sheets.NewOrderRepository(ordersTable)
	clientRepo := sheets.NewClientRepository(clientsTable)
	userRepo := sheets.NewUserRepository(usersTable)
	presetRepo := sheets.NewPresetRepository(presetsTable)
	auditRepo := sheets.NewAuditRepository(auditTable)

	audit := service.NewAuditLog(auditRepo, log)
	tokens := service.NewTokenService(cfg.SessionSecret, cfg.SessionTTL)
	auth := service.NewAuthService(userRepo)
	sessions := service.NewSessionManager(tokens, auth, userRepo, log)

	orderSvc := service.NewOrderService(orderRepo, clientRepo, audit, log)
	clientSvc := service.NewClientService(clientRepo, audit, log)
	presetSvc := service.NewPresetService(presetRepo, audit, log)
	userSvc := service.NewUserService(userRepo, audit, log)

	if err := userSvc.SeedDefaults(ctx, seedUsers(cfg.Seed)); err != nil {
		return nil, err
	}

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(sessions, tokens.TTL())
	orderHandler := handler.NewOrderHandler(orderSvc)
	clientHandler := handler.NewClientHandler(clientSvc)
	presetHandler := handler.NewPresetHandler(presetSvc)
	userHandler := handler.NewUserHandler(userSvc)
	auditHandler := handler.NewAuditHandler(audit)
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(doc, rdb)

	// --- Public routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Authenticated routes ---
	sess := middleware.Session(sessions, tokens.TTL())
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	anyRole := middleware.RBAC(domain.RoleAdmin, domain.RoleTeam)

	e.GET("/auth/session", authHandler.Session, sess)

	v1 := e.Group("/v1", sess)

	v1.GET("/orders", orderHandler.List, anyRole)
	v1.POST("/orders", orderHandler.Submit, anyRole)
	v1.GET("/orders/summary", orderHandler.Summary, adminOnly)
	v1.GET("/orders/export", orderHandler.Export, adminOnly)
	v1.PUT("/orders/:row", orderHandler.Edit, adminOnly)
	v1.DELETE("/orders/:row", orderHandler.Delete, adminOnly)

	v1.GET("/clients", clientHandler.List, anyRole)
	v1.POST("/clients", clientHandler.Add, anyRole)
	v1.PUT("/clients/:row", clientHandler.Edit, adminOnly)
	v1.DELETE("/clients/:row", clientHandler.Delete, adminOnly)

	v1.GET("/presets", presetHandler.List, adminOnly)
	v1.POST("/presets", presetHandler.Save, adminOnly)
	v1.DELETE("/presets/:row", presetHandler.Delete, adminOnly)

	v1.GET("/users", userHandler.List, adminOnly)
	v1.POST("/users", userHandler.Add, adminOnly)
	v1.PUT("/users/:row", userHandler.Update, adminOnly)

	v1.GET("/audit", auditHandler.List, adminOnly)

	return e, nil
}

func seedUsers(seed config.SeedConfig) []domain.User {
	return []domain.User{
		{Username: "admin", DisplayName: "Administrator", Role: domain.RoleAdmin, Password: seed.AdminPassword},
		{Username: "wolf1", DisplayName: "Wolf One", Role: domain.RoleTeam, Password: seed.Wolf1Password},
		{Username: "wolf2", DisplayName: "Wolf Two", Role: domain.RoleTeam, Password: seed.Wolf2Password},
	}
}
