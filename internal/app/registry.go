package app

import (
	"context"
	"net/http"
	"time"

	"go-elms/internal/auth"
	"go-elms/internal/employee"
	"go-elms/internal/hr"
	"go-elms/internal/identity"
	"go-elms/internal/leave"
	"go-elms/internal/messaging/kafka"
	"go-elms/internal/middleware"
	"go-elms/internal/notification"
	"go-elms/internal/observability/metrics"
	"go-elms/internal/rbac"
	"go-elms/internal/rbac/infra"
	"go-elms/internal/session"
	"go-elms/internal/shared/apperror"
	"go-elms/internal/shared/counter"
	"go-elms/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// accountTables maps each role to the table its credentials live in.
var accountTables = map[identity.Role]auth.AccountTable{
	identity.RoleAdmin:    {Name: "admins"},
	identity.RoleHR:       {Name: "hrs", ApprovalColumn: "is_approved"},
	identity.RoleEmployee: {Name: "employees"},
}

func registerModules(router *gin.Engine, deps Dependencies) error {
	cfg := deps.Config
	logger := deps.Logger

	router.Use(metrics.GinMiddleware(), middleware.ContextLogger(logger))

	// --- Sessions ---
	var store session.Store
	if deps.Redis != nil {
		store = session.NewRedisStore(deps.Redis)
	} else {
		store = session.NewMemoryStore(nil)
	}
	sessions := session.NewManager(store, cfg.SessionSecret, cfg.SessionIdleTimeout, logger)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(rbac.NewRepository(), enforcer, logger)
	if err != nil {
		return err
	}

	// --- Repositories ---
	outboxRepo := kafka.NewOutboxRepository(deps.SQLDB)
	counterRepo := counter.NewRepository(deps.GormDB)
	employeeRepo := employee.NewRepository(deps.GormDB)
	hrRepo := hr.NewRepository(deps.GormDB)
	leaveRepo := leave.NewRepository(deps.GormDB)

	queue := notification.NewOutboxQueue(outboxRepo)

	// --- Services ---
	employeeService := employee.NewService(deps.SQLDB, employeeRepo, counterRepo, queue, cfg.FrontendURL, logger)
	hrService := hr.NewService(deps.SQLDB, hrRepo, queue, cfg.FrontendURL, logger)
	leaveService := leave.NewService(deps.SQLDB, leaveRepo, queue, logger)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService, deps.Audit, logger)
	hrHandler := hr.NewHandler(hrService, deps.Audit, logger)
	leaveHandler := leave.NewHandler(leaveService, deps.Audit, logger)
	rbacHandler := rbac.NewHandler(rbacService)

	router.GET("/healthz", healthz(deps))
	router.GET("/metrics", metrics.Handler())

	// --- Routes Registration ---
	api := router.Group("/api")
	gates := make(map[identity.Role]*gin.RouterGroup, len(accountTables))
	for role, table := range accountTables {
		gate := middleware.RequireSession(sessions, role)

		authService := auth.NewCredentialService(
			deps.SQLDB,
			auth.NewAccountStore(deps.GormDB, table),
			queue,
			auth.CredentialConfig{
				Role:            role,
				FrontendURL:     cfg.FrontendURL,
				RequireApproval: table.ApprovalColumn != "",
			},
			logger,
		)
		authHandler := auth.NewHandler(
			auth.HandlerConfig{
				Role:         role,
				IdleSeconds:  int(cfg.SessionIdleTimeout / time.Second),
				SecureCookie: cfg.IsProduction(),
			},
			authService,
			sessions,
			deps.Audit,
			logger,
		)

		public := api.Group("/" + role.Slug())
		auth.RegisterRoutes(public, authHandler, gate)
		if role == identity.RoleHR {
			hr.RegisterPublicRoutes(public, hrHandler)
		}
		gates[role] = api.Group("/"+role.Slug(), gate)
	}

	adminGroup := gates[identity.RoleAdmin]
	{
		hr.RegisterAdminRoutes(adminGroup, hrHandler, rbacService)
		employee.RegisterProvisionRoutes(adminGroup, employeeHandler, rbacService)
		employee.RegisterReadRoutes(adminGroup, employeeHandler, rbacService)
		leave.RegisterReviewerRoutes(adminGroup, leaveHandler, rbacService)
		rbac.RegisterRoutes(adminGroup, rbacHandler, rbacService)
	}

	hrGroup := gates[identity.RoleHR]
	{
		employee.RegisterReadRoutes(hrGroup, employeeHandler, rbacService)
		leave.RegisterReviewerRoutes(hrGroup, leaveHandler, rbacService)
	}

	leave.RegisterEmployeeRoutes(gates[identity.RoleEmployee], leaveHandler, rbacService, deps.Redis)

	return nil
}

func healthz(deps Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := deps.SQLDB.PingContext(ctx); err != nil {
			response.Fail(c, apperror.Unavailable(err))
			return
		}
		if deps.Redis != nil {
			if err := deps.Redis.Ping(ctx).Err(); err != nil {
				response.Fail(c, apperror.Unavailable(err))
				return
			}
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok"}, nil)
	}
}
