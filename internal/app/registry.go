package app

import (
	"context"
	"database/sql"

	"school-hris/internal/audit"
	"school-hris/internal/auth"
	"school-hris/internal/certificate"
	"school-hris/internal/contract"
	"school-hris/internal/department"
	"school-hris/internal/document"
	"school-hris/internal/employee"
	"school-hris/internal/leave"
	"school-hris/internal/leavecredit"
	"school-hris/internal/messaging/kafka"
	"school-hris/internal/middleware"
	"school-hris/internal/notification"
	"school-hris/internal/profilechange"
	"school-hris/internal/rbac"
	"school-hris/internal/rbac/infra"
	"school-hris/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	auditRepo := audit.NewRepository(gormDB)
	certificateRepo := certificate.NewRepository(gormDB)
	contractRepo := contract.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	documentRepo := document.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	leaveCreditRepo := leavecredit.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	profileChangeRepo := profilechange.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer)
	if err != nil {
		return err
	}

	// --- Services ---
	auditService := audit.NewService(auditRepo)
	authService := auth.NewService(employeeRepo)
	certificateService := certificate.NewService(certificateRepo)
	contractService := contract.NewServiceWithOutbox(db, contractRepo, outboxRepo)
	departmentService := department.NewService(departmentRepo)
	documentService := document.NewService(documentRepo)
	employeeService := employee.NewService(db, employeeRepo, counterRepo, outboxRepo, rdb)
	leaveCreditService := leavecredit.NewService(db, leaveCreditRepo)
	leaveService := leave.NewService(db, leaveRepo, leaveCreditService, outboxRepo)
	notificationService := notification.NewService(notificationRepo, rdb)
	profileChangeService := profilechange.NewService(db, profileChangeRepo, outboxRepo)

	// --- Handlers ---
	auditHandler := audit.NewHandler(auditService)
	authHandler := auth.NewHandler(authService)
	certificateHandler := certificate.NewHandler(certificateService)
	contractHandler := contract.NewHandler(contractService)
	departmentHandler := department.NewHandler(departmentService)
	documentHandler := document.NewHandler(documentService)
	employeeHandler := employee.NewHandler(employeeService)
	leaveHandler := leave.NewHandler(leaveService)
	leaveCreditHandler := leavecredit.NewHandler(leaveCreditService)
	notificationHandler := notification.NewHandler(notificationService)
	profileChangeHandler := profilechange.NewHandler(profileChangeService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	api.Use(middleware.RequestID())
	api.Use(middleware.Idempotency(rdb))
	api.Use(audit.Trail(auditService))
	{
		auth.RegisterRoutes(api, authHandler)
		audit.RegisterRoutes(api, auditHandler, rbacService)
		certificate.RegisterRoutes(api, certificateHandler, rbacService)
		contract.RegisterRoutes(api, contractHandler, rbacService)
		department.RegisterRoutes(api, departmentHandler, rbacService)
		document.RegisterRoutes(api, documentHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService)
		leavecredit.RegisterRoutes(api, leaveCreditHandler, rbacService)
		notification.RegisterRoutes(api, notificationHandler, rbacService)
		profilechange.RegisterRoutes(api, profileChangeHandler, rbacService)
	}

	// Expired contracts are swept in-process; the sweep is idempotent so
	// running it in every API replica is safe.
	sweeper := contract.NewSweeper(contractService)
	go sweeper.Run(context.Background())

	return nil
}
