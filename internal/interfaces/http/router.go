package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jportela/producao-pro/internal/application/auth"
	"github.com/jportela/producao-pro/internal/application/notification"
	"github.com/jportela/producao-pro/internal/application/production"
	"github.com/jportela/producao-pro/internal/application/usecase"
	"github.com/jportela/producao-pro/internal/domain/entity"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	OrderUC      *usecase.OrderUseCase
	CompanyUC    *usecase.CompanyUseCase
	ModuleSvc    *usecase.ModuleService
	PermissionUC *usecase.PermissionUseCase
	MoveStage    *production.MoveStageUseCase
	QualityGate  *production.QualityGateUseCase
	Dispatcher   *notification.Dispatcher
	JWTSecret    string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rotas protegidas (Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	// Pedidos e esteira de produção (módulo vendas)
	vendas := RequireModule(entity.ModuleVendas, deps.ModuleSvc)
	orders := protected.Group("/orders", vendas)
	orderHandler := NewOrderHandler(deps.OrderUC)
	productionHandler := NewProductionHandler(deps.MoveStage, deps.OrderUC)
	qualityHandler := NewQualityHandler(deps.QualityGate)
	notificationHandler := NewNotificationHandler(deps.Dispatcher)

	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id", orderHandler.Update)
	orders.Patch("/:id/status", orderHandler.UpdateStatus)
	orders.Post("/:id/force-complete",
		RequireRole(entity.RoleAdmin, entity.RoleSuperadmin), orderHandler.ForceComplete)
	orders.Get("/:id/stage-logs", orderHandler.StageHistory)

	orders.Post("/:id/stage", productionHandler.MoveStage)
	orders.Post("/:id/revert", productionHandler.Revert)

	orders.Post("/:id/inspection", qualityHandler.Inspect)
	orders.Get("/:id/inspections", qualityHandler.ListInspections)
	orders.Get("/:id/inspections/latest", qualityHandler.LatestInspection)

	orders.Get("/:id/notifications", notificationHandler.ListByOrder)

	// Quadro por etapa (módulo vendas)
	protected.Get("/board", vendas, productionHandler.Board)

	// Reenvio manual de notificação
	notifications := protected.Group("/notifications", vendas)
	notifications.Post("/:id/resend", notificationHandler.Resend)

	// Administração da plataforma (superadmin)
	superadmin := RequireRole(entity.RoleSuperadmin)
	companies := protected.Group("/companies", superadmin)
	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.ModuleSvc)
	companies.Post("/", companyHandler.Create)
	companies.Get("/", companyHandler.List)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Get("/:id/modules", companyHandler.ListModules)
	companies.Put("/:id/modules", companyHandler.SetModule)

	permissions := protected.Group("/permissions", superadmin)
	permissionHandler := NewPermissionHandler(deps.PermissionUC)
	permissions.Get("/:role", permissionHandler.ListByRole)
	permissions.Put("/:role", permissionHandler.Upsert)
}
