package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jportela/producao-pro/internal/application/auth"
	"github.com/jportela/producao-pro/internal/application/authz"
	"github.com/jportela/producao-pro/internal/application/notification"
	"github.com/jportela/producao-pro/internal/application/production"
	"github.com/jportela/producao-pro/internal/application/usecase"
	"github.com/jportela/producao-pro/internal/infrastructure/postgres"
	"github.com/jportela/producao-pro/internal/infrastructure/whatsapp"
	httpRouter "github.com/jportela/producao-pro/internal/interfaces/http"
	"github.com/jportela/producao-pro/internal/worker"
	"github.com/jportela/producao-pro/pkg/config"
	"github.com/jportela/producao-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migração do banco")
	}

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	permissionRepo := postgres.NewPermissionRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	qualityRepo := postgres.NewQualityRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)

	resolver := authz.NewResolver(companyRepo, companyRepo, permissionRepo)

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	companyUC := usecase.NewCompanyUseCase(companyRepo)
	moduleSvc := usecase.NewModuleService(companyRepo)
	permissionUC := usecase.NewPermissionUseCase(permissionRepo)
	orderUC := usecase.NewOrderUseCase(orderRepo, resolver)
	moveStageUC := production.NewMoveStageUseCase(orderRepo, resolver)
	qualityGateUC := production.NewQualityGateUseCase(orderRepo, qualityRepo, resolver)
	dispatcher := notification.NewDispatcher(notificationRepo, orderRepo, resolver)

	// Worker de outbox: envia as notificações enfileiradas pelas transições.
	sender := whatsapp.NewClient(cfg.Notify)
	outbox := worker.NewOutboxProcessor(notificationRepo, sender,
		cfg.Outbox.Interval, cfg.Outbox.BatchSize, cfg.Outbox.MaxAttempts, cfg.Outbox.Backoff,
		log.Zerolog())
	if cfg.Notify.Enabled() {
		go outbox.Run(ctx)
	} else {
		log.Warn().Msg("WHATSAPP_BASE_URL ausente; envio de notificações desabilitado")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Producao Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		OrderUC:      orderUC,
		CompanyUC:    companyUC,
		ModuleSvc:    moduleSvc,
		PermissionUC: permissionUC,
		MoveStage:    moveStageUC,
		QualityGate:  qualityGateUC,
		Dispatcher:   dispatcher,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")
	cancel() // encerra o worker de outbox

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação parada")
}
