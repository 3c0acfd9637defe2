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

	"github.com/aarsoma/deliverynote-api/internal/application/auth"
	"github.com/aarsoma/deliverynote-api/internal/application/customers"
	"github.com/aarsoma/deliverynote-api/internal/application/delivery"
	"github.com/aarsoma/deliverynote-api/internal/application/stats"
	infrapdf "github.com/aarsoma/deliverynote-api/internal/infrastructure/pdf"
	"github.com/aarsoma/deliverynote-api/internal/infrastructure/postgres"
	"github.com/aarsoma/deliverynote-api/internal/infrastructure/ubl"
	httpRouter "github.com/aarsoma/deliverynote-api/internal/interfaces/http"
	"github.com/aarsoma/deliverynote-api/pkg/config"
	"github.com/aarsoma/deliverynote-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.InitSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("inicializar esquema")
	}

	customerRepo := postgres.NewCustomerRepository(pool)
	noteRepo := postgres.NewDeliveryNoteRepository(pool)
	statsRepo := postgres.NewStatisticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	customerUC := customers.NewCustomerUseCase(customerRepo, noteRepo, txRunner)
	createNoteUC := delivery.NewCreateNoteUseCase(txRunner, customerRepo)
	noteQueryUC := delivery.NewQueryUseCase(noteRepo)

	// PDF A5 de la nota + exportación UBL DespatchAdvice
	pdfGenerator := infrapdf.NewMarotoNoteGenerator()
	despatchBuilder := ubl.NewDespatchBuilder()
	documentUC := delivery.NewDocumentUseCase(noteRepo, pdfGenerator, despatchBuilder)

	statsUC := stats.NewStatisticsUseCase(statsRepo)
	authUC := auth.NewAuthUseCase(
		auth.OperatorConfig{
			Email:        cfg.Operator.Email,
			PasswordHash: cfg.Operator.PasswordHash,
			Name:         cfg.Operator.Name,
		},
		auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "DeliveryNote API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		CustomerUC: customerUC,
		CreateNote: createNoteUC,
		NoteQuery:  noteQueryUC,
		Documents:  documentUC,
		Statistics: statsUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	// Refresco periódico de la instantánea de estadísticas
	refresherCtx, stopRefresher := context.WithCancel(ctx)
	defer stopRefresher()
	go statsUC.StartRefresher(refresherCtx, time.Duration(cfg.Stats.RefreshMinutes)*time.Minute, func(err error) {
		log.Error().Err(err).Msg("refresco de estadísticas")
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
