package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aarsoma/deliverynote-api/internal/application/auth"
	"github.com/aarsoma/deliverynote-api/internal/application/customers"
	"github.com/aarsoma/deliverynote-api/internal/application/delivery"
	"github.com/aarsoma/deliverynote-api/internal/application/stats"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	CustomerUC *customers.CustomerUseCase
	CreateNote *delivery.CreateNoteUseCase
	NoteQuery  *delivery.QueryUseCase
	Documents  *delivery.DocumentUseCase
	Statistics *stats.StatisticsUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Customers (protegido)
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customersGroup := protected.Group("/customers")
	customersGroup.Get("/", customerHandler.List)
	customersGroup.Post("/", customerHandler.Create)
	customersGroup.Get("/:id/can-delete", customerHandler.CanDelete)
	customersGroup.Get("/:id", customerHandler.GetByID)
	customersGroup.Put("/:id", customerHandler.Update)
	customersGroup.Delete("/:id", customerHandler.Delete)

	// Delivery notes (protegido)
	noteHandler := NewDeliveryNoteHandler(deps.CreateNote, deps.NoteQuery, deps.Documents)
	notes := protected.Group("/delivery-notes")
	notes.Get("/", noteHandler.List)
	notes.Post("/", noteHandler.Create)
	notes.Get("/next-number", noteHandler.NextNumber)
	notes.Get("/:id/pdf", noteHandler.PDF)
	notes.Get("/:id/xml", noteHandler.XML)
	notes.Get("/:id", noteHandler.GetByID)

	// Dashboard (protegido)
	dashboardHandler := NewDashboardHandler(deps.Statistics)
	protected.Get("/dashboard/statistics", dashboardHandler.GetStatistics)
}
