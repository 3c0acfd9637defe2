package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aarsoma/deliverynote-api/internal/application/stats"
)

// DashboardHandler maneja los endpoints del dashboard de estadísticas.
type DashboardHandler struct {
	uc *stats.StatisticsUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *stats.StatisticsUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetStatistics devuelve los conteos rodantes de notas de entrega.
// GET /api/dashboard/statistics
//
// Recalcula bajo demanda (y refresca la instantánea que mantiene caliente
// el ticker de fondo). Las cinco ventanas se derivan del reloj del
// servidor; no recibe parámetros.
func (h *DashboardHandler) GetStatistics(c *fiber.Ctx) error {
	snapshot, err := h.uc.Snapshot(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(snapshot)
}
