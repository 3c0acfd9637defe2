package dto

import "time"

// StatisticsDTO conteos rodantes de notas de entrega para el dashboard.
// Las cinco ventanas son independientes entre sí (no anidadas).
type StatisticsDTO struct {
	TotalDeliveryNotes         int64     `json:"total_delivery_notes"`
	FinancialYearDeliveryNotes int64     `json:"financial_year_delivery_notes"`
	MonthlyDeliveryNotes       int64     `json:"monthly_delivery_notes"`
	WeeklyDeliveryNotes        int64     `json:"weekly_delivery_notes"`
	DailyDeliveryNotes         int64     `json:"daily_delivery_notes"`
	FinancialYearLabel         string    `json:"financial_year_label"`
	GeneratedAt                time.Time `json:"generated_at"`
}
