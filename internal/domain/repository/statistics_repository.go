package repository

import (
	"context"
	"time"
)

// StatisticsRepository consultas de conteo de solo lectura sobre las notas
// de entrega, siempre contra la porción de fecha de issue_date.
type StatisticsRepository interface {
	CountAll(ctx context.Context) (int64, error)
	// CountByIssueDateBetween cuenta notas con fecha de emisión dentro del
	// rango, ambos extremos incluidos.
	CountByIssueDateBetween(ctx context.Context, start, end time.Time) (int64, error)
	// CountByIssueDate cuenta las notas emitidas el día indicado.
	CountByIssueDate(ctx context.Context, day time.Time) (int64, error)
}
