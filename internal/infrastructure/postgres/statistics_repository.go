package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aarsoma/deliverynote-api/internal/domain/repository"
)

var _ repository.StatisticsRepository = (*StatisticsRepo)(nil)

// StatisticsRepo consultas de conteo de solo lectura para el dashboard.
// Todas comparan contra la porción de fecha de issue_date, con rangos
// inclusivos en ambos extremos.
type StatisticsRepo struct {
	pool *pgxpool.Pool
}

// NewStatisticsRepository construye el adaptador de estadísticas.
func NewStatisticsRepository(pool *pgxpool.Pool) *StatisticsRepo {
	return &StatisticsRepo{pool: pool}
}

// CountAll cuenta todas las notas de entrega.
func (r *StatisticsRepo) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM delivery_notes`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("stats.CountAll: %w", err)
	}
	return count, nil
}

// CountByIssueDateBetween cuenta las notas emitidas dentro del rango.
func (r *StatisticsRepo) CountByIssueDateBetween(ctx context.Context, start, end time.Time) (int64, error) {
	const query = `
		SELECT COUNT(*) FROM delivery_notes
		WHERE CAST(issue_date AS DATE) BETWEEN $1::date AND $2::date`
	var count int64
	err := r.pool.QueryRow(ctx, query, start, end).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("stats.CountByIssueDateBetween: %w", err)
	}
	return count, nil
}

// CountByIssueDate cuenta las notas emitidas el día indicado.
func (r *StatisticsRepo) CountByIssueDate(ctx context.Context, day time.Time) (int64, error) {
	const query = `
		SELECT COUNT(*) FROM delivery_notes
		WHERE CAST(issue_date AS DATE) = $1::date`
	var count int64
	err := r.pool.QueryRow(ctx, query, day).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("stats.CountByIssueDate: %w", err)
	}
	return count, nil
}
