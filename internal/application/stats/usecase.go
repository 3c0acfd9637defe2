// Package stats contiene el caso de uso del dashboard de estadísticas:
// conteos rodantes de notas de entrega sobre cinco ventanas independientes
// (total, año financiero, mes, semana ISO y día).
package stats

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aarsoma/deliverynote-api/internal/application/dto"
	"github.com/aarsoma/deliverynote-api/internal/domain/fiscal"
	"github.com/aarsoma/deliverynote-api/internal/domain/repository"
)

// StatisticsUseCase calcula el resumen de conteos y mantiene en memoria la
// última instantánea para que el dashboard no golpee la base de datos en
// cada refresco de pantalla.
type StatisticsUseCase struct {
	statsRepo repository.StatisticsRepository

	mu     sync.RWMutex
	cached *dto.StatisticsDTO
}

// NewStatisticsUseCase construye el caso de uso.
func NewStatisticsUseCase(statsRepo repository.StatisticsRepository) *StatisticsUseCase {
	return &StatisticsUseCase{statsRepo: statsRepo}
}

// Snapshot recalcula los cinco conteos contra la base de datos y actualiza
// la instantánea en memoria.
func (uc *StatisticsUseCase) Snapshot(ctx context.Context) (*dto.StatisticsDTO, error) {
	snap, err := uc.computeAt(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	uc.mu.Lock()
	uc.cached = snap
	uc.mu.Unlock()
	return snap, nil
}

// Cached devuelve la última instantánea calculada, o nil si aún no hay.
func (uc *StatisticsUseCase) Cached() *dto.StatisticsDTO {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.cached
}

// StartRefresher recalcula la instantánea cada interval hasta que el
// contexto se cancele. Pensado para correr en su propia goroutine.
func (uc *StatisticsUseCase) StartRefresher(ctx context.Context, interval time.Duration, onError func(error)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := uc.Snapshot(ctx); err != nil && onError != nil {
				onError(err)
			}
		}
	}
}

// computeAt lanza los cinco conteos en paralelo sobre las ventanas que
// corresponden a now. Cada ventana es independiente: no se asume ninguna
// relación de inclusión entre ellas.
func (uc *StatisticsUseCase) computeAt(ctx context.Context, now time.Time) (*dto.StatisticsDTO, error) {
	w := windowsAt(now)

	type countResult struct {
		n   int64
		err error
	}
	totalCh := make(chan countResult, 1)
	fyCh := make(chan countResult, 1)
	monthCh := make(chan countResult, 1)
	weekCh := make(chan countResult, 1)
	dayCh := make(chan countResult, 1)

	go func() {
		n, err := uc.statsRepo.CountAll(ctx)
		totalCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.statsRepo.CountByIssueDateBetween(ctx, w.fyStart, w.fyEnd)
		fyCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.statsRepo.CountByIssueDateBetween(ctx, w.monthStart, w.monthEnd)
		monthCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.statsRepo.CountByIssueDateBetween(ctx, w.weekStart, w.weekEnd)
		weekCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.statsRepo.CountByIssueDate(ctx, w.day)
		dayCh <- countResult{n, err}
	}()

	total := <-totalCh
	fy := <-fyCh
	month := <-monthCh
	week := <-weekCh
	day := <-dayCh

	if total.err != nil {
		return nil, fmt.Errorf("stats: conteo total: %w", total.err)
	}
	if fy.err != nil {
		return nil, fmt.Errorf("stats: conteo del año financiero: %w", fy.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("stats: conteo del mes: %w", month.err)
	}
	if week.err != nil {
		return nil, fmt.Errorf("stats: conteo de la semana: %w", week.err)
	}
	if day.err != nil {
		return nil, fmt.Errorf("stats: conteo del día: %w", day.err)
	}

	return &dto.StatisticsDTO{
		TotalDeliveryNotes:         total.n,
		FinancialYearDeliveryNotes: fy.n,
		MonthlyDeliveryNotes:       month.n,
		WeeklyDeliveryNotes:        week.n,
		DailyDeliveryNotes:         day.n,
		FinancialYearLabel:         fiscal.Label(now),
		GeneratedAt:                now,
	}, nil
}

// countWindows rangos de fecha de las cinco ventanas, extremos incluidos.
type countWindows struct {
	fyStart, fyEnd       time.Time
	monthStart, monthEnd time.Time
	weekStart, weekEnd   time.Time
	day                  time.Time
}

// windowsAt deriva las ventanas de conteo a partir de now: año financiero
// abril–marzo, mes calendario, semana ISO (lunes a domingo) y día actual.
func windowsAt(now time.Time) countWindows {
	var w countWindows
	w.fyStart, w.fyEnd = fiscal.Window(now)

	w.monthStart = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	w.monthEnd = w.monthStart.AddDate(0, 1, -1)

	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	// time.Weekday arranca en domingo; la semana ISO arranca en lunes.
	offset := (int(day.Weekday()) + 6) % 7
	w.weekStart = day.AddDate(0, 0, -offset)
	w.weekEnd = w.weekStart.AddDate(0, 0, 6)

	w.day = day
	return w
}
