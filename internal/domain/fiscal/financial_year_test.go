package fiscal_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aarsoma/deliverynote-api/internal/domain/fiscal"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TestLabel_CortesDeAbril verifica la etiqueta a ambos lados del corte del
// 1 de abril: el 31 de marzo pertenece todavía al año financiero anterior.
func TestLabel_CortesDeAbril(t *testing.T) {
	assert.Equal(t, "2023-2024", fiscal.Label(date(2024, time.March, 31)),
		"el 31 de marzo de 2024 cierra el año financiero 2023-2024")
	assert.Equal(t, "2024-2025", fiscal.Label(date(2024, time.April, 1)),
		"el 1 de abril de 2024 abre el año financiero 2024-2025")
}

func TestLabel_MesesIntermedios(t *testing.T) {
	assert.Equal(t, "2024-2025", fiscal.Label(date(2024, time.December, 15)))
	assert.Equal(t, "2024-2025", fiscal.Label(date(2025, time.January, 10)))
	assert.Equal(t, "2024-2025", fiscal.Label(date(2025, time.February, 28)))
}

// TestWindow_LimitesInclusivos verifica que la ventana va del 1 de abril al
// 31 de marzo del año siguiente, ambos incluidos y con horas en cero.
func TestWindow_LimitesInclusivos(t *testing.T) {
	start, end := fiscal.Window(date(2024, time.July, 20))

	assert.Equal(t, date(2024, time.April, 1), start)
	assert.Equal(t, date(2025, time.March, 31), end)
}

func TestWindow_FechaAntesDeAbril(t *testing.T) {
	start, end := fiscal.Window(date(2025, time.February, 3))

	assert.Equal(t, date(2024, time.April, 1), start,
		"febrero pertenece al año financiero que arrancó el abril anterior")
	assert.Equal(t, date(2025, time.March, 31), end)
}

// TestWindow_ConsistenteConLabel toda fecha dentro de la ventana debe
// producir la misma etiqueta que la fecha original.
func TestWindow_ConsistenteConLabel(t *testing.T) {
	now := date(2026, time.January, 15)
	start, end := fiscal.Window(now)

	assert.Equal(t, fiscal.Label(now), fiscal.Label(start))
	assert.Equal(t, fiscal.Label(now), fiscal.Label(end))
}
