// Package fiscal implementa el calendario del año financiero abril–marzo.
// El año financiero arranca el 1 de abril y termina el 31 de marzo del año
// siguiente; su etiqueta son los dos años que lo componen ("2024-2025").
package fiscal

import (
	"fmt"
	"time"
)

// startMonth primer mes del año financiero.
const startMonth = time.April

// Label devuelve la etiqueta del año financiero al que pertenece la fecha.
// Para 2024-03-31 devuelve "2023-2024"; para 2024-04-01, "2024-2025".
func Label(t time.Time) string {
	start := startYear(t)
	return fmt.Sprintf("%d-%d", start, start+1)
}

// Window devuelve el primer y el último día (ambos incluidos) del año
// financiero al que pertenece la fecha. Las horas quedan en cero; los
// rangos sobre la base de datos comparan solo la porción de fecha.
func Window(t time.Time) (start, end time.Time) {
	y := startYear(t)
	start = time.Date(y, startMonth, 1, 0, 0, 0, 0, t.Location())
	end = start.AddDate(1, 0, -1)
	return start, end
}

// startYear año calendario en el que inicia el año financiero de la fecha:
// el mismo año si el mes es abril o posterior, el anterior si no.
func startYear(t time.Time) int {
	if t.Month() >= startMonth {
		return t.Year()
	}
	return t.Year() - 1
}
