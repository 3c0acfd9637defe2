// Package numbering implementa el formato y la secuencia de los números de
// nota de entrega: "DN" + año + "-" + secuencia con ceros a la izquierda
// (mínimo 4 dígitos, sin tope: 9999 pasa a 10000 sin truncarse).
package numbering

import (
	"fmt"
	"strconv"
	"strings"
)

// prefix literal que antecede al año en todo número de nota.
const prefix = "DN"

// seqWidth ancho mínimo de la secuencia (se rellena con ceros).
const seqWidth = 4

// YearPrefix devuelve el prefijo de los números del año: "DN2025-".
func YearPrefix(year int) string {
	return fmt.Sprintf("%s%d-", prefix, year)
}

// Format compone un número de nota a partir del año y la secuencia.
func Format(year, seq int) string {
	return fmt.Sprintf("%s%0*d", YearPrefix(year), seqWidth, seq)
}

// Sequence extrae la parte numérica de un número de nota del año dado.
// Falla si el número no lleva el prefijo del año o el sufijo no es numérico.
func Sequence(noteNumber string, year int) (int, error) {
	p := YearPrefix(year)
	if !strings.HasPrefix(noteNumber, p) {
		return 0, fmt.Errorf("numbering: %q no pertenece al prefijo %q", noteNumber, p)
	}
	seq, err := strconv.Atoi(noteNumber[len(p):])
	if err != nil {
		return 0, fmt.Errorf("numbering: sufijo no numérico en %q: %w", noteNumber, err)
	}
	return seq, nil
}

// Next devuelve el número siguiente al máximo existente del año. Con
// lastNumber vacío (primera nota del año) devuelve la secuencia 0001.
func Next(lastNumber string, year int) (string, error) {
	if lastNumber == "" {
		return Format(year, 1), nil
	}
	seq, err := Sequence(lastNumber, year)
	if err != nil {
		return "", err
	}
	return Format(year, seq+1), nil
}
