package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSchemaDDL_IndicesSinExpresionesDeCast los índices deben ir sobre
// columnas planas: un cast timestamptz→date en la expresión del índice es
// STABLE, no IMMUTABLE, y CREATE INDEX falla con 42P17 — lo que abortaría
// el arranque completo de la aplicación en InitSchema.
func TestSchemaDDL_IndicesSinExpresionesDeCast(t *testing.T) {
	for _, stmt := range strings.Split(schemaDDL, ";") {
		if !strings.Contains(stmt, "CREATE INDEX") {
			continue
		}
		upper := strings.ToUpper(stmt)
		assert.NotContains(t, upper, "CAST(", "índice con expresión de cast: %s", strings.TrimSpace(stmt))
		assert.NotContains(t, upper, "::DATE", "índice con expresión de cast: %s", strings.TrimSpace(stmt))
	}
}

func TestSchemaDDL_RespaldosDeIntegridad(t *testing.T) {
	require.Contains(t, schemaDDL, "note_number    TEXT NOT NULL UNIQUE",
		"el número de nota lleva constraint único (detector de la carrera de numeración)")
	require.Contains(t, schemaDDL, "ON DELETE RESTRICT",
		"el FK a customers respalda la guarda referencial de borrado")
	require.Contains(t, schemaDDL, "ON DELETE CASCADE",
		"las líneas caen con su nota")
}

func TestSchemaDDL_Idempotente(t *testing.T) {
	// El esquema se aplica en cada arranque: todo CREATE debe tolerar que
	// el objeto ya exista.
	for _, stmt := range strings.Split(schemaDDL, ";") {
		s := strings.TrimSpace(stmt)
		if s == "" {
			continue
		}
		assert.Contains(t, s, "IF NOT EXISTS", "sentencia no idempotente: %s", s)
	}
}
