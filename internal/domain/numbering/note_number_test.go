package numbering_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aarsoma/deliverynote-api/internal/domain/numbering"
)

func TestYearPrefix(t *testing.T) {
	assert.Equal(t, "DN2025-", numbering.YearPrefix(2025))
}

func TestFormat_RellenaConCeros(t *testing.T) {
	assert.Equal(t, "DN2025-0001", numbering.Format(2025, 1))
	assert.Equal(t, "DN2025-0042", numbering.Format(2025, 42))
	assert.Equal(t, "DN2025-9999", numbering.Format(2025, 9999))
}

// TestFormat_SecuenciaSinTope la secuencia no se trunca al superar los
// cuatro dígitos: 10000 se imprime completo.
func TestFormat_SecuenciaSinTope(t *testing.T) {
	assert.Equal(t, "DN2025-10000", numbering.Format(2025, 10000))
}

func TestNext_PrimeraNotaDelAnio(t *testing.T) {
	next, err := numbering.Next("", 2025)
	require.NoError(t, err)
	assert.Equal(t, "DN2025-0001", next,
		"sin notas previas del año, la secuencia arranca en 0001")
}

func TestNext_Incrementa(t *testing.T) {
	next, err := numbering.Next("DN2025-0042", 2025)
	require.NoError(t, err)
	assert.Equal(t, "DN2025-0043", next)
}

func TestNext_CruzaLosCuatroDigitos(t *testing.T) {
	next, err := numbering.Next("DN2025-9999", 2025)
	require.NoError(t, err)
	assert.Equal(t, "DN2025-10000", next)
}

// TestNext_AnioDistintoFalla un máximo de otro año no puede secuenciar el
// año pedido: el prefijo no coincide.
func TestNext_AnioDistintoFalla(t *testing.T) {
	_, err := numbering.Next("DN2024-0100", 2025)
	assert.Error(t, err)
}

func TestSequence(t *testing.T) {
	seq, err := numbering.Sequence("DN2025-0042", 2025)
	require.NoError(t, err)
	assert.Equal(t, 42, seq)
}

func TestSequence_SufijoNoNumerico(t *testing.T) {
	_, err := numbering.Sequence("DN2025-00AB", 2025)
	assert.Error(t, err)
}

func TestSequence_PrefijoIncorrecto(t *testing.T) {
	_, err := numbering.Sequence("NE2025-0042", 2025)
	assert.Error(t, err)
}
