package rut_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/temucosoft-api/pkg/rut"
)

var validRUTs = []string{
	"12.345.678-5",
	"12345678-5",
	"123456785",
	"11.223.344-k",
	"11223344-K",
	"12345675-0",
	"99776655-5",
	"1-9",
	" 76.354.771-K ",
	"１２３４５６７８－５", // ancho completo
}

func TestValidate_RUTsValidos(t *testing.T) {
	for _, raw := range validRUTs {
		n, ok := rut.Normalize(raw)
		require.True(t, ok, "Normalize(%q)", raw)
		assert.True(t, rut.Validate(n), "Validate(%q) debería ser true", n)
		assert.True(t, rut.Validate(raw), "Validate(%q) sin normalizar", raw)
	}
}

func TestValidate_DVAlteradoFalla(t *testing.T) {
	for _, raw := range validRUTs {
		n, ok := rut.Normalize(raw)
		require.True(t, ok)
		body := n[:len(n)-1]
		dv := n[len(n)-1]
		for _, other := range []byte("0123456789K") {
			if other == dv {
				continue
			}
			assert.False(t, rut.Validate(body+string(other)), "%s%c no debería validar", body, other)
		}
	}
}

func TestNormalize_Idempotente(t *testing.T) {
	inputs := append([]string{"7.654.321-6", "76543216", "7654321-k"}, validRUTs...)
	for _, raw := range inputs {
		once, ok := rut.Normalize(raw)
		require.True(t, ok, raw)
		twice, ok := rut.Normalize(once)
		require.True(t, ok)
		assert.Equal(t, once, twice)
	}
}

func TestNormalize_FormaCanonica(t *testing.T) {
	cases := map[string]string{
		"12.345.678-5": "12345678-5",
		"123456785":    "12345678-5",
		"11223344k":    "11223344-K",
		"1-9":          "1-9",
	}
	for in, want := range cases {
		got, ok := rut.Normalize(in)
		require.True(t, ok, in)
		assert.Equal(t, want, got)
	}
}

func TestNormalize_Rechaza(t *testing.T) {
	for _, raw := range []string{"", "1", "-", "-5", "12-34-5", "12a45678-5", "12345678-X", "12345678-55", "...", "K-1"} {
		_, ok := rut.Normalize(raw)
		assert.False(t, ok, "Normalize(%q) debería fallar", raw)
	}
}

func TestCheckDigit(t *testing.T) {
	cases := map[string]byte{
		"12345678": '5',
		"11223344": 'K',
		"12345675": '0',
		"5126663":  '3',
		"88554433": '9',
	}
	for body, want := range cases {
		got, err := rut.CheckDigit(body)
		require.NoError(t, err)
		assert.Equal(t, string(want), string(got), body)
	}
	_, err := rut.CheckDigit("12a")
	assert.Error(t, err)
}

func TestClean(t *testing.T) {
	got, err := rut.Clean("12.345.678-5")
	require.NoError(t, err)
	assert.Equal(t, "12345678-5", got)

	_, err = rut.Clean("12.345.678-4")
	assert.ErrorIs(t, err, rut.ErrInvalid)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "12.345.678-5", rut.Format("123456785"))
	assert.Equal(t, "1-9", rut.Format("1-9"))
	assert.Equal(t, "765.432-1", rut.Format("7654321"))
	assert.Equal(t, "no-es-rut", rut.Format("no-es-rut"))
}
