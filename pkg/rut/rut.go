// Package rut normaliza y valida el Rol Único Tributario chileno (RUT).
//
// Forma canónica: CUERPO-DV, donde CUERPO son sólo dígitos y DV es un dígito o 'K'.
// El dígito verificador se calcula con módulo 11 y pesos 2..7 aplicados desde el
// dígito menos significativo del cuerpo.
package rut

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/width"
)

// ErrInvalid se devuelve cuando el RUT no tiene formato válido o el DV no coincide.
var ErrInvalid = errors.New("rut: RUT inválido")

// pesos del módulo 11; se repiten cíclicamente.
var weights = [6]int{2, 3, 4, 5, 6, 7}

// guiones tipográficos que suelen llegar al pegar desde planillas o PDFs.
var dashes = runes.Map(func(r rune) rune {
	switch r {
	case '\u2010', '\u2011', '\u2012', '\u2013', '\u2014', '\u2212':
		return '-'
	}
	return r
})

var dropSeparators = runes.Remove(runes.Predicate(func(r rune) bool {
	return r == '.' || unicode.IsSpace(r)
}))

// Normalize limpia el RUT y lo devuelve como CUERPO-DV.
// Acepta "12.345.678-5", "12345678-5", "123456785" o "12.345.678-k".
// No verifica el dígito; para eso usar Validate.
func Normalize(raw string) (string, bool) {
	s, _, err := transform.String(transform.Chain(width.Fold, dashes, dropSeparators), raw)
	if err != nil {
		return "", false
	}
	s = strings.ToUpper(s)
	if len(s) < 2 {
		return "", false
	}

	var body, dv string
	switch strings.Count(s, "-") {
	case 0:
		body, dv = s[:len(s)-1], s[len(s)-1:]
	case 1:
		body, dv, _ = strings.Cut(s, "-")
	default:
		return "", false
	}

	if body == "" || !isDigits(body) || len(dv) != 1 {
		return "", false
	}
	if c := dv[0]; c != 'K' && (c < '0' || c > '9') {
		return "", false
	}
	return body + "-" + dv, true
}

// Validate informa si el RUT (en cualquier forma aceptada por Normalize) tiene DV correcto.
func Validate(raw string) bool {
	n, ok := Normalize(raw)
	if !ok {
		return false
	}
	body, dv, _ := strings.Cut(n, "-")
	expected, err := CheckDigit(body)
	if err != nil {
		return false
	}
	return dv[0] == expected
}

// CheckDigit calcula el dígito verificador del cuerpo numérico.
func CheckDigit(body string) (byte, error) {
	if body == "" || !isDigits(body) {
		return 0, fmt.Errorf("rut: cuerpo %q no es numérico", body)
	}
	var sum int
	for i := 0; i < len(body); i++ {
		d := int(body[len(body)-1-i] - '0')
		sum += d * weights[i%len(weights)]
	}
	switch r := 11 - sum%11; r {
	case 11:
		return '0', nil
	case 10:
		return 'K', nil
	default:
		return byte('0' + r), nil
	}
}

// Clean normaliza y valida en un paso; es lo que usan las entidades antes de persistir.
func Clean(raw string) (string, error) {
	n, ok := Normalize(raw)
	if !ok || !Validate(n) {
		return "", ErrInvalid
	}
	return n, nil
}

// Format presenta el RUT con separador de miles: 12.345.678-5.
func Format(raw string) string {
	n, ok := Normalize(raw)
	if !ok {
		return raw
	}
	body, dv, _ := strings.Cut(n, "-")
	var b strings.Builder
	for i, c := range body {
		if i > 0 && (len(body)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}
	return b.String() + "-" + dv
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
