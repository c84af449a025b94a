// Package texto utilidades de normalización para entradas en español.
package texto

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// quitarDiacriticos descompone (NFD), elimina las marcas combinantes y
// recompone (NFC). "Transacción" -> "Transaccion".
var quitarDiacriticos = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Plegar devuelve s en minúsculas y sin tildes, para comparaciones
// insensibles a acentos. Si la transformación falla devuelve s en minúsculas.
func Plegar(s string) string {
	out, _, err := transform.String(quitarDiacriticos, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}

// Igual compara a y b ignorando mayúsculas y tildes.
func Igual(a, b string) bool {
	return Plegar(a) == Plegar(b)
}
