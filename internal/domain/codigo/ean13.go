// Package codigo implementa la generación y validación de códigos EAN-13
// para el etiquetado de productos.
package codigo

import (
	"fmt"
	"math/rand"
	"strings"
)

// PrefijoDefault prefijo numérico con el que inician los códigos generados
// si la configuración no indica otro.
const PrefijoDefault = "290"

// baseLen dígitos de la base sobre la que se calcula el dígito de control.
const baseLen = 12

// DigitoControl calcula el dígito verificador EAN-13 de una base de 12 dígitos.
// Posiciones impares (1-indexadas desde la izquierda) suman directo, pares
// suman por 3; control = (10 - (suma mod 10)) mod 10.
func DigitoControl(base string) (int, error) {
	if len(base) != baseLen {
		return 0, fmt.Errorf("codigo: la base debe tener %d dígitos, tiene %d", baseLen, len(base))
	}
	sum := 0
	for i, r := range base {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("codigo: carácter no numérico %q en la base", r)
		}
		d := int(r - '0')
		if i%2 == 0 { // posición impar 1-indexada
			sum += d
		} else {
			sum += d * 3
		}
	}
	return (10 - sum%10) % 10, nil
}

// Generar construye un EAN-13: prefijo numérico + relleno aleatorio hasta 12
// dígitos + dígito de control. Un prefijo de 12 o más dígitos se trunca para
// dejar al menos un dígito aleatorio.
func Generar(prefijo string, rng *rand.Rand) (string, error) {
	if prefijo == "" {
		prefijo = PrefijoDefault
	}
	for _, r := range prefijo {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("codigo: prefijo no numérico %q", prefijo)
		}
	}
	if len(prefijo) >= baseLen {
		prefijo = prefijo[:baseLen-1]
	}

	var b strings.Builder
	b.WriteString(prefijo)
	for b.Len() < baseLen {
		b.WriteByte(byte('0' + rng.Intn(10)))
	}
	base := b.String()

	control, err := DigitoControl(base)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%d", base, control), nil
}

// Validar reporta si code es un EAN-13 bien formado: exactamente 13 dígitos
// y dígito de control correcto.
func Validar(code string) bool {
	if len(code) != baseLen+1 {
		return false
	}
	control, err := DigitoControl(code[:baseLen])
	if err != nil {
		return false
	}
	return code[baseLen] == byte('0'+control)
}
