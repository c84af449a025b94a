// Package images generación de imágenes de códigos escaneables.
package images

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

// QRGenerator genera imágenes QR en PNG codificadas como data URL, listas
// para incrustar en el frontend sin servir archivos.
type QRGenerator struct {
	size int
}

// NewQRGenerator crea el generador; size <= 0 usa 256px.
func NewQRGenerator(size int) *QRGenerator {
	if size <= 0 {
		size = 256
	}
	return &QRGenerator{size: size}
}

// DataURL codifica contenido como QR y lo devuelve en data:image/png;base64.
func (g *QRGenerator) DataURL(contenido string) (string, error) {
	if contenido == "" {
		return "", fmt.Errorf("qr: contenido vacío")
	}
	code, err := qr.Encode(contenido, qr.M, qr.Auto)
	if err != nil {
		return "", fmt.Errorf("qr: codificar: %w", err)
	}
	scaled, err := barcode.Scale(code, g.size, g.size)
	if err != nil {
		return "", fmt.Errorf("qr: escalar: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return "", fmt.Errorf("qr: png: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
