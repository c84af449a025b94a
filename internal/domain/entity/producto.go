package entity

import "github.com/shopspring/decimal"

// Producto es un artículo del catálogo. Cantidad es el contador materializado
// de stock disponible y nunca baja de cero; solo lo mutan las operaciones del
// libro de inventario y el motor de ventas, siempre dentro de una transacción.
type Producto struct {
	ID          int64
	Nombre      string // único en todo el catálogo
	Descripcion *string
	Cantidad    int
	Precio      decimal.Decimal
	IDCategoria *int64
	ImagenURL   *string
}

// CodigoBarras código EAN-13 asignado 1:1 al producto en su registro.
type CodigoBarras struct {
	Codigo     string // 13 dígitos, checksum válido, único
	IDProducto int64
}

// CodigoQR token opaco 1:1 con el producto; la unicidad la garantiza la BD.
type CodigoQR struct {
	Codigo     string
	IDProducto int64
}
