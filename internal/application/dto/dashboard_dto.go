package dto

import "github.com/shopspring/decimal"

// ProductoResumenDTO fila de los widgets del dashboard.
type ProductoResumenDTO struct {
	IDProducto  int64           `json:"id_producto"`
	Nombre      string          `json:"nombre"`
	Descripcion *string         `json:"descripcion,omitempty"`
	Precio      decimal.Decimal `json:"precio"`
	ImagenURL   *string         `json:"imagen_url,omitempty"`
	Stock       int             `json:"stock"`
	Ventas      int64           `json:"ventas"`
	QRImagePath *string         `json:"qr_image_path,omitempty"`
}

// ProductosResumenResponse los tres widgets del dashboard de productos.
type ProductosResumenResponse struct {
	Top       []ProductoResumenDTO `json:"top"`
	Recientes []ProductoResumenDTO `json:"recientes"`
	Agotando  []ProductoResumenDTO `json:"agotando"`
}
