package dto

import "github.com/shopspring/decimal"

// CrearProductoRequest alta de producto. Cantidad es el stock inicial (>= 0).
type CrearProductoRequest struct {
	Nombre      string          `json:"nombre"`
	Descripcion *string         `json:"descripcion,omitempty"`
	Cantidad    int             `json:"cantidad"`
	Precio      decimal.Decimal `json:"precio"`
	IDCategoria *int64          `json:"id_categoria,omitempty"`
	ImagenURL   *string         `json:"imagen_url,omitempty"`
}

// CrearProductoResponse respuesta del alta: producto + códigos generados.
type CrearProductoResponse struct {
	Mensaje      string `json:"mensaje"`
	IDProducto   int64  `json:"id_producto"`
	CodigoBarras string `json:"codigo_barras"`
	CodigoQR     string `json:"codigo_qr"`
}

// ActualizarDetallesRequest actualización parcial: solo los campos presentes
// (punteros no nulos) entran al UPDATE; nunca se arma SQL desde la entrada.
type ActualizarDetallesRequest struct {
	Nombre      *string          `json:"nombre,omitempty"`
	Descripcion *string          `json:"descripcion,omitempty"`
	Precio      *decimal.Decimal `json:"precio,omitempty"`
	IDCategoria *int64           `json:"id_categoria,omitempty"`
	ImagenURL   *string          `json:"imagen_url,omitempty"`
}

// ActualizarStockRequest incremento de stock; entero positivo estricto.
type ActualizarStockRequest struct {
	Cantidad int `json:"cantidad"`
}

// StockPorCodigoRequest incremento de stock resuelto por código de barras.
type StockPorCodigoRequest struct {
	Codigo   string `json:"codigo"`
	Cantidad int    `json:"cantidad"`
}

// StockResponse cantidad resultante tras una operación de stock.
type StockResponse struct {
	Mensaje       string `json:"mensaje"`
	IDProducto    int64  `json:"id_producto"`
	NuevaCantidad int    `json:"nuevaCantidad"`
}

// ProductoResponse representación de lectura de un producto.
type ProductoResponse struct {
	IDProducto  int64           `json:"id_producto"`
	Nombre      string          `json:"nombre"`
	Descripcion *string         `json:"descripcion,omitempty"`
	Cantidad    int             `json:"cantidad"`
	Precio      decimal.Decimal `json:"precio"`
	IDCategoria *int64          `json:"id_categoria,omitempty"`
	ImagenURL   *string         `json:"imagen_url,omitempty"`
}

// QRProductoResponse token QR del producto y su imagen en data URL.
type QRProductoResponse struct {
	IDProducto int64  `json:"id_producto"`
	CodigoQR   string `json:"codigoQR"`
	QRDataURL  string `json:"qrDataURL"`
}
