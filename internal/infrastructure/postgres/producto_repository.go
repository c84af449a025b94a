package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tienduca/storefront-api/internal/domain"
	"github.com/tienduca/storefront-api/internal/domain/entity"
	"github.com/tienduca/storefront-api/internal/domain/repository"
)

var _ repository.ProductoRepository = (*ProductoRepo)(nil)

// ProductoRepo implementación del puerto ProductoRepository sobre PostgreSQL (usable con pool o tx).
type ProductoRepo struct {
	q Querier
}

// NewProductoRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductoRepository(q Querier) *ProductoRepo {
	return &ProductoRepo{q: q}
}

const productoCols = `id_producto, nombre, descripcion, cantidad, precio, id_categoria, imagen_url`

func scanProducto(row pgx.Row) (*entity.Producto, error) {
	var p entity.Producto
	err := row.Scan(&p.ID, &p.Nombre, &p.Descripcion, &p.Cantidad, &p.Precio, &p.IDCategoria, &p.ImagenURL)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto y devuelve su id.
func (r *ProductoRepo) Create(p *entity.Producto) (int64, error) {
	query := `
		INSERT INTO producto (nombre, descripcion, cantidad, precio, id_categoria, imagen_url)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id_producto`
	var id int64
	err := r.q.QueryRow(context.Background(), query,
		p.Nombre, p.Descripcion, p.Cantidad, p.Precio, p.IDCategoria, p.ImagenURL,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return 0, domain.ErrForeignKey
		}
		return 0, fmt.Errorf("insert producto: %w", err)
	}
	return id, nil
}

// GetByID obtiene un producto por id. Devuelve nil sin error si no existe.
func (r *ProductoRepo) GetByID(id int64) (*entity.Producto, error) {
	p, err := scanProducto(r.q.QueryRow(context.Background(),
		`SELECT `+productoCols+` FROM producto WHERE id_producto = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return p, nil
}

// GetByNombre obtiene un producto por nombre exacto.
func (r *ProductoRepo) GetByNombre(nombre string) (*entity.Producto, error) {
	p, err := scanProducto(r.q.QueryRow(context.Background(),
		`SELECT `+productoCols+` FROM producto WHERE nombre = $1`, nombre))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto by nombre: %w", err)
	}
	return p, nil
}

// GetByNombreForUpdate obtiene el producto y bloquea su fila (SELECT FOR UPDATE).
// La lectura de stock y su escritura posterior quedan dentro del mismo bloqueo.
func (r *ProductoRepo) GetByNombreForUpdate(nombre string) (*entity.Producto, error) {
	p, err := scanProducto(r.q.QueryRow(context.Background(),
		`SELECT `+productoCols+` FROM producto WHERE nombre = $1 FOR UPDATE`, nombre))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto for update: %w", err)
	}
	return p, nil
}

// GetByIDForUpdate versión por id de GetByNombreForUpdate.
func (r *ProductoRepo) GetByIDForUpdate(id int64) (*entity.Producto, error) {
	p, err := scanProducto(r.q.QueryRow(context.Background(),
		`SELECT `+productoCols+` FROM producto WHERE id_producto = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto for update: %w", err)
	}
	return p, nil
}

// GetByCodigoBarras resuelve el producto dueño de un código de barras.
func (r *ProductoRepo) GetByCodigoBarras(codigo string) (*entity.Producto, error) {
	query := `
		SELECT p.id_producto, p.nombre, p.descripcion, p.cantidad, p.precio, p.id_categoria, p.imagen_url
		FROM producto p
		JOIN codigo_barras cb ON cb.id_producto = p.id_producto
		WHERE cb.codigo = $1`
	p, err := scanProducto(r.q.QueryRow(context.Background(), query, codigo))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto by codigo: %w", err)
	}
	return p, nil
}

// List lista productos con paginación, nombre ascendente.
func (r *ProductoRepo) List(limit, offset int) ([]*entity.Producto, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+productoCols+` FROM producto ORDER BY nombre LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Producto
	for rows.Next() {
		var p entity.Producto
		if err := rows.Scan(&p.ID, &p.Nombre, &p.Descripcion, &p.Cantidad, &p.Precio, &p.IDCategoria, &p.ImagenURL); err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza los detalles del producto. No toca Cantidad: el stock se
// muta solo vía AjustarStock dentro de una transacción.
func (r *ProductoRepo) Update(p *entity.Producto) error {
	query := `
		UPDATE producto SET nombre = $2, descripcion = $3, precio = $4, id_categoria = $5, imagen_url = $6
		WHERE id_producto = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		p.ID, p.Nombre, p.Descripcion, p.Precio, p.IDCategoria, p.ImagenURL,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrForeignKey
		}
		return fmt.Errorf("update producto: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AjustarStock aplica el delta al contador de stock y devuelve la cantidad resultante.
func (r *ProductoRepo) AjustarStock(id int64, delta int) (int, error) {
	var cantidad int
	err := r.q.QueryRow(context.Background(),
		`UPDATE producto SET cantidad = cantidad + $1 WHERE id_producto = $2 RETURNING cantidad`,
		delta, id,
	).Scan(&cantidad)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("ajustar stock: %w", err)
	}
	return cantidad, nil
}

// Delete elimina un producto. Los códigos dependientes deben borrarse antes
// (DeleteCodigosDeProducto) para no violar las FKs.
func (r *ProductoRepo) Delete(id int64) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM producto WHERE id_producto = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrForeignKey
		}
		return fmt.Errorf("delete producto: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// InsertCodigoBarras asocia un código de barras al producto.
func (r *ProductoRepo) InsertCodigoBarras(c *entity.CodigoBarras) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO codigo_barras (codigo, id_producto) VALUES ($1, $2)`, c.Codigo, c.IDProducto)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert codigo_barras: %w", err)
	}
	return nil
}

// ExisteCodigoBarras verifica si un código ya está asignado a algún producto.
func (r *ProductoRepo) ExisteCodigoBarras(codigo string) (bool, error) {
	var existe bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM codigo_barras WHERE codigo = $1)`, codigo).Scan(&existe)
	if err != nil {
		return false, fmt.Errorf("existe codigo_barras: %w", err)
	}
	return existe, nil
}

// DeleteCodigosDeProducto borra los códigos de barras y QR del producto
// (limpieza referencial previa al delete del producto).
func (r *ProductoRepo) DeleteCodigosDeProducto(idProducto int64) error {
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM codigo_barras WHERE id_producto = $1`, idProducto); err != nil {
		return fmt.Errorf("delete codigo_barras: %w", err)
	}
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM codigo_qr WHERE id_producto = $1`, idProducto); err != nil {
		return fmt.Errorf("delete codigo_qr: %w", err)
	}
	return nil
}

// InsertCodigoQR asocia el token QR al producto. La unicidad la garantiza el
// constraint de la tabla.
func (r *ProductoRepo) InsertCodigoQR(c *entity.CodigoQR) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO codigo_qr (codigo_qr, id_producto) VALUES ($1, $2)`, c.Codigo, c.IDProducto)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert codigo_qr: %w", err)
	}
	return nil
}

// GetCodigoQR obtiene el token QR del producto.
func (r *ProductoRepo) GetCodigoQR(idProducto int64) (*entity.CodigoQR, error) {
	var c entity.CodigoQR
	err := r.q.QueryRow(context.Background(),
		`SELECT codigo_qr, id_producto FROM codigo_qr WHERE id_producto = $1`, idProducto,
	).Scan(&c.Codigo, &c.IDProducto)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get codigo_qr: %w", err)
	}
	return &c, nil
}
