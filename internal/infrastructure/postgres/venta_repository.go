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

var _ repository.VentaRepository = (*VentaRepo)(nil)

// VentaRepo implementación de VentaRepository sobre PostgreSQL (usable con pool o tx).
type VentaRepo struct {
	q Querier
}

// NewVentaRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewVentaRepository(q Querier) *VentaRepo {
	return &VentaRepo{q: q}
}

// InsertVenta crea la venta; fecha la asigna el servidor de BD.
func (r *VentaRepo) InsertVenta(tipoPago string) (*entity.Venta, error) {
	var v entity.Venta
	v.TipoPago = tipoPago
	err := r.q.QueryRow(context.Background(),
		`INSERT INTO venta (tipo_pago) VALUES ($1) RETURNING id_venta, fecha`, tipoPago,
	).Scan(&v.ID, &v.Fecha)
	if err != nil {
		return nil, fmt.Errorf("insert venta: %w", err)
	}
	return &v, nil
}

// InsertTicket crea el ticket 1:1 de la venta y devuelve su id.
func (r *VentaRepo) InsertTicket(codigoVenta string, idVenta int64) (int64, error) {
	var id int64
	err := r.q.QueryRow(context.Background(),
		`INSERT INTO ticket (codigo_venta, id_venta) VALUES ($1, $2) RETURNING id_ticket`,
		codigoVenta, idVenta,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrDuplicate
		}
		return 0, fmt.Errorf("insert ticket: %w", err)
	}
	return id, nil
}

const ventaTicketQuery = `
	SELECT v.id_venta, v.fecha, v.tipo_pago, t.id_ticket, t.codigo_venta
	FROM venta v
	JOIN ticket t ON v.id_venta = t.id_venta`

func scanVentaConTicket(row pgx.Row) (*repository.VentaConTicket, error) {
	var vt repository.VentaConTicket
	err := row.Scan(&vt.Venta.ID, &vt.Venta.Fecha, &vt.Venta.TipoPago, &vt.Ticket.ID, &vt.Ticket.CodigoVenta)
	if err != nil {
		return nil, err
	}
	vt.Ticket.IDVenta = vt.Venta.ID
	return &vt, nil
}

// GetByIDVenta obtiene venta + ticket por id de venta. Nil sin error si no existe.
func (r *VentaRepo) GetByIDVenta(idVenta int64) (*repository.VentaConTicket, error) {
	vt, err := scanVentaConTicket(r.q.QueryRow(context.Background(),
		ventaTicketQuery+` WHERE v.id_venta = $1`, idVenta))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get venta: %w", err)
	}
	return vt, nil
}

// GetByCodigoVenta obtiene venta + ticket por el código externo.
func (r *VentaRepo) GetByCodigoVenta(codigo string) (*repository.VentaConTicket, error) {
	vt, err := scanVentaConTicket(r.q.QueryRow(context.Background(),
		ventaTicketQuery+` WHERE t.codigo_venta = $1`, codigo))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get venta by codigo: %w", err)
	}
	return vt, nil
}

// UpdateTipoPago cambia el tipo de pago de la venta.
func (r *VentaRepo) UpdateTipoPago(idVenta int64, tipoPago string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE venta SET tipo_pago = $1 WHERE id_venta = $2`, tipoPago, idVenta)
	if err != nil {
		return fmt.Errorf("update tipo_pago: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteVenta elimina la fila de venta (último paso del deshacer).
func (r *VentaRepo) DeleteVenta(idVenta int64) error {
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM venta WHERE id_venta = $1`, idVenta); err != nil {
		return fmt.Errorf("delete venta: %w", err)
	}
	return nil
}

// DeleteTicket elimina el ticket.
func (r *VentaRepo) DeleteTicket(idTicket int64) error {
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM ticket WHERE id_ticket = $1`, idTicket); err != nil {
		return fmt.Errorf("delete ticket: %w", err)
	}
	return nil
}

// InsertLinea agrega una línea al ticket con su precio congelado.
func (r *VentaRepo) InsertLinea(l *entity.LineaTicket) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO ticket_producto (id_ticket, id_producto, cantidad, precio_unitario)
		 VALUES ($1, $2, $3, $4)`,
		l.IDTicket, l.IDProducto, l.Cantidad, l.PrecioUnitario)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrForeignKey
		}
		return fmt.Errorf("insert linea: %w", err)
	}
	return nil
}

// GetLinea obtiene una línea puntual del ticket. Nil sin error si no existe.
func (r *VentaRepo) GetLinea(idTicket, idProducto int64) (*entity.LineaTicket, error) {
	var l entity.LineaTicket
	err := r.q.QueryRow(context.Background(),
		`SELECT id_ticket, id_producto, cantidad, precio_unitario
		 FROM ticket_producto WHERE id_ticket = $1 AND id_producto = $2`,
		idTicket, idProducto,
	).Scan(&l.IDTicket, &l.IDProducto, &l.Cantidad, &l.PrecioUnitario)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get linea: %w", err)
	}
	return &l, nil
}

// GetLineas lista las líneas del ticket con el nombre del producto resuelto.
func (r *VentaRepo) GetLineas(idTicket int64) ([]repository.LineaResuelta, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT tp.id_ticket, tp.id_producto, tp.cantidad, tp.precio_unitario, p.nombre
		 FROM ticket_producto tp
		 JOIN producto p ON tp.id_producto = p.id_producto
		 WHERE tp.id_ticket = $1
		 ORDER BY p.nombre`, idTicket)
	if err != nil {
		return nil, fmt.Errorf("get lineas: %w", err)
	}
	defer rows.Close()
	var list []repository.LineaResuelta
	for rows.Next() {
		var l repository.LineaResuelta
		if err := rows.Scan(&l.IDTicket, &l.IDProducto, &l.Cantidad, &l.PrecioUnitario, &l.NombreProducto); err != nil {
			return nil, fmt.Errorf("scan linea: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// UpdateLinea fija la cantidad de la línea.
func (r *VentaRepo) UpdateLinea(idTicket, idProducto int64, cantidad int) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE ticket_producto SET cantidad = $1 WHERE id_ticket = $2 AND id_producto = $3`,
		cantidad, idTicket, idProducto)
	if err != nil {
		return fmt.Errorf("update linea: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteLinea elimina una línea puntual.
func (r *VentaRepo) DeleteLinea(idTicket, idProducto int64) error {
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM ticket_producto WHERE id_ticket = $1 AND id_producto = $2`,
		idTicket, idProducto); err != nil {
		return fmt.Errorf("delete linea: %w", err)
	}
	return nil
}

// DeleteLineas elimina todas las líneas del ticket.
func (r *VentaRepo) DeleteLineas(idTicket int64) error {
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM ticket_producto WHERE id_ticket = $1`, idTicket); err != nil {
		return fmt.Errorf("delete lineas: %w", err)
	}
	return nil
}

// List lista ventas (más recientes primero) con filtros parciales opcionales
// sobre nombre de producto y código de venta, combinados con AND.
func (r *VentaRepo) List(filtro repository.FiltroVentas) ([]*repository.VentaConTicket, error) {
	query := `
		SELECT v.id_venta, v.fecha, v.tipo_pago, t.id_ticket, t.codigo_venta
		FROM venta v
		JOIN ticket t ON v.id_venta = t.id_venta
		JOIN ticket_producto tp ON t.id_ticket = tp.id_ticket
		JOIN producto p ON tp.id_producto = p.id_producto`

	var conds []string
	var args []any
	if filtro.NombreProducto != "" {
		args = append(args, "%"+filtro.NombreProducto+"%")
		conds = append(conds, fmt.Sprintf("p.nombre ILIKE $%d", len(args)))
	}
	if filtro.CodigoVenta != "" {
		args = append(args, "%"+filtro.CodigoVenta+"%")
		conds = append(conds, fmt.Sprintf("t.codigo_venta ILIKE $%d", len(args)))
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += `
		GROUP BY v.id_venta, t.id_ticket, t.codigo_venta
		ORDER BY v.fecha DESC`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ventas: %w", err)
	}
	defer rows.Close()
	var list []*repository.VentaConTicket
	for rows.Next() {
		var vt repository.VentaConTicket
		if err := rows.Scan(&vt.Venta.ID, &vt.Venta.Fecha, &vt.Venta.TipoPago, &vt.Ticket.ID, &vt.Ticket.CodigoVenta); err != nil {
			return nil, fmt.Errorf("scan venta: %w", err)
		}
		vt.Ticket.IDVenta = vt.Venta.ID
		list = append(list, &vt)
	}
	return list, rows.Err()
}
