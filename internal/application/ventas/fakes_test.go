package ventas_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tienduca/storefront-api/internal/domain"
	"github.com/tienduca/storefront-api/internal/domain/entity"
	"github.com/tienduca/storefront-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de prueba: un almacén en memoria con semántica transaccional
// (snapshot al iniciar, restauración ante error) para ejercitar el motor de
// ventas sin PostgreSQL.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	productos map[int64]*entity.Producto
	barras    map[string]int64
	ventas    map[int64]*entity.Venta
	tickets   map[int64]*entity.Ticket
	lineas    []*entity.LineaTicket // orden de inserción

	nextProducto int64
	nextVenta    int64
	nextTicket   int64
}

func newMemStore() *memStore {
	return &memStore{
		productos: make(map[int64]*entity.Producto),
		barras:    make(map[string]int64),
		ventas:    make(map[int64]*entity.Venta),
		tickets:   make(map[int64]*entity.Ticket),
	}
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	c.nextProducto, c.nextVenta, c.nextTicket = s.nextProducto, s.nextVenta, s.nextTicket
	for id, p := range s.productos {
		cp := *p
		c.productos[id] = &cp
	}
	for k, v := range s.barras {
		c.barras[k] = v
	}
	for id, v := range s.ventas {
		cv := *v
		c.ventas[id] = &cv
	}
	for id, t := range s.tickets {
		ct := *t
		c.tickets[id] = &ct
	}
	for _, l := range s.lineas {
		cl := *l
		c.lineas = append(c.lineas, &cl)
	}
	return c
}

func (s *memStore) restore(from *memStore) {
	*s = *from
}

// agregarProducto helper de seed para los tests.
func (s *memStore) agregarProducto(nombre string, cantidad int, precio float64) *entity.Producto {
	s.nextProducto++
	p := &entity.Producto{
		ID:       s.nextProducto,
		Nombre:   nombre,
		Cantidad: cantidad,
		Precio:   decimal.NewFromFloat(precio),
	}
	s.productos[p.ID] = p
	return p
}

// ── ProductoRepository ────────────────────────────────────────────────────────

type memProductoRepo struct{ s *memStore }

func (r *memProductoRepo) Create(p *entity.Producto) (int64, error) {
	for _, otro := range r.s.productos {
		if otro.Nombre == p.Nombre {
			return 0, domain.ErrDuplicate
		}
	}
	r.s.nextProducto++
	cp := *p
	cp.ID = r.s.nextProducto
	r.s.productos[cp.ID] = &cp
	return cp.ID, nil
}

func (r *memProductoRepo) GetByID(id int64) (*entity.Producto, error) {
	p, ok := r.s.productos[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductoRepo) GetByNombre(nombre string) (*entity.Producto, error) {
	for _, p := range r.s.productos {
		if p.Nombre == nombre {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductoRepo) GetByNombreForUpdate(nombre string) (*entity.Producto, error) {
	return r.GetByNombre(nombre)
}

func (r *memProductoRepo) GetByIDForUpdate(id int64) (*entity.Producto, error) {
	return r.GetByID(id)
}

func (r *memProductoRepo) GetByCodigoBarras(codigo string) (*entity.Producto, error) {
	id, ok := r.s.barras[codigo]
	if !ok {
		return nil, nil
	}
	return r.GetByID(id)
}

func (r *memProductoRepo) List(limit, offset int) ([]*entity.Producto, error) {
	var out []*entity.Producto
	for _, p := range r.s.productos {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memProductoRepo) Update(p *entity.Producto) error {
	actual, ok := r.s.productos[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cantidad := actual.Cantidad
	cp := *p
	cp.Cantidad = cantidad
	r.s.productos[p.ID] = &cp
	return nil
}

func (r *memProductoRepo) AjustarStock(id int64, delta int) (int, error) {
	p, ok := r.s.productos[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	p.Cantidad += delta
	return p.Cantidad, nil
}

func (r *memProductoRepo) Delete(id int64) error {
	if _, ok := r.s.productos[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.productos, id)
	return nil
}

func (r *memProductoRepo) InsertCodigoBarras(c *entity.CodigoBarras) error {
	if _, ok := r.s.barras[c.Codigo]; ok {
		return domain.ErrDuplicate
	}
	r.s.barras[c.Codigo] = c.IDProducto
	return nil
}

func (r *memProductoRepo) ExisteCodigoBarras(codigo string) (bool, error) {
	_, ok := r.s.barras[codigo]
	return ok, nil
}

func (r *memProductoRepo) DeleteCodigosDeProducto(idProducto int64) error {
	for codigo, id := range r.s.barras {
		if id == idProducto {
			delete(r.s.barras, codigo)
		}
	}
	return nil
}

func (r *memProductoRepo) InsertCodigoQR(c *entity.CodigoQR) error { return nil }

func (r *memProductoRepo) GetCodigoQR(idProducto int64) (*entity.CodigoQR, error) {
	return nil, nil
}

// ── VentaRepository ───────────────────────────────────────────────────────────

type memVentaRepo struct{ s *memStore }

func (r *memVentaRepo) InsertVenta(tipoPago string) (*entity.Venta, error) {
	r.s.nextVenta++
	v := &entity.Venta{ID: r.s.nextVenta, TipoPago: tipoPago}
	r.s.ventas[v.ID] = v
	return v, nil
}

func (r *memVentaRepo) InsertTicket(codigoVenta string, idVenta int64) (int64, error) {
	r.s.nextTicket++
	r.s.tickets[r.s.nextTicket] = &entity.Ticket{
		ID:          r.s.nextTicket,
		CodigoVenta: codigoVenta,
		IDVenta:     idVenta,
	}
	return r.s.nextTicket, nil
}

func (r *memVentaRepo) conTicket(t *entity.Ticket) *repository.VentaConTicket {
	v := r.s.ventas[t.IDVenta]
	if v == nil {
		return nil
	}
	return &repository.VentaConTicket{Venta: *v, Ticket: *t}
}

func (r *memVentaRepo) GetByIDVenta(idVenta int64) (*repository.VentaConTicket, error) {
	for _, t := range r.s.tickets {
		if t.IDVenta == idVenta {
			return r.conTicket(t), nil
		}
	}
	return nil, nil
}

func (r *memVentaRepo) GetByCodigoVenta(codigo string) (*repository.VentaConTicket, error) {
	for _, t := range r.s.tickets {
		if t.CodigoVenta == codigo {
			return r.conTicket(t), nil
		}
	}
	return nil, nil
}

func (r *memVentaRepo) UpdateTipoPago(idVenta int64, tipoPago string) error {
	v, ok := r.s.ventas[idVenta]
	if !ok {
		return domain.ErrNotFound
	}
	v.TipoPago = tipoPago
	return nil
}

func (r *memVentaRepo) DeleteVenta(idVenta int64) error {
	if _, ok := r.s.ventas[idVenta]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.ventas, idVenta)
	return nil
}

func (r *memVentaRepo) DeleteTicket(idTicket int64) error {
	if _, ok := r.s.tickets[idTicket]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.tickets, idTicket)
	return nil
}

func (r *memVentaRepo) InsertLinea(l *entity.LineaTicket) error {
	cl := *l
	r.s.lineas = append(r.s.lineas, &cl)
	return nil
}

func (r *memVentaRepo) GetLinea(idTicket, idProducto int64) (*entity.LineaTicket, error) {
	for _, l := range r.s.lineas {
		if l.IDTicket == idTicket && l.IDProducto == idProducto {
			cl := *l
			return &cl, nil
		}
	}
	return nil, nil
}

func (r *memVentaRepo) GetLineas(idTicket int64) ([]repository.LineaResuelta, error) {
	var out []repository.LineaResuelta
	for _, l := range r.s.lineas {
		if l.IDTicket != idTicket {
			continue
		}
		nombre := fmt.Sprintf("producto-%d", l.IDProducto)
		if p, ok := r.s.productos[l.IDProducto]; ok {
			nombre = p.Nombre
		}
		out = append(out, repository.LineaResuelta{LineaTicket: *l, NombreProducto: nombre})
	}
	return out, nil
}

func (r *memVentaRepo) UpdateLinea(idTicket, idProducto int64, cantidad int) error {
	for _, l := range r.s.lineas {
		if l.IDTicket == idTicket && l.IDProducto == idProducto {
			l.Cantidad = cantidad
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *memVentaRepo) DeleteLinea(idTicket, idProducto int64) error {
	for i, l := range r.s.lineas {
		if l.IDTicket == idTicket && l.IDProducto == idProducto {
			r.s.lineas = append(r.s.lineas[:i], r.s.lineas[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *memVentaRepo) DeleteLineas(idTicket int64) error {
	var rest []*entity.LineaTicket
	for _, l := range r.s.lineas {
		if l.IDTicket != idTicket {
			rest = append(rest, l)
		}
	}
	r.s.lineas = rest
	return nil
}

func (r *memVentaRepo) List(filtro repository.FiltroVentas) ([]*repository.VentaConTicket, error) {
	var out []*repository.VentaConTicket
	for _, t := range r.s.tickets {
		if filtro.CodigoVenta != "" &&
			!strings.Contains(strings.ToLower(t.CodigoVenta), strings.ToLower(filtro.CodigoVenta)) {
			continue
		}
		if filtro.NombreProducto != "" {
			coincide := false
			for _, l := range r.s.lineas {
				if l.IDTicket != t.ID {
					continue
				}
				p, ok := r.s.productos[l.IDProducto]
				if ok && strings.Contains(strings.ToLower(p.Nombre), strings.ToLower(filtro.NombreProducto)) {
					coincide = true
					break
				}
			}
			if !coincide {
				continue
			}
		}
		if vt := r.conTicket(t); vt != nil {
			out = append(out, vt)
		}
	}
	return out, nil
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

// memTxRunner imita la semántica commit/rollback: toma un snapshot del
// almacén y lo restaura si el callback falla.
type memTxRunner struct{ s *memStore }

func (r *memTxRunner) Run(ctx context.Context, fn func(
	productoRepo repository.ProductoRepository,
	ventaRepo repository.VentaRepository,
) error) error {
	snapshot := r.s.clone()
	if err := fn(&memProductoRepo{s: r.s}, &memVentaRepo{s: r.s}); err != nil {
		r.s.restore(snapshot)
		return err
	}
	return nil
}

// ── Analytics ─────────────────────────────────────────────────────────────────

// memAnalytics devuelve agregados precargados y registra el rango con el que
// se le consulta; las tres lecturas del reporte llegan en paralelo.
type memAnalytics struct {
	mu sync.Mutex

	total       decimal.Decimal
	masVendidos []repository.ProductoVendido
	porTipoPago []repository.ConteoTipoPago
	err         error

	inicio, fin time.Time
}

func (a *memAnalytics) registrar(inicio, fin time.Time) {
	a.mu.Lock()
	a.inicio, a.fin = inicio, fin
	a.mu.Unlock()
}

func (a *memAnalytics) rango() (time.Time, time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.inicio, a.fin
}

func (a *memAnalytics) TotalVendido(ctx context.Context, inicio, fin time.Time) (decimal.Decimal, error) {
	a.registrar(inicio, fin)
	return a.total, a.err
}

func (a *memAnalytics) ProductosMasVendidos(ctx context.Context, inicio, fin time.Time) ([]repository.ProductoVendido, error) {
	a.registrar(inicio, fin)
	return a.masVendidos, a.err
}

func (a *memAnalytics) VentasPorTipoPago(ctx context.Context, inicio, fin time.Time) ([]repository.ConteoTipoPago, error) {
	a.registrar(inicio, fin)
	return a.porTipoPago, a.err
}

func (a *memAnalytics) TopVendidos(ctx context.Context, limit int) ([]repository.ProductoResumen, error) {
	return nil, a.err
}

func (a *memAnalytics) ProductosRecientes(ctx context.Context, limit int) ([]repository.ProductoResumen, error) {
	return nil, a.err
}

func (a *memAnalytics) ProductosAgotando(ctx context.Context, umbral, limit int) ([]repository.ProductoResumen, error) {
	return nil, a.err
}
