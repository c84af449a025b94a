package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tienduca/storefront-api/internal/domain"
	"github.com/tienduca/storefront-api/internal/domain/entity"
	"github.com/tienduca/storefront-api/internal/domain/repository"
)

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// UsuarioRepo implementación de UsuarioRepository sobre PostgreSQL.
type UsuarioRepo struct {
	q Querier
}

// NewUsuarioRepository construye el adaptador de usuarios. Pasar pool o tx (Querier).
func NewUsuarioRepository(q Querier) *UsuarioRepo {
	return &UsuarioRepo{q: q}
}

const usuarioCols = `id, nombre, email, password, rol, telefono, direccion, reset_password_token, reset_password_expires`

func scanUsuario(row pgx.Row) (*entity.Usuario, error) {
	var u entity.Usuario
	err := row.Scan(&u.ID, &u.Nombre, &u.Email, &u.Password, &u.Rol,
		&u.Telefono, &u.Direccion, &u.ResetPasswordToken, &u.ResetPasswordExpires)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create persiste un usuario nuevo (password ya hasheado) y devuelve su id.
func (r *UsuarioRepo) Create(u *entity.Usuario) (int64, error) {
	var id int64
	err := r.q.QueryRow(context.Background(),
		`INSERT INTO usuarios (nombre, email, password, rol, telefono, direccion)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		u.Nombre, u.Email, u.Password, u.Rol, u.Telefono, u.Direccion,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrDuplicate
		}
		return 0, fmt.Errorf("insert usuario: %w", err)
	}
	return id, nil
}

// GetByID obtiene un usuario por id. Nil sin error si no existe.
func (r *UsuarioRepo) GetByID(id int64) (*entity.Usuario, error) {
	u, err := scanUsuario(r.q.QueryRow(context.Background(),
		`SELECT `+usuarioCols+` FROM usuarios WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return u, nil
}

// GetByEmail obtiene un usuario por email.
func (r *UsuarioRepo) GetByEmail(email string) (*entity.Usuario, error) {
	u, err := scanUsuario(r.q.QueryRow(context.Background(),
		`SELECT `+usuarioCols+` FROM usuarios WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario by email: %w", err)
	}
	return u, nil
}

// List lista todos los usuarios sin el hash del password.
func (r *UsuarioRepo) List() ([]*entity.Usuario, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, nombre, email, rol, telefono, direccion FROM usuarios ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list usuarios: %w", err)
	}
	defer rows.Close()
	var list []*entity.Usuario
	for rows.Next() {
		var u entity.Usuario
		if err := rows.Scan(&u.ID, &u.Nombre, &u.Email, &u.Rol, &u.Telefono, &u.Direccion); err != nil {
			return nil, fmt.Errorf("scan usuario: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// SetResetToken guarda el token de recuperación y su expiración.
func (r *UsuarioRepo) SetResetToken(email, token string, expires time.Time) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE usuarios SET reset_password_token = $1, reset_password_expires = $2 WHERE email = $3`,
		token, expires, email)
	if err != nil {
		return fmt.Errorf("set reset token: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByResetToken devuelve el usuario solo si el token sigue vigente.
func (r *UsuarioRepo) GetByResetToken(token string) (*entity.Usuario, error) {
	u, err := scanUsuario(r.q.QueryRow(context.Background(),
		`SELECT `+usuarioCols+` FROM usuarios
		 WHERE reset_password_token = $1 AND reset_password_expires > NOW()`, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario by token: %w", err)
	}
	return u, nil
}

// UpdatePassword cambia el hash y limpia el token de recuperación.
func (r *UsuarioRepo) UpdatePassword(id int64, passwordHash string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE usuarios
		 SET password = $1, reset_password_token = NULL, reset_password_expires = NULL
		 WHERE id = $2`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
