package repository

import (
	"time"

	"github.com/tienduca/storefront-api/internal/domain/entity"
)

// UsuarioRepository puerto de persistencia para cuentas de usuario.
type UsuarioRepository interface {
	Create(u *entity.Usuario) (int64, error)
	GetByID(id int64) (*entity.Usuario, error)
	GetByEmail(email string) (*entity.Usuario, error)
	List() ([]*entity.Usuario, error)
	// SetResetToken guarda el token de recuperación y su expiración.
	SetResetToken(email, token string, expires time.Time) error
	// GetByResetToken devuelve el usuario solo si el token sigue vigente.
	GetByResetToken(token string) (*entity.Usuario, error)
	// UpdatePassword cambia el hash y limpia el token de recuperación.
	UpdatePassword(id int64, passwordHash string) error
}
