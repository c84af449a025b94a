// Package usuarios administración de cuentas de usuario.
package usuarios

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/tienduca/storefront-api/internal/application/dto"
	"github.com/tienduca/storefront-api/internal/domain"
	"github.com/tienduca/storefront-api/internal/domain/entity"
	"github.com/tienduca/storefront-api/internal/domain/repository"
)

const bcryptCost = 12

// UseCase casos de uso de usuarios.
type UseCase struct {
	usuarioRepo repository.UsuarioRepository
}

// NewUseCase construye el caso de uso de usuarios.
func NewUseCase(usuarioRepo repository.UsuarioRepository) *UseCase {
	return &UseCase{usuarioRepo: usuarioRepo}
}

// Crear da de alta un usuario con la contraseña hasheada.
func (uc *UseCase) Crear(ctx context.Context, in dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error) {
	if strings.TrimSpace(in.Nombre) == "" || in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: nombre, email y password son requeridos", domain.ErrInvalidInput)
	}
	if !strings.Contains(in.Email, "@") {
		return nil, fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}
	if in.Rol == "" {
		in.Rol = "vendedor"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashear contraseña: %w", err)
	}
	u := &entity.Usuario{
		Nombre:    in.Nombre,
		Email:     in.Email,
		Password:  string(hash),
		Rol:       in.Rol,
		Telefono:  in.Telefono,
		Direccion: in.Direccion,
	}
	id, err := uc.usuarioRepo.Create(u)
	if err != nil {
		return nil, err
	}
	u.ID = id
	return toResponse(u), nil
}

// Listar devuelve todos los usuarios sin el campo de contraseña.
func (uc *UseCase) Listar(ctx context.Context) ([]dto.UsuarioResponse, error) {
	list, err := uc.usuarioRepo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.UsuarioResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toResponse(u))
	}
	return items, nil
}

func toResponse(u *entity.Usuario) *dto.UsuarioResponse {
	return &dto.UsuarioResponse{
		ID:        u.ID,
		Nombre:    u.Nombre,
		Email:     u.Email,
		Rol:       u.Rol,
		Telefono:  u.Telefono,
		Direccion: u.Direccion,
	}
}
