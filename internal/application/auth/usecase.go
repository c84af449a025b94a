// Package auth implementa el flujo de autenticación en dos fases: login con
// correo y contraseña seguido de un código 2FA enviado por correo, más la
// recuperación de usuario y contraseña.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tienduca/storefront-api/internal/application/dto"
	"github.com/tienduca/storefront-api/internal/domain"
	"github.com/tienduca/storefront-api/internal/domain/entity"
	"github.com/tienduca/storefront-api/internal/domain/repository"
	"github.com/tienduca/storefront-api/pkg/config"
	"github.com/tienduca/storefront-api/pkg/jwt"
	"github.com/tienduca/storefront-api/pkg/logger"
)

const (
	bcryptCost       = 12
	resetTokenVida   = time.Hour
	passwordMinlargo = 6
)

// UseCase casos de uso de autenticación.
type UseCase struct {
	usuarioRepo repository.UsuarioRepository
	codes       *CodeStore
	mailer      Mailer
	jwtCfg      config.JWTConfig
	frontendURL string
	log         *logger.Logger
}

// NewUseCase construye el caso de uso de autenticación.
func NewUseCase(usuarioRepo repository.UsuarioRepository, codes *CodeStore, mailer Mailer, jwtCfg config.JWTConfig, frontendURL string, log *logger.Logger) *UseCase {
	return &UseCase{
		usuarioRepo: usuarioRepo,
		codes:       codes,
		mailer:      mailer,
		jwtCfg:      jwtCfg,
		frontendURL: frontendURL,
		log:         log,
	}
}

// passwordCoincide compara contra el hash bcrypt. Las filas legadas guardan
// la contraseña en texto plano; se aceptan solo si el campo no parece un
// hash bcrypt.
func passwordCoincide(guardada, candidata string) bool {
	if strings.HasPrefix(guardada, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(guardada), []byte(candidata)) == nil
	}
	return guardada == candidata
}

// generarCodigo produce un código numérico de 6 dígitos con crypto/rand.
func generarCodigo() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("generar código 2FA: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Login primera fase: valida credenciales, genera el código 2FA y lo envía
// por correo. Nunca emite token en esta fase.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email y password son requeridos", domain.ErrInvalidInput)
	}
	u, err := uc.usuarioRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if u == nil || !passwordCoincide(u.Password, in.Password) {
		return nil, fmt.Errorf("%w: credenciales inválidas", domain.ErrUnauthorized)
	}

	codigo, err := generarCodigo()
	if err != nil {
		return nil, err
	}
	uc.codes.Guardar(u.ID, codigo)
	if err := uc.mailer.EnviarCodigo2FA(u.Email, u.Nombre, codigo); err != nil {
		uc.log.Error().Err(err).Str("email", u.Email).Msg("no se pudo enviar el código 2FA")
		return nil, fmt.Errorf("enviar código 2FA: %w", err)
	}

	return &dto.LoginResponse{
		Success:    true,
		Require2FA: true,
		UserID:     u.ID,
		Email:      u.Email,
		Nombre:     u.Nombre,
	}, nil
}

// Verify2FA segunda fase: consume el código pendiente y, si es válido, emite
// el JWT de sesión.
func (uc *UseCase) Verify2FA(ctx context.Context, in dto.Verify2FARequest) (*dto.Verify2FAResponse, error) {
	if in.UserID <= 0 || in.Codigo == "" {
		return nil, fmt.Errorf("%w: userId y codigo son requeridos", domain.ErrInvalidInput)
	}
	ok, expirado := uc.codes.Verificar(in.UserID, in.Codigo)
	if expirado {
		return nil, fmt.Errorf("%w: el código expiró, inicie sesión de nuevo", domain.ErrUnauthorized)
	}
	if !ok {
		return nil, fmt.Errorf("%w: código incorrecto", domain.ErrUnauthorized)
	}

	u, err := uc.usuarioRepo.GetByID(in.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("%w: usuario no encontrado", domain.ErrNotFound)
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, u.ID, u.Email, u.Rol, uc.jwtCfg.Issuer, uc.jwtCfg.Expiration)
	if err != nil {
		return nil, err
	}
	return &dto.Verify2FAResponse{
		Success: true,
		Token:   token,
		User:    toUsuarioResponse(u),
	}, nil
}

// ForgotUsername envía un recordatorio del nombre de usuario al correo. La
// respuesta es opaca: no revela si el correo existe.
func (uc *UseCase) ForgotUsername(ctx context.Context, email string) (*dto.MensajeResponse, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email es requerido", domain.ErrInvalidInput)
	}
	u, err := uc.usuarioRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if u != nil {
		if err := uc.mailer.EnviarRecordatorioUsuario(u.Email, u.Nombre); err != nil {
			uc.log.Error().Err(err).Str("email", u.Email).Msg("no se pudo enviar el recordatorio de usuario")
		}
	}
	return &dto.MensajeResponse{
		Success: true,
		Message: "Si el correo está registrado recibirá un mensaje con su usuario",
	}, nil
}

// ForgotPassword genera un token de recuperación de una hora y envía el
// enlace de restablecimiento. Respuesta opaca también aquí.
func (uc *UseCase) ForgotPassword(ctx context.Context, email string) (*dto.MensajeResponse, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email es requerido", domain.ErrInvalidInput)
	}
	u, err := uc.usuarioRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if u != nil {
		raw := make([]byte, 32)
		if _, err := rand.Read(raw); err != nil {
			return nil, fmt.Errorf("generar token de recuperación: %w", err)
		}
		token := hex.EncodeToString(raw)
		if err := uc.usuarioRepo.SetResetToken(u.Email, token, time.Now().Add(resetTokenVida)); err != nil {
			return nil, err
		}
		enlace := fmt.Sprintf("%s/reset-password/%s", strings.TrimRight(uc.frontendURL, "/"), token)
		if err := uc.mailer.EnviarEnlaceReset(u.Email, u.Nombre, enlace); err != nil {
			uc.log.Error().Err(err).Str("email", u.Email).Msg("no se pudo enviar el enlace de recuperación")
		}
	}
	return &dto.MensajeResponse{
		Success: true,
		Message: "Si el correo está registrado recibirá un enlace de recuperación",
	}, nil
}

// ResetPassword cambia la contraseña usando un token de recuperación vigente.
func (uc *UseCase) ResetPassword(ctx context.Context, in dto.ResetPasswordRequest) (*dto.MensajeResponse, error) {
	if in.Token == "" {
		return nil, fmt.Errorf("%w: token es requerido", domain.ErrInvalidInput)
	}
	if len(in.NewPassword) < passwordMinlargo {
		return nil, fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", domain.ErrInvalidInput, passwordMinlargo)
	}
	u, err := uc.usuarioRepo.GetByResetToken(in.Token)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("%w: token inválido o expirado", domain.ErrUnauthorized)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashear contraseña: %w", err)
	}
	if err := uc.usuarioRepo.UpdatePassword(u.ID, string(hash)); err != nil {
		return nil, err
	}
	return &dto.MensajeResponse{Success: true, Message: "Contraseña actualizada correctamente"}, nil
}

// VerifyToken valida un token: primero como JWT de sesión y, si no lo es,
// como token de recuperación vigente.
func (uc *UseCase) VerifyToken(ctx context.Context, token string) (*dto.VerifyTokenResponse, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: token es requerido", domain.ErrInvalidInput)
	}
	if claims, err := jwt.Parse(uc.jwtCfg.Secret, token); err == nil {
		return &dto.VerifyTokenResponse{
			Success: true,
			Message: "Token de sesión válido",
			Email:   claims.Email,
			UserID:  claims.UserID,
			Rol:     claims.Rol,
		}, nil
	}
	u, err := uc.usuarioRepo.GetByResetToken(token)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("%w: token inválido o expirado", domain.ErrUnauthorized)
	}
	return &dto.VerifyTokenResponse{
		Success: true,
		Message: "Token de recuperación válido",
		Email:   u.Email,
		UserID:  u.ID,
	}, nil
}

func toUsuarioResponse(u *entity.Usuario) dto.UsuarioResponse {
	return dto.UsuarioResponse{
		ID:        u.ID,
		Nombre:    u.Nombre,
		Email:     u.Email,
		Rol:       u.Rol,
		Telefono:  u.Telefono,
		Direccion: u.Direccion,
	}
}
