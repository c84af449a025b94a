// Package mail envío de correos transaccionales por SMTP.
package mail

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/tienduca/storefront-api/pkg/config"
)

// GomailSender implementa auth.Mailer sobre un servidor SMTP.
type GomailSender struct {
	dialer *gomail.Dialer
	from   string
	app    string
}

// NewGomailSender construye el remitente a partir de la configuración SMTP.
func NewGomailSender(cfg config.SMTPConfig, appName string) *GomailSender {
	return &GomailSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
		app:    appName,
	}
}

func (s *GomailSender) enviar(destino, asunto, cuerpoHTML string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", destino)
	m.SetHeader("Subject", asunto)
	m.SetBody("text/html", cuerpoHTML)
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("mail: enviar a %s: %w", destino, err)
	}
	return nil
}

// EnviarCodigo2FA envía el código de verificación del login.
func (s *GomailSender) EnviarCodigo2FA(destino, nombre, codigo string) error {
	cuerpo := fmt.Sprintf(
		`<p>Hola %s,</p>
		<p>Tu código de verificación para ingresar a %s es:</p>
		<h2 style="letter-spacing:4px">%s</h2>
		<p>El código vence en 5 minutos. Si no intentaste iniciar sesión, ignora este mensaje.</p>`,
		nombre, s.app, codigo)
	return s.enviar(destino, "Código de verificación", cuerpo)
}

// EnviarRecordatorioUsuario recuerda al destinatario con qué correo está
// registrado.
func (s *GomailSender) EnviarRecordatorioUsuario(destino, nombre string) error {
	cuerpo := fmt.Sprintf(
		`<p>Hola %s,</p>
		<p>Tu usuario de acceso a %s es este mismo correo: <b>%s</b>.</p>`,
		nombre, s.app, destino)
	return s.enviar(destino, "Recordatorio de usuario", cuerpo)
}

// EnviarEnlaceReset envía el enlace para restablecer la contraseña.
func (s *GomailSender) EnviarEnlaceReset(destino, nombre, enlace string) error {
	cuerpo := fmt.Sprintf(
		`<p>Hola %s,</p>
		<p>Para restablecer tu contraseña de %s haz clic en el siguiente enlace:</p>
		<p><a href="%s">%s</a></p>
		<p>El enlace vence en 1 hora. Si no solicitaste el cambio, ignora este mensaje.</p>`,
		nombre, s.app, enlace, enlace)
	return s.enviar(destino, "Restablecer contraseña", cuerpo)
}
