package auth

// Mailer envía los correos transaccionales del flujo de autenticación.
type Mailer interface {
	EnviarCodigo2FA(destino, nombre, codigo string) error
	EnviarRecordatorioUsuario(destino, nombre string) error
	EnviarEnlaceReset(destino, nombre, enlace string) error
}
