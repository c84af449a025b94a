package dto

// LoginRequest primera fase del login: correo y contraseña.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse respuesta de la primera fase: siempre exige 2FA.
type LoginResponse struct {
	Success    bool   `json:"success"`
	Require2FA bool   `json:"require2FA"`
	UserID     int64  `json:"userId"`
	Email      string `json:"email"`
	Nombre     string `json:"nombre"`
}

// Verify2FARequest segunda fase: código de 6 dígitos enviado por correo.
type Verify2FARequest struct {
	UserID int64  `json:"userId"`
	Codigo string `json:"codigo"`
}

// Verify2FAResponse token de sesión tras verificar el código.
type Verify2FAResponse struct {
	Success bool            `json:"success"`
	Token   string          `json:"token"`
	User    UsuarioResponse `json:"user"`
}

// EmailRequest cuerpo con solo correo (forgot-username / forgot-password).
type EmailRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest token de recuperación + nueva contraseña.
type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// MensajeResponse respuesta genérica {success, message}.
type MensajeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// VerifyTokenResponse resultado de verificar un JWT o token de recuperación.
type VerifyTokenResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Email   string `json:"email,omitempty"`
	UserID  int64  `json:"userId,omitempty"`
	Rol     string `json:"rol,omitempty"`
}
