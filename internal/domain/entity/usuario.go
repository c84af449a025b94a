package entity

import "time"

// Usuario cuenta de acceso al sistema. Password siempre se guarda hasheado
// con bcrypt; las filas legadas en texto plano se toleran solo en login.
type Usuario struct {
	ID                   int64
	Nombre               string
	Email                string // único
	Password             string
	Rol                  string
	Telefono             *string
	Direccion            *string
	ResetPasswordToken   *string
	ResetPasswordExpires *time.Time
}
