package entity

import "time"

// Customer representa un cliente al que se le emiten notas de entrega.
// Solo el nombre es obligatorio; el resto son datos de contacto opcionales.
type Customer struct {
	ID            string
	Name          string
	Address       string
	ContactPerson string
	Phone         string
	Email         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
