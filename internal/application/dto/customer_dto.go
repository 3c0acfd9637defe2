package dto

import "time"

// SaveCustomerRequest alta o edición de un cliente. Con ID vacío se crea;
// con ID existente se actualiza (los timestamps los asigna el servidor).
type SaveCustomerRequest struct {
	ID            string `json:"id,omitempty"`
	Name          string `json:"name"`
	Address       string `json:"address"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
}

// CustomerResponse representación de un cliente en respuestas.
type CustomerResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	ContactPerson string    `json:"contact_person"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
