package entity

import "time"

// DeliveryNote representa la cabecera de una nota de entrega.
//
// NoteNumber es único a nivel global y su sufijo numérico es creciente
// dentro del prefijo del año (DN<año>-NNNN). FinancialYear se deriva una
// sola vez al crear la nota y no se recalcula después.
type DeliveryNote struct {
	ID            string
	NoteNumber    string
	CustomerID    string
	Customer      *Customer // hidratado en lecturas; nil si no se cargó
	IssueDate     time.Time
	FinancialYear string
	CreatedAt     time.Time
	Items         []*DeliveryItem
}
