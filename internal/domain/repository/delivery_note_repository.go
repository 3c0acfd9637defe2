package repository

import (
	"time"

	"github.com/aarsoma/deliverynote-api/internal/domain/entity"
)

// DeliveryNoteRepository define el puerto de persistencia para las notas de
// entrega y sus líneas. Las notas se crean una sola vez y nunca se
// actualizan ni se borran; las líneas solo se persisten junto a su nota.
type DeliveryNoteRepository interface {
	Create(note *entity.DeliveryNote) error
	CreateItem(item *entity.DeliveryItem) error
	GetByID(id string) (*entity.DeliveryNote, error)
	ListAll() ([]*entity.DeliveryNote, error)
	ListByCustomer(customerID string) ([]*entity.DeliveryNote, error)
	// ListByDateRange filtra por la porción de fecha de issue_date,
	// ambos extremos incluidos.
	ListByDateRange(start, end time.Time) ([]*entity.DeliveryNote, error)
	// MaxNoteNumber devuelve el mayor note_number con el prefijo dado
	// ("DN2025-"), o cadena vacía si no existe ninguno.
	MaxNoteNumber(yearPrefix string) (string, error)
	// CountByCustomer cuenta las notas que referencian al cliente.
	CountByCustomer(customerID string) (int64, error)
}
