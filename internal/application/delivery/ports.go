package delivery

import (
	"context"

	"github.com/aarsoma/deliverynote-api/internal/domain/entity"
	"github.com/aarsoma/deliverynote-api/internal/domain/repository"
)

// TxRunner ejecuta el callback con el repositorio de notas atado a una
// transacción. La secuencia del número y los INSERT de cabecera y líneas
// comparten transacción: o se persiste la nota completa o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(noteRepo repository.DeliveryNoteRepository) error) error
}

// NotePDFGenerator genera el documento imprimible de una nota de entrega.
// La nota llega con el cliente y las líneas ya hidratados.
type NotePDFGenerator interface {
	GenerateNotePDF(ctx context.Context, note *entity.DeliveryNote) ([]byte, error)
}

// NoteXMLExporter serializa una nota como documento XML de intercambio.
type NoteXMLExporter interface {
	ExportNoteXML(note *entity.DeliveryNote) ([]byte, error)
}
