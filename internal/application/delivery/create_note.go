// Package delivery contiene los casos de uso de notas de entrega:
// creación atómica (cabecera + líneas + número secuencial), consultas de
// histórico y generación de documentos (PDF / XML).
package delivery

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aarsoma/deliverynote-api/internal/application/dto"
	"github.com/aarsoma/deliverynote-api/internal/domain"
	"github.com/aarsoma/deliverynote-api/internal/domain/entity"
	"github.com/aarsoma/deliverynote-api/internal/domain/fiscal"
	"github.com/aarsoma/deliverynote-api/internal/domain/numbering"
	"github.com/aarsoma/deliverynote-api/internal/domain/repository"
)

// issueDateLayout formato de fecha aceptado en las peticiones.
const issueDateLayout = "2006-01-02"

// maxNumberAttempts reintentos completos de la transacción cuando dos
// escritores calculan el mismo número y salta el constraint único.
const maxNumberAttempts = 3

// CreateNoteUseCase crea una nota de entrega con sus líneas en una sola
// transacción. El número se deriva del máximo existente del año dentro de
// la misma transacción que el INSERT; una colisión por carrera dispara un
// reintento acotado en lugar de perderse, como hacía el diseño original.
type CreateNoteUseCase struct {
	txRunner     TxRunner
	customerRepo repository.CustomerRepository
}

// NewCreateNoteUseCase construye el caso de uso.
func NewCreateNoteUseCase(txRunner TxRunner, customerRepo repository.CustomerRepository) *CreateNoteUseCase {
	return &CreateNoteUseCase{txRunner: txRunner, customerRepo: customerRepo}
}

// CreateNote valida la petición, secuencia el número y persiste la nota
// completa. Devuelve la nota con todos los identificadores poblados.
func (uc *CreateNoteUseCase) CreateNote(ctx context.Context, in dto.CreateDeliveryNoteRequest) (*dto.DeliveryNoteResponse, error) {
	if in.CustomerID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if strings.TrimSpace(item.ItemName) == "" || item.OrderedQty < 0 || item.DeliveredQty < 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	issueDate := time.Now()
	if in.IssueDate != "" {
		parsed, err := time.ParseInLocation(issueDateLayout, in.IssueDate, time.Local)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		issueDate = parsed
	}

	now := time.Now()
	note := &entity.DeliveryNote{
		ID:            uuid.New().String(),
		CustomerID:    customer.ID,
		Customer:      customer,
		IssueDate:     issueDate,
		FinancialYear: fiscal.Label(issueDate), // se fija al crear, nunca se recalcula
		CreatedAt:     now,
	}
	for i, it := range in.Items {
		item := entity.NewDeliveryItem(strings.TrimSpace(it.ItemName), it.OrderedQty, it.DeliveredQty)
		item.ID = uuid.New().String()
		item.DeliveryNoteID = note.ID
		item.LineNo = i + 1
		note.Items = append(note.Items, item)
	}

	year := issueDate.Year()
	for attempt := 1; ; attempt++ {
		err = uc.txRunner.Run(ctx, func(noteRepo repository.DeliveryNoteRepository) error {
			last, err := noteRepo.MaxNoteNumber(numbering.YearPrefix(year))
			if err != nil {
				return err
			}
			number, err := numbering.Next(last, year)
			if err != nil {
				return err
			}
			note.NoteNumber = number
			if err := noteRepo.Create(note); err != nil {
				return err
			}
			for _, item := range note.Items {
				if err := noteRepo.CreateItem(item); err != nil {
					return err
				}
			}
			return nil
		})
		if err == nil {
			return toNoteResponse(note), nil
		}
		if !errors.Is(err, domain.ErrDuplicate) || attempt >= maxNumberAttempts {
			return nil, err
		}
		// Otro escritor ganó el número: la transacción ya hizo rollback,
		// se recalcula el máximo y se reintenta completa.
	}
}
