package delivery

import (
	"time"

	"github.com/aarsoma/deliverynote-api/internal/application/dto"
	"github.com/aarsoma/deliverynote-api/internal/domain"
	"github.com/aarsoma/deliverynote-api/internal/domain/entity"
	"github.com/aarsoma/deliverynote-api/internal/domain/numbering"
	"github.com/aarsoma/deliverynote-api/internal/domain/repository"
)

// QueryUseCase consultas de solo lectura sobre el histórico de notas.
type QueryUseCase struct {
	noteRepo repository.DeliveryNoteRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(noteRepo repository.DeliveryNoteRepository) *QueryUseCase {
	return &QueryUseCase{noteRepo: noteRepo}
}

// GetByID obtiene una nota completa (cliente y líneas incluidos).
func (uc *QueryUseCase) GetByID(id string) (*dto.DeliveryNoteResponse, error) {
	note, err := uc.noteRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, domain.ErrNotFound
	}
	return toNoteResponse(note), nil
}

// ListAll devuelve todas las notas, las más recientes primero.
func (uc *QueryUseCase) ListAll() ([]*dto.DeliveryNoteResponse, error) {
	notes, err := uc.noteRepo.ListAll()
	if err != nil {
		return nil, err
	}
	return toNoteResponses(notes), nil
}

// ListByCustomer devuelve las notas emitidas a un cliente.
func (uc *QueryUseCase) ListByCustomer(customerID string) ([]*dto.DeliveryNoteResponse, error) {
	if customerID == "" {
		return nil, domain.ErrInvalidInput
	}
	notes, err := uc.noteRepo.ListByCustomer(customerID)
	if err != nil {
		return nil, err
	}
	return toNoteResponses(notes), nil
}

// ListByDate devuelve las notas emitidas el día indicado ("2006-01-02").
func (uc *QueryUseCase) ListByDate(date string) ([]*dto.DeliveryNoteResponse, error) {
	day, err := time.ParseInLocation(issueDateLayout, date, time.Local)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	return uc.listRange(day, day)
}

// ListByDateRange devuelve las notas del rango, extremos incluidos.
func (uc *QueryUseCase) ListByDateRange(from, to string) ([]*dto.DeliveryNoteResponse, error) {
	start, err := time.ParseInLocation(issueDateLayout, from, time.Local)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	end, err := time.ParseInLocation(issueDateLayout, to, time.Local)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if end.Before(start) {
		return nil, domain.ErrInvalidInput
	}
	return uc.listRange(start, end)
}

// NextNoteNumber calcula el siguiente número disponible del año en curso.
// Es una vista previa para la pantalla de alta: el número definitivo se
// vuelve a secuenciar dentro de la transacción de creación.
func (uc *QueryUseCase) NextNoteNumber() (*dto.NextNoteNumberResponse, error) {
	year := time.Now().Year()
	last, err := uc.noteRepo.MaxNoteNumber(numbering.YearPrefix(year))
	if err != nil {
		return nil, err
	}
	number, err := numbering.Next(last, year)
	if err != nil {
		return nil, err
	}
	return &dto.NextNoteNumberResponse{NoteNumber: number}, nil
}

func (uc *QueryUseCase) listRange(start, end time.Time) ([]*dto.DeliveryNoteResponse, error) {
	notes, err := uc.noteRepo.ListByDateRange(start, end)
	if err != nil {
		return nil, err
	}
	return toNoteResponses(notes), nil
}

func toNoteResponses(notes []*entity.DeliveryNote) []*dto.DeliveryNoteResponse {
	out := make([]*dto.DeliveryNoteResponse, 0, len(notes))
	for _, note := range notes {
		out = append(out, toNoteResponse(note))
	}
	return out
}

func toNoteResponse(note *entity.DeliveryNote) *dto.DeliveryNoteResponse {
	resp := &dto.DeliveryNoteResponse{
		ID:            note.ID,
		NoteNumber:    note.NoteNumber,
		CustomerID:    note.CustomerID,
		IssueDate:     note.IssueDate,
		FinancialYear: note.FinancialYear,
		CreatedAt:     note.CreatedAt,
		Items:         make([]dto.DeliveryItemResponse, 0, len(note.Items)),
	}
	if note.Customer != nil {
		resp.CustomerName = note.Customer.Name
	}
	for _, item := range note.Items {
		resp.Items = append(resp.Items, dto.DeliveryItemResponse{
			ID:           item.ID,
			ItemName:     item.ItemName,
			OrderedQty:   item.OrderedQty,
			DeliveredQty: item.DeliveredQty,
			BalanceQty:   item.BalanceQty,
		})
	}
	return resp
}
