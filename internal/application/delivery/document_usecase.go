package delivery

import (
	"context"

	"github.com/aarsoma/deliverynote-api/internal/domain"
	"github.com/aarsoma/deliverynote-api/internal/domain/entity"
	"github.com/aarsoma/deliverynote-api/internal/domain/repository"
)

// DocumentUseCase genera los documentos de una nota: la representación
// imprimible en PDF y el XML de intercambio/archivo.
type DocumentUseCase struct {
	noteRepo repository.DeliveryNoteRepository
	pdfGen   NotePDFGenerator
	xmlExp   NoteXMLExporter
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(noteRepo repository.DeliveryNoteRepository, pdfGen NotePDFGenerator, xmlExp NoteXMLExporter) *DocumentUseCase {
	return &DocumentUseCase{noteRepo: noteRepo, pdfGen: pdfGen, xmlExp: xmlExp}
}

// NotePDF genera el PDF de la nota. Devuelve los bytes y el nombre de
// archivo sugerido (número de nota).
func (uc *DocumentUseCase) NotePDF(ctx context.Context, id string) ([]byte, string, error) {
	note, err := uc.load(id)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.pdfGen.GenerateNotePDF(ctx, note)
	if err != nil {
		return nil, "", err
	}
	return data, note.NoteNumber + ".pdf", nil
}

// NoteXML exporta la nota como documento XML.
func (uc *DocumentUseCase) NoteXML(id string) ([]byte, string, error) {
	note, err := uc.load(id)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.xmlExp.ExportNoteXML(note)
	if err != nil {
		return nil, "", err
	}
	return data, note.NoteNumber + ".xml", nil
}

func (uc *DocumentUseCase) load(id string) (*entity.DeliveryNote, error) {
	note, err := uc.noteRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, domain.ErrNotFound
	}
	return note, nil
}
