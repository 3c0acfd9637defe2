package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aarsoma/deliverynote-api/internal/application/delivery"
	"github.com/aarsoma/deliverynote-api/internal/application/dto"
)

// DeliveryNoteHandler maneja las peticiones HTTP de notas de entrega (protegido).
type DeliveryNoteHandler struct {
	createUC   *delivery.CreateNoteUseCase
	queryUC    *delivery.QueryUseCase
	documentUC *delivery.DocumentUseCase
}

// NewDeliveryNoteHandler construye el handler.
func NewDeliveryNoteHandler(createUC *delivery.CreateNoteUseCase, queryUC *delivery.QueryUseCase, documentUC *delivery.DocumentUseCase) *DeliveryNoteHandler {
	return &DeliveryNoteHandler{createUC: createUC, queryUC: queryUC, documentUC: documentUC}
}

// Create POST /api/delivery-notes
func (h *DeliveryNoteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDeliveryNoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	note, err := h.createUC.CreateNote(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(note)
}

// List GET /api/delivery-notes
//
// Filtros mutuamente excluyentes por query string:
//
//	?customer_id=<id>          notas de un cliente
//	?date=2006-01-02           notas de un día
//	?from=...&to=...           notas de un rango (extremos incluidos)
//	(sin filtros)              todas las notas
func (h *DeliveryNoteHandler) List(c *fiber.Ctx) error {
	var (
		list []*dto.DeliveryNoteResponse
		err  error
	)
	switch {
	case c.Query("customer_id") != "":
		list, err = h.queryUC.ListByCustomer(c.Query("customer_id"))
	case c.Query("date") != "":
		list, err = h.queryUC.ListByDate(c.Query("date"))
	case c.Query("from") != "" || c.Query("to") != "":
		list, err = h.queryUC.ListByDateRange(c.Query("from"), c.Query("to"))
	default:
		list, err = h.queryUC.ListAll()
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// NextNumber GET /api/delivery-notes/next-number
func (h *DeliveryNoteHandler) NextNumber(c *fiber.Ctx) error {
	next, err := h.queryUC.NextNoteNumber()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(next)
}

// GetByID GET /api/delivery-notes/:id
func (h *DeliveryNoteHandler) GetByID(c *fiber.Ctx) error {
	note, err := h.queryUC.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(note)
}

// PDF GET /api/delivery-notes/:id/pdf
func (h *DeliveryNoteHandler) PDF(c *fiber.Ctx) error {
	data, filename, err := h.documentUC.NotePDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(data)
}

// XML GET /api/delivery-notes/:id/xml
func (h *DeliveryNoteHandler) XML(c *fiber.Ctx) error {
	data, filename, err := h.documentUC.NoteXML(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/xml")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
