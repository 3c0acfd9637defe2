package dto

import "time"

// DeliveryItemRequest línea de una nota nueva. El balance no se recibe:
// siempre se calcula como ordered_qty - delivered_qty.
type DeliveryItemRequest struct {
	ItemName     string `json:"item_name"`
	OrderedQty   int64  `json:"ordered_qty"`
	DeliveredQty int64  `json:"delivered_qty"`
}

// CreateDeliveryNoteRequest alta de una nota de entrega con sus líneas.
// IssueDate es opcional (formato "2006-01-02"); vacío usa la fecha actual.
type CreateDeliveryNoteRequest struct {
	CustomerID string                `json:"customer_id"`
	IssueDate  string                `json:"issue_date,omitempty"`
	Items      []DeliveryItemRequest `json:"items"`
}

// DeliveryItemResponse línea de nota en respuestas.
type DeliveryItemResponse struct {
	ID           string `json:"id"`
	ItemName     string `json:"item_name"`
	OrderedQty   int64  `json:"ordered_qty"`
	DeliveredQty int64  `json:"delivered_qty"`
	BalanceQty   int64  `json:"balance_qty"`
}

// DeliveryNoteResponse nota completa en respuestas.
type DeliveryNoteResponse struct {
	ID            string                 `json:"id"`
	NoteNumber    string                 `json:"note_number"`
	CustomerID    string                 `json:"customer_id"`
	CustomerName  string                 `json:"customer_name,omitempty"`
	IssueDate     time.Time              `json:"issue_date"`
	FinancialYear string                 `json:"financial_year"`
	CreatedAt     time.Time              `json:"created_at"`
	Items         []DeliveryItemResponse `json:"items"`
}

// NextNoteNumberResponse vista previa del siguiente número disponible.
type NextNoteNumberResponse struct {
	NoteNumber string `json:"note_number"`
}
