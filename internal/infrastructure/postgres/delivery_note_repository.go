package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aarsoma/deliverynote-api/internal/domain"
	"github.com/aarsoma/deliverynote-api/internal/domain/entity"
	"github.com/aarsoma/deliverynote-api/internal/domain/repository"
)

var _ repository.DeliveryNoteRepository = (*DeliveryNoteRepo)(nil)

// DeliveryNoteRepo implementación de DeliveryNoteRepository (usable con
// pool o tx). Las lecturas hidratan el cliente con un JOIN y las líneas
// con una sola consulta por lote, en lugar de una consulta por fila como
// hacía la aplicación original.
type DeliveryNoteRepo struct {
	q Querier
}

// NewDeliveryNoteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDeliveryNoteRepository(q Querier) *DeliveryNoteRepo {
	return &DeliveryNoteRepo{q: q}
}

// Create persiste la cabecera de la nota. Una violación del constraint
// único de note_number (carrera de numeración) devuelve ErrDuplicate.
func (r *DeliveryNoteRepo) Create(note *entity.DeliveryNote) error {
	query := `
		INSERT INTO delivery_notes (id, note_number, customer_id, issue_date, financial_year, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		note.ID, note.NoteNumber, note.CustomerID, note.IssueDate, note.FinancialYear, note.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert delivery note: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de la nota.
func (r *DeliveryNoteRepo) CreateItem(item *entity.DeliveryItem) error {
	query := `
		INSERT INTO delivery_items (id, delivery_note_id, line_no, item_name, ordered_qty, delivered_qty, balance_qty)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.DeliveryNoteID, item.LineNo, item.ItemName,
		item.OrderedQty, item.DeliveredQty, item.BalanceQty,
	)
	if err != nil {
		return fmt.Errorf("insert delivery item: %w", err)
	}
	return nil
}

// selectNote columnas de la cabecera más el cliente hidratado por JOIN.
const selectNote = `
	SELECT n.id, n.note_number, n.customer_id, n.issue_date, n.financial_year, n.created_at,
	       c.id, c.name, c.address, c.contact_person, c.phone, c.email, c.created_at, c.updated_at
	FROM delivery_notes n
	JOIN customers c ON c.id = n.customer_id`

// GetByID obtiene una nota completa por ID. Devuelve nil sin error si no existe.
func (r *DeliveryNoteRepo) GetByID(id string) (*entity.DeliveryNote, error) {
	row := r.q.QueryRow(context.Background(), selectNote+` WHERE n.id = $1`, id)
	note, err := scanNote(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery note: %w", err)
	}
	if err := r.loadItems([]*entity.DeliveryNote{note}); err != nil {
		return nil, err
	}
	return note, nil
}

// ListAll devuelve todas las notas, las más recientes primero.
func (r *DeliveryNoteRepo) ListAll() ([]*entity.DeliveryNote, error) {
	return r.list(selectNote + ` ORDER BY n.issue_date DESC`)
}

// ListByCustomer devuelve las notas de un cliente, las más recientes primero.
func (r *DeliveryNoteRepo) ListByCustomer(customerID string) ([]*entity.DeliveryNote, error) {
	return r.list(selectNote+` WHERE n.customer_id = $1 ORDER BY n.issue_date DESC`, customerID)
}

// ListByDateRange filtra por la porción de fecha de issue_date, ambos
// extremos incluidos.
func (r *DeliveryNoteRepo) ListByDateRange(start, end time.Time) ([]*entity.DeliveryNote, error) {
	return r.list(
		selectNote+` WHERE CAST(n.issue_date AS DATE) BETWEEN $1::date AND $2::date ORDER BY n.issue_date DESC`,
		start, end,
	)
}

// MaxNoteNumber devuelve el mayor note_number con el prefijo del año, o
// cadena vacía si el año aún no tiene notas. El orden lexicográfico
// coincide con el numérico mientras el ancho del sufijo no cambie dentro
// del año; al superar 9999 el sufijo se ensancha y sigue ordenando bien
// porque "10000" > "9999" se resuelve por longitud vía MAX sobre el
// sufijo numérico, no sobre el texto completo.
func (r *DeliveryNoteRepo) MaxNoteNumber(yearPrefix string) (string, error) {
	query := `
		SELECT note_number FROM delivery_notes
		WHERE note_number LIKE $1 || '%'
		ORDER BY length(note_number) DESC, note_number DESC
		LIMIT 1`
	var number string
	err := r.q.QueryRow(context.Background(), query, yearPrefix).Scan(&number)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("max note number: %w", err)
	}
	return number, nil
}

// CountByCustomer cuenta las notas que referencian al cliente.
func (r *DeliveryNoteRepo) CountByCustomer(customerID string) (int64, error) {
	var count int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM delivery_notes WHERE customer_id = $1`, customerID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count notes by customer: %w", err)
	}
	return count, nil
}

func (r *DeliveryNoteRepo) list(query string, args ...any) ([]*entity.DeliveryNote, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list delivery notes: %w", err)
	}
	defer rows.Close()
	var notes []*entity.DeliveryNote
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan delivery note: %w", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadItems(notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// loadItems hidrata las líneas de todas las notas con una sola consulta.
func (r *DeliveryNoteRepo) loadItems(notes []*entity.DeliveryNote) error {
	if len(notes) == 0 {
		return nil
	}
	ids := make([]string, 0, len(notes))
	byID := make(map[string]*entity.DeliveryNote, len(notes))
	for _, note := range notes {
		ids = append(ids, note.ID)
		byID[note.ID] = note
	}
	query := `
		SELECT id, delivery_note_id, line_no, item_name, ordered_qty, delivered_qty, balance_qty
		FROM delivery_items
		WHERE delivery_note_id = ANY($1)
		ORDER BY delivery_note_id, line_no`
	rows, err := r.q.Query(context.Background(), query, ids)
	if err != nil {
		return fmt.Errorf("list delivery items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var item entity.DeliveryItem
		if err := rows.Scan(&item.ID, &item.DeliveryNoteID, &item.LineNo, &item.ItemName,
			&item.OrderedQty, &item.DeliveredQty, &item.BalanceQty); err != nil {
			return fmt.Errorf("scan delivery item: %w", err)
		}
		if note, ok := byID[item.DeliveryNoteID]; ok {
			note.Items = append(note.Items, &item)
		}
	}
	return rows.Err()
}

// scanNote mapea una fila del SELECT con JOIN a la entidad.
func scanNote(row pgx.Row) (*entity.DeliveryNote, error) {
	var note entity.DeliveryNote
	var customer entity.Customer
	err := row.Scan(
		&note.ID, &note.NoteNumber, &note.CustomerID, &note.IssueDate, &note.FinancialYear, &note.CreatedAt,
		&customer.ID, &customer.Name, &customer.Address, &customer.ContactPerson,
		&customer.Phone, &customer.Email, &customer.CreatedAt, &customer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	note.Customer = &customer
	return &note, nil
}
