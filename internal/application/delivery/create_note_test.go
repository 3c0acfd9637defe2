package delivery_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aarsoma/deliverynote-api/internal/application/delivery"
	"github.com/aarsoma/deliverynote-api/internal/application/dto"
	"github.com/aarsoma/deliverynote-api/internal/domain"
	"github.com/aarsoma/deliverynote-api/internal/domain/entity"
	"github.com/aarsoma/deliverynote-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// noteStore simula la tabla de notas; txNoteRepo acumula las escrituras de
// una "transacción" y solo las vuelca al store si el callback termina sin
// error, imitando el commit/rollback del TxRunner real.
// ──────────────────────────────────────────────────────────────────────────────

type noteStore struct {
	notes []*entity.DeliveryNote
	items []*entity.DeliveryItem

	// taken números ya ocupados que el MAX aún no refleja: simula a otro
	// escritor que ganó la carrera del número.
	taken map[string]bool
	// maxResponses respuestas de MaxNoteNumber por orden de llamada; al
	// agotarse se responde con el máximo real del store.
	maxResponses []string

	runCalls       int
	failItemAtLine int // si > 0, CreateItem falla en esa línea
}

type txNoteRepo struct {
	store        *noteStore
	pendingNotes []*entity.DeliveryNote
	pendingItems []*entity.DeliveryItem
}

func (r *txNoteRepo) Create(note *entity.DeliveryNote) error {
	if r.store.taken[note.NoteNumber] {
		return domain.ErrDuplicate
	}
	for _, existing := range r.store.notes {
		if existing.NoteNumber == note.NoteNumber {
			return domain.ErrDuplicate
		}
	}
	r.pendingNotes = append(r.pendingNotes, note)
	return nil
}

func (r *txNoteRepo) CreateItem(item *entity.DeliveryItem) error {
	if r.store.failItemAtLine > 0 && item.LineNo == r.store.failItemAtLine {
		return errors.New("fallo simulado al insertar la línea")
	}
	r.pendingItems = append(r.pendingItems, item)
	return nil
}

func (r *txNoteRepo) GetByID(string) (*entity.DeliveryNote, error)          { return nil, nil }
func (r *txNoteRepo) ListAll() ([]*entity.DeliveryNote, error)              { return nil, nil }
func (r *txNoteRepo) ListByCustomer(string) ([]*entity.DeliveryNote, error) { return nil, nil }
func (r *txNoteRepo) ListByDateRange(_, _ time.Time) ([]*entity.DeliveryNote, error) {
	return nil, nil
}
func (r *txNoteRepo) CountByCustomer(string) (int64, error) { return 0, nil }

func (r *txNoteRepo) MaxNoteNumber(yearPrefix string) (string, error) {
	if len(r.store.maxResponses) > 0 {
		resp := r.store.maxResponses[0]
		r.store.maxResponses = r.store.maxResponses[1:]
		return resp, nil
	}
	max := ""
	for _, note := range r.store.notes {
		if len(note.NoteNumber) >= len(yearPrefix) && note.NoteNumber[:len(yearPrefix)] == yearPrefix {
			if note.NoteNumber > max {
				max = note.NoteNumber
			}
		}
	}
	return max, nil
}

type fakeNoteTx struct {
	store *noteStore
}

func (tx *fakeNoteTx) Run(ctx context.Context, fn func(noteRepo repository.DeliveryNoteRepository) error) error {
	tx.store.runCalls++
	repo := &txNoteRepo{store: tx.store}
	if err := fn(repo); err != nil {
		return err // rollback: se descarta lo pendiente
	}
	tx.store.notes = append(tx.store.notes, repo.pendingNotes...)
	tx.store.items = append(tx.store.items, repo.pendingItems...)
	return nil
}

type stubCustomerRepo struct {
	customer *entity.Customer
}

func (r *stubCustomerRepo) Create(*entity.Customer) error { return nil }
func (r *stubCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	if r.customer != nil && r.customer.ID == id {
		return r.customer, nil
	}
	return nil, nil
}
func (r *stubCustomerRepo) List() ([]*entity.Customer, error) { return nil, nil }
func (r *stubCustomerRepo) Update(*entity.Customer) error     { return nil }
func (r *stubCustomerRepo) Delete(string) error               { return nil }

func buildCreateUC(store *noteStore, customer *entity.Customer) *delivery.CreateNoteUseCase {
	return delivery.NewCreateNoteUseCase(&fakeNoteTx{store: store}, &stubCustomerRepo{customer: customer})
}

func validRequest() dto.CreateDeliveryNoteRequest {
	return dto.CreateDeliveryNoteRequest{
		CustomerID: "c-1",
		IssueDate:  "2025-06-15",
		Items: []dto.DeliveryItemRequest{
			{ItemName: "Tubo PVC 2\"", OrderedQty: 100, DeliveredQty: 60},
			{ItemName: "Codo PVC 2\"", OrderedQty: 50, DeliveredQty: 50},
		},
	}
}

var testCustomer = &entity.Customer{ID: "c-1", Name: "Construcciones Muñoz"}

// ──────────────────────────────────────────────────────────────────────────────
// Creación: camino feliz
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateNote_PersisteNotaCompleta(t *testing.T) {
	store := &noteStore{}
	uc := buildCreateUC(store, testCustomer)

	resp, err := uc.CreateNote(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID, "la nota vuelve con su ID poblado")
	assert.Equal(t, "DN2025-0001", resp.NoteNumber,
		"la primera nota del año arranca en 0001")
	assert.Equal(t, "2025-2026", resp.FinancialYear,
		"junio de 2025 pertenece al año financiero 2025-2026")
	assert.Equal(t, "Construcciones Muñoz", resp.CustomerName)

	require.Len(t, store.notes, 1)
	require.Len(t, store.items, 2)
}

func TestCreateNote_LineasNumeradasYConBalance(t *testing.T) {
	store := &noteStore{}
	uc := buildCreateUC(store, testCustomer)

	resp, err := uc.CreateNote(context.Background(), validRequest())
	require.NoError(t, err)

	require.Len(t, resp.Items, 2)
	assert.NotEmpty(t, resp.Items[0].ID)
	assert.Equal(t, int64(40), resp.Items[0].BalanceQty)
	assert.Equal(t, int64(0), resp.Items[1].BalanceQty)

	assert.Equal(t, 1, store.items[0].LineNo)
	assert.Equal(t, 2, store.items[1].LineNo)
}

func TestCreateNote_SecuenciaContinuaDelMaximo(t *testing.T) {
	store := &noteStore{notes: []*entity.DeliveryNote{
		{ID: "n-1", NoteNumber: "DN2025-0041"},
		{ID: "n-2", NoteNumber: "DN2025-0042"},
	}}
	uc := buildCreateUC(store, testCustomer)

	resp, err := uc.CreateNote(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "DN2025-0043", resp.NoteNumber)
}

// TestCreateNote_AnioDelNumeroSigueALaFechaDeEmision el prefijo del número
// usa el año calendario de la fecha de emisión, no el del reloj.
func TestCreateNote_AnioDelNumeroSigueALaFechaDeEmision(t *testing.T) {
	store := &noteStore{}
	uc := buildCreateUC(store, testCustomer)

	in := validRequest()
	in.IssueDate = "2024-02-10"
	resp, err := uc.CreateNote(context.Background(), in)

	require.NoError(t, err)
	assert.Equal(t, "DN2024-0001", resp.NoteNumber)
	assert.Equal(t, "2023-2024", resp.FinancialYear,
		"febrero de 2024 cierra el año financiero 2023-2024")
}

func TestCreateNote_FechaVaciaUsaHoy(t *testing.T) {
	store := &noteStore{}
	uc := buildCreateUC(store, testCustomer)

	in := validRequest()
	in.IssueDate = ""
	resp, err := uc.CreateNote(context.Background(), in)

	require.NoError(t, err)
	today := time.Now()
	assert.Equal(t, today.Year(), resp.IssueDate.Year())
	assert.Equal(t, today.Month(), resp.IssueDate.Month())
	assert.Equal(t, today.Day(), resp.IssueDate.Day())
}

// ──────────────────────────────────────────────────────────────────────────────
// Atomicidad: o se persiste la nota completa o nada
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateNote_FalloEnLineaNoDejaRestos(t *testing.T) {
	store := &noteStore{failItemAtLine: 2}
	uc := buildCreateUC(store, testCustomer)

	_, err := uc.CreateNote(context.Background(), validRequest())

	require.Error(t, err)
	assert.Empty(t, store.notes, "la cabecera no debe quedar persistida")
	assert.Empty(t, store.items, "ninguna línea debe quedar persistida")
}

// ──────────────────────────────────────────────────────────────────────────────
// Carrera del número: reintento acotado
// ──────────────────────────────────────────────────────────────────────────────

// TestCreateNote_ReintentaTrasColision el primer intento calcula un número
// que otro escritor ya ocupó; la transacción se reintenta completa y la
// nota sale con el número siguiente.
func TestCreateNote_ReintentaTrasColision(t *testing.T) {
	store := &noteStore{
		taken:        map[string]bool{"DN2025-0001": true},
		maxResponses: []string{"", "DN2025-0001"}, // el primer MAX aún no ve al ganador
	}
	uc := buildCreateUC(store, testCustomer)

	resp, err := uc.CreateNote(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, "DN2025-0002", resp.NoteNumber)
	assert.Equal(t, 2, store.runCalls, "la colisión dispara exactamente un reintento")
	require.Len(t, store.notes, 1)
}

func TestCreateNote_ReintentosAgotadosDevuelveError(t *testing.T) {
	// El MAX nunca alcanza a los ganadores: todos los intentos chocan.
	store := &noteStore{
		taken:        map[string]bool{"DN2025-0001": true, "DN2025-0002": true, "DN2025-0003": true},
		maxResponses: []string{"", "DN2025-0001", "DN2025-0002"},
	}
	uc := buildCreateUC(store, testCustomer)

	_, err := uc.CreateNote(context.Background(), validRequest())

	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Equal(t, 3, store.runCalls, "los reintentos están acotados")
	assert.Empty(t, store.notes)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateNote_SinClienteFalla(t *testing.T) {
	uc := buildCreateUC(&noteStore{}, testCustomer)

	in := validRequest()
	in.CustomerID = ""
	_, err := uc.CreateNote(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateNote_SinLineasFalla(t *testing.T) {
	uc := buildCreateUC(&noteStore{}, testCustomer)

	in := validRequest()
	in.Items = nil
	_, err := uc.CreateNote(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateNote_LineaSinNombreFalla(t *testing.T) {
	uc := buildCreateUC(&noteStore{}, testCustomer)

	in := validRequest()
	in.Items[0].ItemName = "  "
	_, err := uc.CreateNote(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateNote_CantidadNegativaFalla(t *testing.T) {
	uc := buildCreateUC(&noteStore{}, testCustomer)

	in := validRequest()
	in.Items[0].OrderedQty = -1
	_, err := uc.CreateNote(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateNote_FechaMalFormadaFalla(t *testing.T) {
	uc := buildCreateUC(&noteStore{}, testCustomer)

	in := validRequest()
	in.IssueDate = "15/06/2025"
	_, err := uc.CreateNote(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateNote_ClienteInexistenteFalla(t *testing.T) {
	uc := buildCreateUC(&noteStore{}, nil)

	_, err := uc.CreateNote(context.Background(), validRequest())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestCreateNote_EntregaMayorQueLoPedidoEsValida el balance negativo es un
// estado legítimo (entrega por encima de lo pedido), no un error.
func TestCreateNote_EntregaMayorQueLoPedidoEsValida(t *testing.T) {
	uc := buildCreateUC(&noteStore{}, testCustomer)

	in := validRequest()
	in.Items = []dto.DeliveryItemRequest{{ItemName: "Cemento", OrderedQty: 10, DeliveredQty: 15}}
	resp, err := uc.CreateNote(context.Background(), in)

	require.NoError(t, err)
	assert.Equal(t, int64(-5), resp.Items[0].BalanceQty)
}
