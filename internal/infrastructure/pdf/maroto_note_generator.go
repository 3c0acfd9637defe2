// Package pdf implementa la representación imprimible de la nota de
// entrega (la aplicación de escritorio original imprimía en papel A5).
//
// Layout de la página A5:
//
//	┌───────────────────────────────────────────────┐
//	│  HEADER: NOTA DE ENTREGA │ N° + Fecha + A.F.  │
//	│  ───────────────────────────────────────────  │
//	│  CLIENTE: nombre, dirección, contacto         │
//	│  ───────────────────────────────────────────  │
//	│  TABLA: # | Artículo | Pedido | Entr. | Bal.  │
//	│  ───────────────────────────────────────────  │
//	│  FIRMAS: Entregado por / Recibido por         │
//	└───────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/aarsoma/deliverynote-api/internal/application/delivery"
	"github.com/aarsoma/deliverynote-api/internal/domain/entity"
)

var _ delivery.NotePDFGenerator = (*MarotoNoteGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoNoteGenerator implementa delivery.NotePDFGenerator usando Maroto v2.
type MarotoNoteGenerator struct{}

// NewMarotoNoteGenerator construye el generador.
func NewMarotoNoteGenerator() *MarotoNoteGenerator { return &MarotoNoteGenerator{} }

// GenerateNotePDF genera el PDF de la nota y devuelve sus bytes.
func (g *MarotoNoteGenerator) GenerateNotePDF(_ context.Context, note *entity.DeliveryNote) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Nota de entrega "+note.NoteNumber, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(note))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(note.Customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(note.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(signatureRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y número + fecha + año financiero (der).
func headerRow(note *entity.DeliveryNote) core.Row {
	fecha := note.IssueDate.Format("02/01/2006")

	return row.New(18).Add(
		col.New(6).Add(
			text.New("NOTA DE ENTREGA", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Año financiero: "+note.FinancialYear, props.Text{
				Size: 8, Top: 10, Color: colorGray,
			}),
		),
		col.New(6).Add(
			text.New(note.NoteNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 2,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

// customerRow: datos del cliente receptor.
func customerRow(customer *entity.Customer) core.Row {
	name, detail := "—", "—"
	if customer != nil {
		name = customer.Name
		detail = fmt.Sprintf("Dirección: %s   |   Contacto: %s   |   Tel: %s",
			nonEmpty(customer.Address, "—"),
			nonEmpty(customer.ContactPerson, "—"),
			nonEmpty(customer.Phone, "—"),
		)
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 5}),
			text.New(detail, props.Text{Size: 8, Top: 10, Color: colorGray}),
		),
	)
}

// tableHeaderRow cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}
	headerRight := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1, Align: align.Right}
	return row.New(6).Add(
		col.New(1).Add(text.New("#", header)),
		col.New(5).Add(text.New("Artículo", header)),
		col.New(2).Add(text.New("Pedido", headerRight)),
		col.New(2).Add(text.New("Entregado", headerRight)),
		col.New(2).Add(text.New("Balance", headerRight)),
	)
}

// tableItemRows una fila por línea de la nota.
func tableItemRows(items []*entity.DeliveryItem) []core.Row {
	cell := props.Text{Size: 8, Top: 1}
	cellRight := props.Text{Size: 8, Top: 1, Align: align.Right}
	rows := make([]core.Row, 0, len(items))
	for _, item := range items {
		rows = append(rows, row.New(5).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", item.LineNo), cell)),
			col.New(5).Add(text.New(item.ItemName, cell)),
			col.New(2).Add(text.New(fmt.Sprintf("%d", item.OrderedQty), cellRight)),
			col.New(2).Add(text.New(fmt.Sprintf("%d", item.DeliveredQty), cellRight)),
			col.New(2).Add(text.New(fmt.Sprintf("%d", item.BalanceQty), cellRight)),
		))
	}
	return rows
}

// signatureRow líneas de firma de entrega y recepción.
func signatureRow() core.Row {
	sig := props.Text{Size: 8, Top: 12, Color: colorGray}
	return row.New(20).Add(
		col.New(6).Add(text.New("Entregado por: ______________________", sig)),
		col.New(6).Add(text.New("Recibido por: ______________________", sig)),
	)
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
