package ubl_test

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aarsoma/deliverynote-api/internal/domain/entity"
	"github.com/aarsoma/deliverynote-api/internal/infrastructure/ubl"
)

func sampleNote() *entity.DeliveryNote {
	return &entity.DeliveryNote{
		ID:            "11111111-2222-3333-4444-555555555555",
		NoteNumber:    "DN2025-0042",
		CustomerID:    "c-1",
		Customer:      &entity.Customer{ID: "c-1", Name: "Construcciones Muñoz", Address: "Calle Mayor 1"},
		IssueDate:     time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC),
		FinancialYear: "2025-2026",
		Items: []*entity.DeliveryItem{
			{ID: "i-1", LineNo: 1, ItemName: "Tubo PVC 2\"", OrderedQty: 100, DeliveredQty: 60, BalanceQty: 40},
			{ID: "i-2", LineNo: 2, ItemName: "Codo PVC 2\"", OrderedQty: 50, DeliveredQty: 50, BalanceQty: 0},
		},
	}
}

func parseXML(t *testing.T, data []byte) *etree.Document {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(data), "el XML generado debe ser parseable")
	return doc
}

func TestExportNoteXML_Cabecera(t *testing.T) {
	out, err := ubl.NewDespatchBuilder().ExportNoteXML(sampleNote())
	require.NoError(t, err)

	doc := parseXML(t, out)
	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "DespatchAdvice", root.Tag)

	assert.Equal(t, "DN2025-0042", root.FindElement("cbc:ID").Text())
	assert.Equal(t, "11111111-2222-3333-4444-555555555555", root.FindElement("cbc:UUID").Text())
	assert.Equal(t, "2025-06-15", root.FindElement("cbc:IssueDate").Text())
	assert.Contains(t, root.FindElement("cbc:Note").Text(), "2025-2026")
}

func TestExportNoteXML_Cliente(t *testing.T) {
	out, err := ubl.NewDespatchBuilder().ExportNoteXML(sampleNote())
	require.NoError(t, err)

	doc := parseXML(t, out)
	name := doc.FindElement("//cac:DeliveryCustomerParty/cac:Party/cac:PartyName/cbc:Name")
	require.NotNil(t, name)
	assert.Equal(t, "Construcciones Muñoz", name.Text())
}

// TestExportNoteXML_Lineas cada línea de la nota produce una DespatchLine
// con entregado, pedido (en la referencia de pedido) y el balance como
// OutstandingQuantity.
func TestExportNoteXML_Lineas(t *testing.T) {
	out, err := ubl.NewDespatchBuilder().ExportNoteXML(sampleNote())
	require.NoError(t, err)

	doc := parseXML(t, out)
	lines := doc.FindElements("//cac:DespatchLine")
	require.Len(t, lines, 2)

	first := lines[0]
	assert.Equal(t, "1", first.FindElement("cbc:ID").Text())
	assert.Equal(t, "60", first.FindElement("cbc:DeliveredQuantity").Text())
	assert.Equal(t, "40", first.FindElement("cbc:OutstandingQuantity").Text())
	assert.Equal(t, "100", first.FindElement("cac:OrderLineReference/cbc:Quantity").Text())
	assert.Equal(t, "Tubo PVC 2\"", first.FindElement("cac:Item/cbc:Name").Text())
}

func TestExportNoteXML_SinClienteHidratado(t *testing.T) {
	note := sampleNote()
	note.Customer = nil

	out, err := ubl.NewDespatchBuilder().ExportNoteXML(note)
	require.NoError(t, err, "una nota sin cliente hidratado se exporta igualmente")

	doc := parseXML(t, out)
	assert.Nil(t, doc.FindElement("//cac:PartyName"))
}

func TestExportNoteXML_NotaNil(t *testing.T) {
	_, err := ubl.NewDespatchBuilder().ExportNoteXML(nil)
	assert.Error(t, err)
}
