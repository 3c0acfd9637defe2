// Package ubl exporta notas de entrega como documento XML al estilo UBL
// DespatchAdvice, para archivo e intercambio con otros sistemas. El
// documento no va firmado.
package ubl

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"github.com/aarsoma/deliverynote-api/internal/application/delivery"
	"github.com/aarsoma/deliverynote-api/internal/domain/entity"
)

var _ delivery.NoteXMLExporter = (*DespatchBuilder)(nil)

// Namespaces UBL 2.1 (DespatchAdvice).
const (
	nsDespatch = "urn:oasis:names:specification:ubl:schema:xsd:DespatchAdvice-2"
	nsCBC      = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"
	nsCAC      = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
)

// DespatchBuilder construye el XML de la nota con etree.
type DespatchBuilder struct{}

// NewDespatchBuilder construye el exportador.
func NewDespatchBuilder() *DespatchBuilder { return &DespatchBuilder{} }

// ExportNoteXML serializa la nota completa (cabecera, cliente y líneas).
func (b *DespatchBuilder) ExportNoteXML(note *entity.DeliveryNote) ([]byte, error) {
	if note == nil {
		return nil, fmt.Errorf("ubl: nota vacía")
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("DespatchAdvice")
	root.CreateAttr("xmlns", nsDespatch)
	root.CreateAttr("xmlns:cbc", nsCBC)
	root.CreateAttr("xmlns:cac", nsCAC)

	root.CreateElement("cbc:UBLVersionID").SetText("2.1")
	root.CreateElement("cbc:ID").SetText(note.NoteNumber)
	root.CreateElement("cbc:UUID").SetText(note.ID)
	root.CreateElement("cbc:IssueDate").SetText(note.IssueDate.Format("2006-01-02"))
	root.CreateElement("cbc:Note").SetText("Año financiero " + note.FinancialYear)

	// Receptor (cliente de la nota)
	party := root.CreateElement("cac:DeliveryCustomerParty").CreateElement("cac:Party")
	if c := note.Customer; c != nil {
		party.CreateElement("cac:PartyName").CreateElement("cbc:Name").SetText(c.Name)
		addr := party.CreateElement("cac:PostalAddress")
		addr.CreateElement("cbc:StreetName").SetText(c.Address)
		contact := party.CreateElement("cac:Contact")
		contact.CreateElement("cbc:Name").SetText(c.ContactPerson)
		contact.CreateElement("cbc:Telephone").SetText(c.Phone)
		contact.CreateElement("cbc:ElectronicMail").SetText(c.Email)
	}

	// Una DespatchLine por línea de la nota: cantidad entregada en la
	// línea, cantidad pedida en la OrderLineReference y el balance como
	// OutstandingQuantity.
	for _, item := range note.Items {
		dline := root.CreateElement("cac:DespatchLine")
		dline.CreateElement("cbc:ID").SetText(strconv.Itoa(item.LineNo))
		dline.CreateElement("cbc:DeliveredQuantity").SetText(strconv.FormatInt(item.DeliveredQty, 10))
		dline.CreateElement("cbc:OutstandingQuantity").SetText(strconv.FormatInt(item.BalanceQty, 10))
		olr := dline.CreateElement("cac:OrderLineReference")
		olr.CreateElement("cbc:LineID").SetText(strconv.Itoa(item.LineNo))
		olr.CreateElement("cbc:Quantity").SetText(strconv.FormatInt(item.OrderedQty, 10))
		dline.CreateElement("cac:Item").CreateElement("cbc:Name").SetText(item.ItemName)
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("ubl: serializar nota %s: %w", note.NoteNumber, err)
	}
	return out, nil
}
