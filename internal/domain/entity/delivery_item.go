package entity

// DeliveryItem representa una línea de una nota de entrega.
//
// Invariante: BalanceQty = OrderedQty - DeliveredQty. El balance se
// recalcula cada vez que cambia alguna de las dos cantidades y nunca se
// edita de forma independiente. Puede ser negativo (entregas por encima
// de lo pedido); no se aplica clamping.
type DeliveryItem struct {
	ID             string
	DeliveryNoteID string
	LineNo         int // posición de la línea dentro de la nota (1..n)
	ItemName       string
	OrderedQty     int64
	DeliveredQty   int64
	BalanceQty     int64
}

// NewDeliveryItem construye una línea con el balance ya calculado.
func NewDeliveryItem(name string, ordered, delivered int64) *DeliveryItem {
	item := &DeliveryItem{ItemName: name}
	item.SetQuantities(ordered, delivered)
	return item
}

// SetQuantities fija ambas cantidades y recalcula el balance.
func (i *DeliveryItem) SetQuantities(ordered, delivered int64) {
	i.OrderedQty = ordered
	i.DeliveredQty = delivered
	i.recalcBalance()
}

// SetOrderedQty actualiza la cantidad pedida y recalcula el balance.
func (i *DeliveryItem) SetOrderedQty(ordered int64) {
	i.OrderedQty = ordered
	i.recalcBalance()
}

// SetDeliveredQty actualiza la cantidad entregada y recalcula el balance.
func (i *DeliveryItem) SetDeliveredQty(delivered int64) {
	i.DeliveredQty = delivered
	i.recalcBalance()
}

func (i *DeliveryItem) recalcBalance() {
	i.BalanceQty = i.OrderedQty - i.DeliveredQty
}
