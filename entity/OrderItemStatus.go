package entity

type OrderItemStatus string

const (
	ItemPending   OrderItemStatus = "PENDING"
	ItemPreparing OrderItemStatus = "PREPARING"
	ItemReady     OrderItemStatus = "READY"
	ItemServed    OrderItemStatus = "SERVED"
	ItemCancelled OrderItemStatus = "CANCELLED"
)

func (s OrderItemStatus) Valid() bool {
	switch s {
	case ItemPending, ItemPreparing, ItemReady, ItemServed, ItemCancelled:
		return true
	}
	return false
}
