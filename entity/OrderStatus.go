package entity

type OrderStatus string

const (
	OrderCreated           OrderStatus = "CREATED"
	OrderWaitingForKitchen OrderStatus = "WAITING_FOR_KITCHEN"
	OrderInProgress        OrderStatus = "IN_PROGRESS"
	OrderPaid              OrderStatus = "PAID"
	OrderCompleted         OrderStatus = "COMPLETED"
	OrderCancelled         OrderStatus = "CANCELLED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderCreated, OrderWaitingForKitchen, OrderInProgress, OrderPaid, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// Terminal statuses free the table and close the order for good.
func (s OrderStatus) Terminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

// Editable reports whether line items may still be added to the order.
func (s OrderStatus) Editable() bool {
	return s == OrderCreated || s == OrderWaitingForKitchen
}
