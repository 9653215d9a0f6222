package services

import (
	"github.com/khoalevan2535/Goldenbamboo-sub001/entity"
	"github.com/khoalevan2535/Goldenbamboo-sub001/pkg/apperr"
)

// Allowed order edges: the linear happy path plus cancellation from any
// non-terminal state. Terminal states have no outgoing edges.
var orderEdges = map[entity.OrderStatus][]entity.OrderStatus{
	entity.OrderCreated:           {entity.OrderWaitingForKitchen, entity.OrderCancelled},
	entity.OrderWaitingForKitchen: {entity.OrderInProgress, entity.OrderCancelled},
	entity.OrderInProgress:        {entity.OrderPaid, entity.OrderCancelled},
	entity.OrderPaid:              {entity.OrderCompleted, entity.OrderCancelled},
}

// Item edges: the kitchen workflow. Once food is READY it can no longer be
// cancelled, only served.
var itemEdges = map[entity.OrderItemStatus][]entity.OrderItemStatus{
	entity.ItemPending:   {entity.ItemPreparing, entity.ItemCancelled},
	entity.ItemPreparing: {entity.ItemReady, entity.ItemCancelled},
	entity.ItemReady:     {entity.ItemServed},
}

func orderEdgeAllowed(from, to entity.OrderStatus) bool {
	for _, next := range orderEdges[from] {
		if next == to {
			return true
		}
	}
	return false
}

func itemEdgeAllowed(from, to entity.OrderItemStatus) bool {
	for _, next := range itemEdges[from] {
		if next == to {
			return true
		}
	}
	return false
}

func invalidOrderTransition(from, to entity.OrderStatus) error {
	return &apperr.InvalidTransitionError{Kind: "order", From: string(from), To: string(to)}
}

func invalidItemTransition(from, to entity.OrderItemStatus) error {
	return &apperr.InvalidTransitionError{Kind: "order item", From: string(from), To: string(to)}
}
