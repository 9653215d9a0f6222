package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/khoalevan2535/Goldenbamboo-sub001/entity"
	"github.com/khoalevan2535/Goldenbamboo-sub001/pkg/resp"
	"github.com/khoalevan2535/Goldenbamboo-sub001/services"
)

type OrderController struct {
	Orders *services.OrderService
	Items  *services.OrderItemService
}

func NewOrderController(orders *services.OrderService, items *services.OrderItemService) *OrderController {
	return &OrderController{Orders: orders, Items: items}
}

func pathID(c *gin.Context, name string) uint {
	id, _ := strconv.Atoi(c.Param(name))
	return uint(id)
}

// POST /orders
func (oc *OrderController) Create(c *gin.Context) {
	var req services.CreateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	order, err := oc.Orders.Create(&req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, order)
}

// GET /orders/:id
func (oc *OrderController) Detail(c *gin.Context) {
	order, err := oc.Orders.Detail(pathID(c, "id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, order)
}

// GET /branches/:id/orders
func (oc *OrderController) ListForBranch(c *gin.Context) {
	branchID := pathID(c, "id")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	var status *entity.OrderStatus
	if s := c.Query("status"); s != "" {
		st := entity.OrderStatus(s)
		if !st.Valid() {
			resp.BadRequest(c, "unknown order status")
			return
		}
		status = &st
	}

	items, total, err := oc.Orders.ListForBranch(branchID, status, page, limit)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items, "total": total, "page": page, "limit": limit})
}

// PATCH /orders/:id/status
func (oc *OrderController) ChangeStatus(c *gin.Context) {
	var req struct {
		Status entity.OrderStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	order, err := oc.Orders.Transition(pathID(c, "id"), req.Status)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, order)
}

// POST /orders/:id/pay
func (oc *OrderController) Pay(c *gin.Context) {
	var req struct {
		Total *int64 `json:"total"` // optional client-side total, server recomputes anyway
	}
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		resp.BadRequest(c, err.Error())
		return
	}

	order, err := oc.Orders.Pay(pathID(c, "id"), req.Total)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, order)
}

// POST /orders/:id/items
func (oc *OrderController) AddItem(c *gin.Context) {
	var req services.ItemIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	item, err := oc.Items.AddItem(pathID(c, "id"), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, item)
}

// PATCH /orders/:id/items/:itemId
func (oc *OrderController) UpdateItem(c *gin.Context) {
	var patch services.ItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	item, err := oc.Items.UpdateItem(pathID(c, "id"), pathID(c, "itemId"), patch)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, item)
}

// PATCH /orders/:id/items/:itemId/status
func (oc *OrderController) ChangeItemStatus(c *gin.Context) {
	var req struct {
		Status entity.OrderItemStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	item, err := oc.Items.ChangeStatus(pathID(c, "id"), pathID(c, "itemId"), req.Status)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, item)
}

// DELETE /orders/:id/items/:itemId
func (oc *OrderController) RemoveItem(c *gin.Context) {
	if err := oc.Items.Remove(pathID(c, "id"), pathID(c, "itemId")); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": true})
}
