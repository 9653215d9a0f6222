package controllers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/khoalevan2535/Goldenbamboo-sub001/entity"
	"github.com/khoalevan2535/Goldenbamboo-sub001/pkg/resp"
	"github.com/khoalevan2535/Goldenbamboo-sub001/services"
	"github.com/khoalevan2535/Goldenbamboo-sub001/utils"
)

type TableController struct {
	Tables *services.TableService
}

func NewTableController(tables *services.TableService) *TableController {
	return &TableController{Tables: tables}
}

// GET /branches/:id/tables
func (tc *TableController) ListForBranch(c *gin.Context) {
	tables, err := tc.Tables.ListForBranch(pathID(c, "id"))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": tables})
}

// PATCH /tables/:id/status — the manual override, manager only.
func (tc *TableController) OverrideStatus(c *gin.Context) {
	var req struct {
		Status entity.TableStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if !req.Status.Valid() {
		resp.BadRequest(c, "unknown table status")
		return
	}

	actor := fmt.Sprintf("account %d", utils.CurrentAccountID(c))
	table, err := tc.Tables.OverrideStatus(pathID(c, "id"), req.Status, actor)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, table)
}
