package services

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/khoalevan2535/Goldenbamboo-sub001/entity"
	"github.com/khoalevan2535/Goldenbamboo-sub001/pkg/apperr"
	"github.com/khoalevan2535/Goldenbamboo-sub001/repository"
	"github.com/khoalevan2535/Goldenbamboo-sub001/ws"
)

// TableService enforces "at most one non-terminal order per table". Claim
// and release are single conditional writes, never read-then-write, so the
// race window between two concurrent seatings is closed at the row level.
type TableService struct {
	DB   *gorm.DB
	Repo *repository.TableRepository
	Hub  *ws.EventHub
}

func NewTableService(db *gorm.DB, repo *repository.TableRepository, hub *ws.EventHub) *TableService {
	return &TableService{DB: db, Repo: repo, Hub: hub}
}

// Claim seats orderID at the table. Returns ConflictError when the table
// already holds a non-terminal order, naming that order when known.
func (s *TableService) Claim(tx *gorm.DB, tableID, orderID uint) error {
	affected, err := s.Repo.Claim(tx, tableID, orderID)
	if err != nil {
		return err
	}
	if affected == 1 {
		return nil
	}

	t, err := s.Repo.GetTable(tableID)
	if err != nil {
		return err
	}
	if t == nil {
		return apperr.NotFound("table", tableID)
	}
	holder := uint(0)
	if t.CurrentOrderID != nil {
		holder = *t.CurrentOrderID
	}
	return &apperr.ConflictError{TableID: tableID, OrderID: holder}
}

// Release frees the table into CLEANING once its order goes terminal;
// bringing it back to AVAILABLE is a separate operational step. Releasing a
// table the order no longer holds is a no-op, so retries and out-of-order
// terminal deliveries are harmless.
func (s *TableService) Release(tx *gorm.DB, tableID, orderID uint) error {
	_, err := s.Repo.Release(tx, tableID, orderID)
	return err
}

// OverrideStatus is the manual manager command; the only path allowed to
// move a table independently of its order. Idempotent and logged.
func (s *TableService) OverrideStatus(tableID uint, status entity.TableStatus, actor string) (*entity.Table, error) {
	if !status.Valid() {
		return nil, errors.New("invalid table status")
	}
	t, err := s.Repo.GetTable(tableID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperr.NotFound("table", tableID)
	}
	if t.Status == status {
		return t, nil
	}

	if err := s.Repo.SetStatus(tableID, status); err != nil {
		return nil, err
	}
	log.Printf("table %d status override %s -> %s by %s", tableID, t.Status, status, actor)

	t.Status = status
	t.CurrentOrderID = nil
	s.Hub.Publish(ws.BranchChannel(t.BranchID), ws.EventTableStatusChanged, map[string]any{
		"tableId": tableID,
		"status":  status,
	})
	return t, nil
}

func (s *TableService) ListForBranch(branchID uint) ([]entity.Table, error) {
	return s.Repo.ListForBranch(branchID)
}
