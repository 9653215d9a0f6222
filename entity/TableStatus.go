package entity

type TableStatus string

const (
	TableAvailable TableStatus = "AVAILABLE"
	TableOccupied  TableStatus = "OCCUPIED"
	TableReserved  TableStatus = "RESERVED"
	TableCleaning  TableStatus = "CLEANING"
	TableInactive  TableStatus = "INACTIVE"
)

func (s TableStatus) Valid() bool {
	switch s {
	case TableAvailable, TableOccupied, TableReserved, TableCleaning, TableInactive:
		return true
	}
	return false
}

// Claimable reports whether an order may seat at a table in this status.
func (s TableStatus) Claimable() bool {
	return s == TableAvailable || s == TableReserved
}
