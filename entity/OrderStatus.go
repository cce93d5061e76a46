package entity

// OrderStatus is the authoritative status enum for orders. Historically the
// values grew ad hoc (ready/billed were bolted on later), so membership and
// terminality live here instead of string comparisons at call sites.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusProcess   OrderStatus = "process"
	StatusReady     OrderStatus = "ready"
	StatusBilled    OrderStatus = "billed"
	StatusComplete  OrderStatus = "complete"
	StatusCancelled OrderStatus = "cancelled"
)

// AllStatuses lists every legal status value.
func AllStatuses() []OrderStatus {
	return []OrderStatus{
		StatusPending, StatusProcess, StatusReady,
		StatusBilled, StatusComplete, StatusCancelled,
	}
}

// TerminalStatuses are states no transition leaves.
func TerminalStatuses() []OrderStatus {
	return []OrderStatus{StatusComplete, StatusCancelled}
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcess, StatusReady, StatusBilled, StatusComplete, StatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) Terminal() bool {
	return s == StatusComplete || s == StatusCancelled
}
