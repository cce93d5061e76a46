// services/order_lifecycle.go
package services

import (
	"errors"

	"qrmenu/entity"
)

var (
	ErrInvalidStatus = errors.New("invalid_status")
	ErrTerminalState = errors.New("terminal_state")
)

// ApplyTransition moves an order to the requested status. Owners may move
// freely between non-terminal states to correct mistakes; only complete and
// cancelled block further changes. Pure function — persistence and broadcast
// belong to the caller.
func ApplyTransition(o *entity.Order, requested entity.OrderStatus) (*entity.Order, error) {
	if !requested.Valid() {
		return nil, ErrInvalidStatus
	}
	if o.Status.Terminal() {
		return nil, ErrTerminalState
	}
	o.Status = requested
	return o, nil
}
