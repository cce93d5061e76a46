package services

import (
	"errors"

	"qrmenu/entity"
	"qrmenu/pkg/metrics"
	"qrmenu/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrMissingRestaurant  = errors.New("restaurantId is required")
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrEmptyItems         = errors.New("items is required")
	ErrMissingTable       = errors.New("tableNumber is required")
	ErrBadQuantity        = errors.New("quantity must be a positive integer")
	ErrBadPrice           = errors.New("price must be non-negative")
)

// Broadcaster delivers order events to a restaurant's live room.
type Broadcaster interface {
	Emit(restaurantID uint, event string, payload any)
}

const (
	EventNewOrder     = "new_order"
	EventOrderUpdated = "order_updated"
)

type OrderService struct {
	DB    *gorm.DB
	Repo  *repository.OrderRepository
	Users *repository.UserRepository
	Hub   Broadcaster
	Log   *logrus.Logger
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	users *repository.UserRepository,
	hub Broadcaster,
	log *logrus.Logger,
) *OrderService {
	return &OrderService{DB: db, Repo: repo, Users: users, Hub: hub, Log: log}
}

// ----- DTOs from Controller -----

type OrderItemIn struct {
	Name         string          `json:"name"`
	MenuItemName string          `json:"menuItemName"` // legacy field name, same snapshot
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	Note         string          `json:"note"`
}

type SubmitOrderReq struct {
	RestaurantID uint              `json:"restaurantId"`
	TableNumber  entity.TableLabel `json:"tableNumber"`
	CustomerName string            `json:"customerName"`
	Items        []OrderItemIn     `json:"items"`

	// optional idempotency token; same token returns the order it created
	ClientToken string `json:"clientToken"`

	// ignored on purpose: status is always forced to pending and the total
	// is recomputed from the item snapshots
	Status      string          `json:"status"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// ----- Intake gateway -----

// Submit turns a customer's cart into a persisted pending order and announces
// it to the restaurant's room. A failed broadcast never rolls the order back.
func (s *OrderService) Submit(req *SubmitOrderReq) (*entity.Order, error) {
	if req.RestaurantID == 0 {
		return nil, ErrMissingRestaurant
	}
	if len(req.Items) == 0 {
		return nil, ErrEmptyItems
	}
	if req.TableNumber == "" {
		return nil, ErrMissingTable
	}

	if req.ClientToken != "" {
		if existing, err := s.Repo.GetByClientToken(req.ClientToken); err == nil {
			return existing, nil
		} else if !errors.Is(err, repository.ErrOrderNotFound) {
			return nil, err
		}
	}

	ok, err := s.Users.RestaurantExists(req.RestaurantID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrRestaurantNotFound
	}

	total := decimal.Zero
	items := make([]entity.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		qty := it.Quantity
		if qty == 0 {
			qty = 1
		}
		if qty < 0 {
			return nil, ErrBadQuantity
		}
		if it.Price.IsNegative() {
			return nil, ErrBadPrice
		}
		name := it.MenuItemName
		if name == "" {
			name = it.Name
		}
		if name == "" {
			name = "Unknown Item"
		}

		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(qty))))
		items = append(items, entity.OrderItem{
			Name:      name,
			UnitPrice: it.Price,
			Qty:       qty,
			Note:      it.Note,
		})
	}

	order := entity.Order{
		TableNumber:  req.TableNumber,
		CustomerName: req.CustomerName,
		Status:       entity.StatusPending,
		TotalAmount:  total,
		RestaurantID: req.RestaurantID,
		Items:        items,
	}
	if req.ClientToken != "" {
		token := req.ClientToken
		order.ClientToken = &token
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Repo.CreateOrder(tx, &order)
	})
	if err != nil {
		return nil, err
	}

	metrics.OrdersCreated.Inc()
	s.emit(order.RestaurantID, EventNewOrder, &order)
	return &order, nil
}

// ----- Status gateway -----

// ChangeStatus applies an owner-initiated transition. Validation runs against
// the latest persisted row inside the transaction, and the guarded UPDATE
// re-checks it at the row, so two racing changes cannot both win silently.
func (s *OrderService) ChangeStatus(orderID uint, requested entity.OrderStatus) (*entity.Order, error) {
	var updated *entity.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		o, err := s.Repo.GetOrderTx(tx, orderID)
		if err != nil {
			return err
		}
		if _, err := ApplyTransition(o, requested); err != nil {
			return err
		}

		affected, err := s.Repo.UpdateStatusGuard(tx, o.ID, requested)
		if err != nil {
			return err
		}
		if affected == 0 {
			// another writer parked the order in a terminal state first
			return ErrTerminalState
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.StatusChanges.WithLabelValues(string(requested)).Inc()
	s.emit(updated.RestaurantID, EventOrderUpdated, updated)
	return updated, nil
}

// ----- Reads -----

func (s *OrderService) Get(orderID uint) (*entity.Order, error) {
	return s.Repo.GetOrder(orderID)
}

func (s *OrderService) ListForRestaurant(restID uint, f repository.OrderFilter) ([]entity.Order, error) {
	return s.Repo.ListForRestaurant(restID, f)
}

func (s *OrderService) emit(restID uint, event string, order *entity.Order) {
	if s.Hub == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil && s.Log != nil {
			s.Log.WithField("event", event).Errorf("broadcast failed: %v", r)
		}
	}()
	s.Hub.Emit(restID, event, order)
}
