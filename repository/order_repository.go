package repository

import (
	"errors"
	"time"

	"qrmenu/entity"

	"gorm.io/gorm"
)

var ErrOrderNotFound = errors.New("order not found")

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders (CRUD หลัก) ----------------

// POST /api/orders → สร้าง order พร้อม items ใน transaction เดียว
func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

// GET /api/orders/:id
func (r *OrderRepository) GetOrder(orderID uint) (*entity.Order, error) {
	return r.getOrder(r.DB, orderID)
}

// GetOrderTx reads inside the caller's transaction so a status change
// validates against the latest persisted row, not a stale copy.
func (r *OrderRepository) GetOrderTx(tx *gorm.DB, orderID uint) (*entity.Order, error) {
	return r.getOrder(tx, orderID)
}

func (r *OrderRepository) getOrder(db *gorm.DB, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := db.Preload("Items").First(&o, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

// GetByClientToken resolves an idempotency token to the order it created.
func (r *OrderRepository) GetByClientToken(token string) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.Preload("Items").Where("client_token = ?", token).First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

// ---------------- Dashboard listing ----------------

type OrderFilter struct {
	Status *entity.OrderStatus
	From   *time.Time
	To     *time.Time
}

// GET /api/orders?restaurantId= → รายการ order ของร้าน (ใหม่สุดก่อน)
func (r *OrderRepository) ListForRestaurant(restID uint, f OrderFilter) ([]entity.Order, error) {
	q := r.DB.Preload("Items").Where("restaurant_id = ?", restID)
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", *f.To)
	}

	var out []entity.Order
	err := q.Order("created_at DESC, id DESC").Find(&out).Error
	return out, err
}

// ---------------- Status update ----------------

// UpdateStatusGuard writes the new status only while the stored row is still
// non-terminal. Affected-rows = 0 means the order is gone or another writer
// already parked it in complete/cancelled.
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID uint, next entity.OrderStatus) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status NOT IN ?", orderID, entity.TerminalStatuses()).
		Update("status", next)
	return res.RowsAffected, res.Error
}
