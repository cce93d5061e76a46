package controllers

import (
	"errors"
	"strconv"
	"time"

	"qrmenu/entity"
	"qrmenu/pkg/resp"
	"qrmenu/repository"
	"qrmenu/services"
	"qrmenu/utils"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	Service *services.OrderService
}

func NewOrderController(svc *services.OrderService) *OrderController {
	return &OrderController{Service: svc}
}

// ===== Create Order =====

// POST /api/orders (customer, no auth — menu sessions are anonymous)
func (oc *OrderController) Create(c *gin.Context) {
	var req services.SubmitOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	order, err := oc.Service.Submit(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingRestaurant),
			errors.Is(err, services.ErrRestaurantNotFound),
			errors.Is(err, services.ErrEmptyItems),
			errors.Is(err, services.ErrMissingTable),
			errors.Is(err, services.ErrBadQuantity),
			errors.Is(err, services.ErrBadPrice):
			resp.BadRequest(c, err.Error())
		default:
			resp.ServerError(c, err)
		}
		return
	}
	resp.Created(c, order)
}

// ===== Dashboard list =====

// GET /api/orders?restaurantId=&status=&from=&to=
func (oc *OrderController) List(c *gin.Context) {
	restIDStr := c.Query("restaurantId")
	if restIDStr == "" {
		resp.BadRequest(c, "restaurantId is required")
		return
	}
	restID64, err := strconv.ParseUint(restIDStr, 10, 64)
	if err != nil {
		resp.BadRequest(c, "restaurantId must be numeric")
		return
	}
	restID := uint(restID64)

	// เจ้าของดูได้เฉพาะร้านตัวเอง
	if utils.CurrentUserID(c) != restID {
		resp.Forbidden(c, "forbidden")
		return
	}

	var f repository.OrderFilter
	if s := c.Query("status"); s != "" {
		st := entity.OrderStatus(s)
		if !st.Valid() {
			resp.BadRequest(c, "Invalid status")
			return
		}
		f.Status = &st
	}
	if v := c.Query("from"); v != "" {
		t, err := parseDay(v)
		if err != nil {
			resp.BadRequest(c, "from must be a date")
			return
		}
		f.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := parseDay(v)
		if err != nil {
			resp.BadRequest(c, "to must be a date")
			return
		}
		f.To = &t
	}

	orders, err := oc.Service.ListForRestaurant(restID, f)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, orders)
}

func parseDay(v string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, v)
}

// ===== Detail =====

// GET /api/orders/:id (ลูกค้าใช้ดูใบยืนยัน order ของตัวเอง)
func (oc *OrderController) Detail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "invalid order id")
		return
	}

	order, err := oc.Service.Get(uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			resp.NotFound(c, "Order not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, order)
}

// ===== Status update =====

type UpdateStatusReq struct {
	Status entity.OrderStatus `json:"status"`
}

// PUT /api/orders/:id
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "invalid order id")
		return
	}

	var req UpdateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	// ตรวจสิทธิ์ร้านก่อนแก้สถานะ
	existing, err := oc.Service.Get(uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			resp.NotFound(c, "Order not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	if existing.RestaurantID != utils.CurrentUserID(c) {
		resp.Forbidden(c, "forbidden")
		return
	}

	order, err := oc.Service.ChangeStatus(uint(id), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			resp.BadRequest(c, "Invalid status")
		case errors.Is(err, services.ErrTerminalState):
			resp.BadRequest(c, "order is already "+string(existing.Status))
		case errors.Is(err, repository.ErrOrderNotFound):
			resp.NotFound(c, "Order not found")
		default:
			resp.ServerError(c, err)
		}
		return
	}
	resp.OK(c, order)
}
