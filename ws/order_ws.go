package ws

import (
	"encoding/json"
	"net/http"
	"sync"

	"qrmenu/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// OrderHub คือศูนย์กลางกระจาย order event ให้ dashboard/เมนูที่ join ห้องร้านอยู่
type OrderHub struct {
	clients    map[uint]map[*websocket.Conn]bool // restaurantID -> set of clients
	broadcast  chan OutboundEvent
	register   chan Subscription
	unregister chan Subscription
	direct     chan directMessage
	mu         sync.Mutex

	log            *logrus.Logger
	allowGuestJoin bool
}

// Subscription = การ join ห้องของร้าน (connection ละหนึ่งห้อง)
type Subscription struct {
	Conn         *websocket.Conn
	RestaurantID uint
	ConnID       string
}

// Event is the envelope every outbound message uses.
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// OutboundEvent = event ที่จะกระจายให้ทุก connection ในห้อง
type OutboundEvent struct {
	RestaurantID uint
	Event        Event
}

// directMessage targets a single connection (join acks/denials), so every
// write still goes through the one Run goroutine.
type directMessage struct {
	Conn  *websocket.Conn
	Event Event
}

func NewOrderHub(log *logrus.Logger, allowGuestJoin bool) *OrderHub {
	return &OrderHub{
		clients:        make(map[uint]map[*websocket.Conn]bool),
		broadcast:      make(chan OutboundEvent),
		register:       make(chan Subscription),
		unregister:     make(chan Subscription),
		direct:         make(chan directMessage),
		log:            log,
		allowGuestJoin: allowGuestJoin,
	}
}

// Emit fans an order event out to a restaurant's room. Fire-and-forget: no
// listener means the event is dropped, dashboards reconcile via the list API.
func (h *OrderHub) Emit(restaurantID uint, event string, payload any) {
	metrics.EventsBroadcast.WithLabelValues(event).Inc()
	h.broadcast <- OutboundEvent{
		RestaurantID: restaurantID,
		Event:        Event{Event: event, Data: payload},
	}
}

// Run คอยฟัง register/unregister/broadcast ตลอดเวลา
// Single consumer: per-restaurant delivery order follows emit order.
func (h *OrderHub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			if h.clients[sub.RestaurantID] == nil {
				h.clients[sub.RestaurantID] = make(map[*websocket.Conn]bool)
			}
			if !h.clients[sub.RestaurantID][sub.Conn] {
				h.clients[sub.RestaurantID][sub.Conn] = true
				metrics.ConnectedClients.Inc()
			}
			if err := sub.Conn.WriteJSON(Event{Event: "joined", Data: gin.H{"restaurantId": sub.RestaurantID}}); err != nil {
				h.log.WithError(err).Warn("ws join ack failed")
			}
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[sub.RestaurantID][sub.Conn]; ok {
				delete(h.clients[sub.RestaurantID], sub.Conn)
				metrics.ConnectedClients.Dec()
			}
			h.mu.Unlock()

		case msg := <-h.direct:
			h.mu.Lock()
			if err := msg.Conn.WriteJSON(msg.Event); err != nil {
				h.log.WithError(err).Warn("ws direct write failed")
			}
			h.mu.Unlock()

		case ev := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients[ev.RestaurantID] {
				if err := conn.WriteJSON(ev.Event); err != nil {
					h.log.WithError(err).Warn("ws write error, dropping client")
					conn.Close()
					delete(h.clients[ev.RestaurantID], conn)
					metrics.ConnectedClients.Dec()
				}
			}
			h.mu.Unlock()
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/orders
// Clients send {"action":"join","restaurantId":N} after connecting; until
// then no events are delivered.
func (h *OrderHub) HandleWebSocket(c *gin.Context) {
	// owner id จาก JWT (ถ้ามี) — middleware ใส่ไว้, guest = 0
	var ownerID uint
	if v, ok := c.Get("userId"); ok {
		ownerID = v.(uint)
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.WithError(err).Error("ws upgrade error")
		return
	}

	connID := uuid.NewString()
	h.log.WithFields(logrus.Fields{"conn": connID, "owner": ownerID}).Info("ws connected")

	go h.listen(conn, connID, ownerID)
}

type controlMessage struct {
	Action       string `json:"action"`
	RestaurantID uint   `json:"restaurantId"`
}

// listen = อ่าน control message จาก client จนกว่าจะหลุด
func (h *OrderHub) listen(conn *websocket.Conn, connID string, ownerID uint) {
	var joined uint

	defer func() {
		if joined != 0 {
			h.unregister <- Subscription{Conn: conn, RestaurantID: joined, ConnID: connID}
		}
		conn.Close()
		h.log.WithField("conn", connID).Info("ws disconnected")
	}()

	for {
		_, msgData, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg controlMessage
		if err := json.Unmarshal(msgData, &msg); err != nil {
			h.log.WithField("conn", connID).Warn("ws invalid payload")
			continue
		}
		if msg.Action != "join" || msg.RestaurantID == 0 {
			continue
		}
		if msg.RestaurantID == joined {
			// idempotent re-join
			continue
		}

		if denied := h.joinDenied(ownerID, msg.RestaurantID); denied != "" {
			h.direct <- directMessage{Conn: conn, Event: Event{Event: "error", Data: gin.H{"message": denied}}}
			continue
		}

		if joined != 0 {
			h.unregister <- Subscription{Conn: conn, RestaurantID: joined, ConnID: connID}
		}
		h.register <- Subscription{Conn: conn, RestaurantID: msg.RestaurantID, ConnID: connID}
		joined = msg.RestaurantID
	}
}

// joinDenied ตรวจสิทธิ์การ join ห้อง: เจ้าของร้าน join ได้เฉพาะร้านตัวเอง,
// guest join ได้เมื่อเปิด WS_ALLOW_GUEST_JOIN
func (h *OrderHub) joinDenied(ownerID, restaurantID uint) string {
	if ownerID != 0 && ownerID != restaurantID {
		return "cannot join another restaurant's room"
	}
	if ownerID == 0 && !h.allowGuestJoin {
		return "authentication required"
	}
	return ""
}
