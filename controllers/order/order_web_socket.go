package orderControllers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/junaidrashid-git/storefront-api/middleware"
	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/rs/zerolog/log"
)

const (
	writeWait = 5 * time.Second
	// sendBuffer is how many events a dashboard may fall behind before it is dropped.
	sendBuffer = 16
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type OrderMessage struct {
	Type  string       `json:"type"` // "order.placed" or "order.updated"
	Order models.Order `json:"order"`
}

type feedClient struct {
	send chan []byte
	// sellerID scopes the feed to one seller's items; zero receives everything.
	sellerID uint
}

// Hub fans order events out to connected seller and admin dashboards.
type Hub struct {
	mu      sync.Mutex
	clients map[*feedClient]bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*feedClient]bool)}
}

func (h *Hub) add(cl *feedClient) {
	h.mu.Lock()
	h.clients[cl] = true
	h.mu.Unlock()
}

// remove unregisters cl and closes its queue, which stops its writer.
func (h *Hub) remove(cl *feedClient) {
	h.mu.Lock()
	if h.clients[cl] {
		delete(h.clients, cl)
		close(cl.send)
	}
	h.mu.Unlock()
}

// Clients returns the number of connected dashboards.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast queues order for every admin and for each seller owning one of
// its items. It never waits on a socket; a client whose queue is full is dropped.
func (h *Hub) Broadcast(kind string, order models.Order) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for cl := range h.clients {
		msg := OrderMessage{Type: kind, Order: order}
		if cl.sellerID != 0 {
			msg.Order.Items = itemsOfSeller(order.Items, cl.sellerID)
			if len(msg.Order.Items) == 0 {
				continue
			}
		}
		data, err := json.Marshal(msg)
		if err != nil {
			log.Error().Err(err).Uint("order_id", order.ID).Msg("❌ Failed to encode order event")
			continue
		}
		select {
		case cl.send <- data:
		default:
			log.Warn().Uint("seller_id", cl.sellerID).Msg("Order feed client too slow, dropping")
			delete(h.clients, cl)
			close(cl.send)
		}
	}
}

func itemsOfSeller(items []models.OrderItem, sellerID uint) []models.OrderItem {
	var out []models.OrderItem
	for _, it := range items {
		if it.SellerID == sellerID {
			out = append(out, it)
		}
	}
	return out
}

// writeFeed drains the client's queue onto the socket until the hub closes it.
func writeFeed(conn *websocket.Conn, send <-chan []byte) {
	defer conn.Close()
	for data := range send {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Warn().Err(err).Msg("Order feed write failed")
			return
		}
	}
	conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// OrderWebSocketHandler upgrades to a live order feed. Sellers only see
// their own items, admins see every order.
func OrderWebSocketHandler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sellerID uint
		if middleware.CurrentRole(c) == models.RoleSeller {
			sellerID, _ = middleware.CurrentUserID(c)
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		cl := &feedClient{send: make(chan []byte, sendBuffer), sellerID: sellerID}
		hub.add(cl)
		go writeFeed(conn, cl.send)
		defer hub.remove(cl)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}
}
