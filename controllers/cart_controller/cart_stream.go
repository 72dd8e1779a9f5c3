package cart_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/HaiderNafees/ElysianThreads/middleware"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// StreamCart pushes a full cart snapshot over a websocket on every change,
// mirroring the snapshot-per-change contract of the backing subscription.
func StreamCart(c *gin.Context) {
	session, _, ok := middleware.SessionFromContext(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	signals, cancel := session.Cart.Sync().Watch()
	defer cancel()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	send := func() bool {
		lines, subtotal, status := session.Cart.Lines()
		return conn.WriteJSON(gin.H{
			"items":    lines,
			"subtotal": subtotal,
			"status":   status.String(),
		}) == nil
	}

	if !send() {
		return
	}
	for {
		select {
		case <-closed:
			return
		case <-signals:
			if !send() {
				return
			}
		}
	}
}
