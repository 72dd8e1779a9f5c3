package cart_controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"

	"github.com/HaiderNafees/ElysianThreads/catalog"
	"github.com/HaiderNafees/ElysianThreads/models"
	"github.com/HaiderNafees/ElysianThreads/services"
	"github.com/HaiderNafees/ElysianThreads/store"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	catalog.Init()
	services.InitSessions(store.NewMemoryClient(), services.NewErrorEmitter(), catalog.Default())

	router := gin.New()
	user := router.Group("/user")
	user.Use(func(c *gin.Context) {
		c.Set("identity", models.Identity{UID: "u1"})
	})
	user.GET("/cart", GetCart)
	user.POST("/cart", AddToCart)
	user.PATCH("/cart/:productId", UpdateQuantity)
	user.DELETE("/cart/:productId", RemoveItem)
	return router
}

type cartEnvelope struct {
	Message string `json:"message"`
	Error   bool   `json:"error"`
	Data    struct {
		Items []struct {
			ProductID string  `json:"productId"`
			Quantity  int     `json:"quantity"`
			LineTotal float64 `json:"lineTotal"`
		} `json:"items"`
		Subtotal float64 `json:"subtotal"`
		Status   string  `json:"status"`
	} `json:"data"`
}

func do(t *testing.T, router *gin.Engine, method, url, payload string) (int, cartEnvelope) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var env cartEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return w.Code, env
}

// settle waits for the session's remote writes to resolve so a later
// request observes reconciled state.
func settle(t *testing.T) {
	t.Helper()
	session, ok := services.Sessions().Get("u1")
	if !ok {
		t.Fatal("session not attached")
	}
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if session.Cart.Sync().Status() == services.SyncLive {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("cart never went live")
}

func TestCartLifecycle(t *testing.T) {
	router := newTestRouter(t)

	code, env := do(t, router, http.MethodGet, "/user/cart", "")
	assert.Equal(t, http.StatusOK, code)
	settle(t)

	code, env = do(t, router, http.MethodPost, "/user/cart", `{"productId":"1","quantity":2}`)
	assert.Equal(t, http.StatusAccepted, code)
	assert.Equal(t, 1, len(env.Data.Items))
	assert.Equal(t, 2, env.Data.Items[0].Quantity)
	assert.NotEqual(t, float64(0), env.Data.Subtotal)

	code, env = do(t, router, http.MethodPatch, "/user/cart/1", `{"quantity":5}`)
	assert.Equal(t, http.StatusAccepted, code)
	assert.Equal(t, "Quantity updated", env.Message)
	assert.Equal(t, 5, env.Data.Items[0].Quantity)

	code, env = do(t, router, http.MethodDelete, "/user/cart/1", "")
	assert.Equal(t, http.StatusAccepted, code)
	assert.Equal(t, 0, len(env.Data.Items))
	assert.Equal(t, float64(0), env.Data.Subtotal)
}

func TestAddToCartValidation(t *testing.T) {
	router := newTestRouter(t)

	code, env := do(t, router, http.MethodPost, "/user/cart", `{"productId":"1","quantity":0}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, true, env.Error)

	code, env = do(t, router, http.MethodPost, "/user/cart", `{"productId":"not-a-product","quantity":1}`)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, true, env.Error)

	code, env = do(t, router, http.MethodPost, "/user/cart", `not json`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, true, env.Error)
}

func TestUpdateQuantityBelowOneIsNoOp(t *testing.T) {
	router := newTestRouter(t)

	code, _ := do(t, router, http.MethodPost, "/user/cart", `{"productId":"2","quantity":3}`)
	assert.Equal(t, http.StatusAccepted, code)

	code, env := do(t, router, http.MethodPatch, "/user/cart/2", `{"quantity":0}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Quantity unchanged", env.Message)
	assert.Equal(t, 3, env.Data.Items[0].Quantity)
}

func TestCartRequiresIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	catalog.Init()
	services.InitSessions(store.NewMemoryClient(), services.NewErrorEmitter(), catalog.Default())

	router := gin.New()
	router.GET("/user/cart", GetCart)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/user/cart", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
