package controller

import (
	"campadmin/config"
	"campadmin/service"
	"encoding/json"
	"log"
	"net/http"
	"slices"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type BannerController struct {
	notifier    *service.Notifier
	upgrader    websocket.Upgrader
	mu          sync.Mutex
	connections map[*websocket.Conn]struct{}
	stop        func()
}

func NewBannerController(notifier *service.Notifier, allowedOrigins []string) *BannerController {
	controller := &BannerController{
		notifier:    notifier,
		upgrader:    newUpgrader(allowedOrigins),
		connections: make(map[*websocket.Conn]struct{}),
	}
	controller.StartBannerBroadcaster()
	return controller
}

func setupBannerController(e *BannerController) []RouteInfo {
	return withBasePath("/banners", []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: e.getBannersHandler()},
		{Method: "DELETE", Path: "/:id", HandlerFunc: e.dismissBannerHandler()},
		{Method: "GET", Path: "/ws", HandlerFunc: e.WebSocketHandler},
	})
}

// newUpgrader accepts any origin outside production; in production only the CORS origins.
func newUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if !config.IsProduction() {
				return true
			}
			origin := r.Header.Get("Origin")
			return origin == "" || slices.Contains(allowedOrigins, origin)
		},
	}
}

// @Description Banners currently shown. Success banners disappear on their own, error banners stay until dismissed.
// @Tags banners
// @Produce json
// @Success 200 {array} service.Banner
// @Router /banners [get]
func (e *BannerController) getBannersHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, e.notifier.Banners())
	}
}

// @Description Dismisses a banner
// @Tags banners
// @Param id path string true "Banner Id"
// @Success 204
// @Router /banners/{id} [delete]
func (e *BannerController) dismissBannerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !e.notifier.Dismiss(c.Param("id")) {
			c.JSON(404, gin.H{"error": "Banner not found"})
			return
		}
		c.Status(204)
	}
}

// @id BannerWebSocket
// @Description Websocket for banner updates. Every change sends the complete list of banners.
// @Tags banners
// @Router /banners/ws [get]
// @Success 200 {array} service.Banner
func (e *BannerController) WebSocketHandler(c *gin.Context) {
	conn, err := e.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		http.NotFound(c.Writer, c.Request)
		return
	}
	defer conn.Close()

	serialized, err := json.Marshal(e.notifier.Banners())
	if err != nil {
		return
	}
	// register before the first write so no broadcast can reach the connection earlier
	e.mu.Lock()
	err = conn.WriteMessage(websocket.TextMessage, serialized)
	if err == nil {
		e.connections[conn] = struct{}{}
	}
	e.mu.Unlock()
	if err != nil {
		return
	}

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			e.mu.Lock()
			delete(e.connections, conn)
			e.mu.Unlock()
			return
		}
	}
}

// StartBannerBroadcaster forwards every banner change to the open websocket connections
// until Stop is called.
func (e *BannerController) StartBannerBroadcaster() {
	updates, cancel := e.notifier.Subscribe()
	e.stop = cancel
	go func() {
		for banners := range updates {
			serialized, err := json.Marshal(banners)
			if err != nil {
				log.Printf("Error serializing banners: %v", err)
				continue
			}
			e.mu.Lock()
			for conn := range e.connections {
				if err := conn.WriteMessage(websocket.TextMessage, serialized); err != nil {
					conn.Close()
					delete(e.connections, conn)
				}
			}
			e.mu.Unlock()
		}
	}()
}

// Stop ends the broadcaster and closes the open connections.
func (e *BannerController) Stop() {
	e.stop()
	e.mu.Lock()
	defer e.mu.Unlock()
	for conn := range e.connections {
		conn.Close()
		delete(e.connections, conn)
	}
}
