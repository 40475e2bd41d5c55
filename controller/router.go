package controller

import (
	"campadmin/auth"
	"campadmin/config"
	"campadmin/service"

	"github.com/gin-gonic/gin"
)

type RouteInfo struct {
	Method      string
	Path        string
	HandlerFunc gin.HandlerFunc
}

// SetRoutes registers the console API below /api. The returned func stops the banner
// websocket broadcaster.
func SetRoutes(r *gin.Engine, manager *service.ConfigManager, notifier *service.Notifier, tokens *auth.TokenStore) func() {
	banners := NewBannerController(notifier, config.Env().AllowedOrigins)
	routes := make([]RouteInfo, 0)
	routes = append(routes, setupStatusController(manager)...)
	routes = append(routes, setupSeasonEventController(manager)...)
	routes = append(routes, setupTrainingController(manager)...)
	routes = append(routes, setupTournamentController(manager)...)
	routes = append(routes, setupTryoutController(manager)...)
	routes = append(routes, setupBannerController(banners)...)
	routes = append(routes, setupTokenController(tokens)...)
	api := r.Group("/api")
	for _, route := range routes {
		api.Handle(route.Method, route.Path, route.HandlerFunc)
	}
	return banners.Stop
}

func withBasePath(basePath string, routes []RouteInfo) []RouteInfo {
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}
