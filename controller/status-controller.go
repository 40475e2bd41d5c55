package controller

import (
	"campadmin/app_error"
	"campadmin/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type StatusController struct {
	manager *service.ConfigManager
}

func NewStatusController(manager *service.ConfigManager) *StatusController {
	return &StatusController{manager: manager}
}

func setupStatusController(manager *service.ConfigManager) []RouteInfo {
	e := NewStatusController(manager)
	return []RouteInfo{
		{Method: "POST", Path: "/load", HandlerFunc: e.loadHandler()},
		{Method: "GET", Path: "/status", HandlerFunc: e.getStatusHandler()},
		{Method: "GET", Path: "/unsaved", HandlerFunc: e.getUnsavedHandler()},
		{Method: "GET", Path: "/preview", HandlerFunc: e.getActivePreviewHandler()},
	}
}

// @Description Reloads season events and all configurations from the admin API
// @Tags status
// @Produce json
// @Success 200 {object} service.ManagerStatus
// @Router /load [post]
func (e *StatusController) loadHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := e.manager.LoadAll(c); err != nil {
			app_error.WithHTTPStatus(c, err, http.StatusBadGateway)
			return
		}
		c.JSON(200, e.manager.Status())
	}
}

// @Description Loading flag, current selections and collection sizes
// @Tags status
// @Produce json
// @Success 200 {object} service.ManagerStatus
// @Router /status [get]
func (e *StatusController) getStatusHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, e.manager.Status())
	}
}

// @Description Whether any editor holds unsaved changes, for the page-leave prompt
// @Tags status
// @Produce json
// @Success 200 {object} UnsavedResponse
// @Router /unsaved [get]
func (e *StatusController) getUnsavedHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, UnsavedResponse{UnsavedChanges: e.manager.HasUnsavedChanges()})
	}
}

// @Description Preview of the configuration selected last
// @Tags preview
// @Produce json
// @Success 200 {object} service.Preview
// @Router /preview [get]
func (e *StatusController) getActivePreviewHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		renderPreview(c, e.manager.ActivePreview())
	}
}

// renderPreview answers with plain text when ?format=text is set.
func renderPreview(c *gin.Context, preview service.Preview) {
	if c.Query("format") == "text" {
		c.String(200, preview.Render())
		return
	}
	c.JSON(200, preview)
}
