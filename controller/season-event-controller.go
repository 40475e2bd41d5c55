package controller

import (
	"campadmin/app_error"
	"campadmin/model/restmodel"
	"campadmin/service"

	"github.com/gin-gonic/gin"
)

type SeasonEventController struct {
	manager *service.ConfigManager
}

func NewSeasonEventController(manager *service.ConfigManager) *SeasonEventController {
	return &SeasonEventController{manager: manager}
}

func setupSeasonEventController(manager *service.ConfigManager) []RouteInfo {
	e := NewSeasonEventController(manager)
	return withBasePath("/season-events", []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: e.getSeasonEventsHandler()},
		{Method: "POST", Path: "", HandlerFunc: e.createSeasonEventHandler()},
		{Method: "DELETE", Path: "/:event_id", HandlerFunc: e.deleteSeasonEventHandler()},
	})
}

// @Description Fetches all season events
// @Tags season-event
// @Produce json
// @Success 200 {array} restmodel.SeasonEvent
// @Router /season-events [get]
func (e *SeasonEventController) getSeasonEventsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, e.manager.SeasonEvents())
	}
}

// @Description Creates a season event and selects it for training configuration
// @Tags season-event
// @Accept json
// @Produce json
// @Param event body restmodel.SeasonEventCreate true "Season event to create"
// @Success 201 {object} restmodel.SeasonEvent
// @Router /season-events [post]
func (e *SeasonEventController) createSeasonEventHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var create restmodel.SeasonEventCreate
		if err := c.BindJSON(&create); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		event, err := e.manager.CreateSeasonEvent(c, create)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(201, event)
	}
}

// @Description Deletes a season event together with its training configuration
// @Tags season-event
// @Param event_id path string true "Event Id"
// @Success 204
// @Router /season-events/{event_id} [delete]
func (e *SeasonEventController) deleteSeasonEventHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := e.manager.DeleteSeasonEvent(c, c.Param("event_id")); err != nil {
			app_error.Respond(c, err)
			return
		}
		c.Status(204)
	}
}
