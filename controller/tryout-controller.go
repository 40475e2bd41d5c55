package controller

import (
	"campadmin/app_error"
	"campadmin/service"

	"github.com/gin-gonic/gin"
)

type TryoutController struct {
	manager  *service.ConfigManager
	handlers namedEditorHandlers[*service.TryoutEditor]
}

func NewTryoutController(manager *service.ConfigManager) *TryoutController {
	return &TryoutController{
		manager: manager,
		handlers: namedEditorHandlers[*service.TryoutEditor]{
			editor: manager.TryoutEditor,
			respond: func(editor *service.TryoutEditor) any {
				return toTryoutEditorResponse(editor)
			},
		},
	}
}

func setupTryoutController(manager *service.ConfigManager) []RouteInfo {
	e := NewTryoutController(manager)
	return withBasePath("/tryouts", []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: e.getTryoutsHandler()},
		{Method: "POST", Path: "/drafts", HandlerFunc: e.createDraftHandler()},
		{Method: "POST", Path: "/select", HandlerFunc: e.selectTryoutHandler()},
		{Method: "GET", Path: "/editor", HandlerFunc: e.handlers.getEditor()},
		{Method: "PATCH", Path: "/editor", HandlerFunc: e.patchEditorHandler()},
		{Method: "PUT", Path: "/editor/name", HandlerFunc: e.handlers.setName()},
		{Method: "PUT", Path: "/editor/season", HandlerFunc: e.bindSeasonHandler()},
		{Method: "POST", Path: "/editor/name/blur", HandlerFunc: e.handlers.blurName()},
		{Method: "POST", Path: "/editor/lists/:field", HandlerFunc: e.handlers.addListItem()},
		{Method: "DELETE", Path: "/editor/lists/:field/:index", HandlerFunc: e.handlers.removeListItem()},
		{Method: "POST", Path: "/editor/save", HandlerFunc: e.handlers.save(e.save)},
		{Method: "POST", Path: "/editor/cancel", HandlerFunc: e.handlers.cancel()},
		{Method: "GET", Path: "/preview", HandlerFunc: e.getPreviewHandler()},
	})
}

// @Description Lists saved tryouts and local drafts
// @Tags tryout
// @Produce json
// @Success 200 {array} service.ConfigListing
// @Router /tryouts [get]
func (e *TryoutController) getTryoutsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, e.manager.Tryouts())
	}
}

// @Description Starts a new tryout draft that only exists in the console until saved
// @Tags tryout
// @Accept json
// @Produce json
// @Param body body DraftRequest false "Discard unsaved changes of the open tryout"
// @Success 201 {object} EditorResponse[restmodel.TryoutSpecificConfig]
// @Router /tryouts/drafts [post]
func (e *TryoutController) createDraftHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request DraftRequest
		if c.Request.ContentLength > 0 {
			if err := c.BindJSON(&request); err != nil {
				c.JSON(400, gin.H{"error": err.Error()})
				return
			}
		}
		editor, err := e.manager.CreateTryoutDraft(request.Force)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(201, toTryoutEditorResponse(editor))
	}
}

// @Description Opens the tryout editor on a saved tryout or a draft
// @Tags tryout
// @Accept json
// @Produce json
// @Param body body SelectRequest true "Tryout key as listed"
// @Success 200 {object} EditorResponse[restmodel.TryoutSpecificConfig]
// @Router /tryouts/select [post]
func (e *TryoutController) selectTryoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request SelectRequest
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		key, ok := service.ParseConfigKey(request.Key)
		if !ok {
			c.JSON(400, gin.H{"error": "unknown key " + request.Key})
			return
		}
		editor, err := e.manager.SelectTryout(key, request.Force)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, toTryoutEditorResponse(editor))
	}
}

// @Description Updates fields of the tryout draft other than its name and lists
// @Tags tryout
// @Accept json
// @Produce json
// @Param body body service.TryoutPatch true "Fields to change"
// @Success 200 {object} EditorResponse[restmodel.TryoutSpecificConfig]
// @Router /tryouts/editor [patch]
func (e *TryoutController) patchEditorHandler() gin.HandlerFunc {
	return e.handlers.with(func(c *gin.Context, editor *service.TryoutEditor) bool {
		var patch service.TryoutPatch
		if err := c.BindJSON(&patch); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return false
		}
		editor.Apply(patch)
		return true
	})
}

// @Description Binds the tryout draft to a season event
// @Tags tryout
// @Accept json
// @Produce json
// @Param body body BindSeasonRequest true "Season event"
// @Success 200 {object} EditorResponse[restmodel.TryoutSpecificConfig]
// @Router /tryouts/editor/season [put]
func (e *TryoutController) bindSeasonHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request BindSeasonRequest
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := e.manager.BindTryoutSeason(request.EventId); err != nil {
			app_error.Respond(c, err)
			return
		}
		e.handlers.getEditor()(c)
	}
}

func (e *TryoutController) save(c *gin.Context) error {
	return e.manager.SaveTryout(c)
}

// @Description Preview of the tryout draft
// @Tags tryout
// @Produce json
// @Success 200 {object} service.Preview
// @Router /tryouts/preview [get]
func (e *TryoutController) getPreviewHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		renderPreview(c, e.manager.Preview(service.PreviewTryout))
	}
}
