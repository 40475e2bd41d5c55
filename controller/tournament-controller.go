package controller

import (
	"campadmin/app_error"
	"campadmin/service"

	"github.com/gin-gonic/gin"
)

type TournamentController struct {
	manager  *service.ConfigManager
	handlers namedEditorHandlers[*service.TournamentEditor]
}

func NewTournamentController(manager *service.ConfigManager) *TournamentController {
	return &TournamentController{
		manager: manager,
		handlers: namedEditorHandlers[*service.TournamentEditor]{
			editor: manager.TournamentEditor,
			respond: func(editor *service.TournamentEditor) any {
				return toTournamentEditorResponse(editor)
			},
		},
	}
}

func setupTournamentController(manager *service.ConfigManager) []RouteInfo {
	e := NewTournamentController(manager)
	return withBasePath("/tournaments", []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: e.getTournamentsHandler()},
		{Method: "POST", Path: "/drafts", HandlerFunc: e.createDraftHandler()},
		{Method: "POST", Path: "/select", HandlerFunc: e.selectTournamentHandler()},
		{Method: "GET", Path: "/editor", HandlerFunc: e.handlers.getEditor()},
		{Method: "PATCH", Path: "/editor", HandlerFunc: e.patchEditorHandler()},
		{Method: "PUT", Path: "/editor/name", HandlerFunc: e.handlers.setName()},
		{Method: "POST", Path: "/editor/name/blur", HandlerFunc: e.handlers.blurName()},
		{Method: "POST", Path: "/editor/lists/:field", HandlerFunc: e.handlers.addListItem()},
		{Method: "DELETE", Path: "/editor/lists/:field/:index", HandlerFunc: e.handlers.removeListItem()},
		{Method: "POST", Path: "/editor/save", HandlerFunc: e.handlers.save(e.save)},
		{Method: "POST", Path: "/editor/cancel", HandlerFunc: e.handlers.cancel()},
		{Method: "GET", Path: "/preview", HandlerFunc: e.getPreviewHandler()},
	})
}

// @Description Lists saved tournaments and local drafts
// @Tags tournament
// @Produce json
// @Success 200 {array} service.ConfigListing
// @Router /tournaments [get]
func (e *TournamentController) getTournamentsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, e.manager.Tournaments())
	}
}

// @Description Starts a new tournament draft that only exists in the console until saved
// @Tags tournament
// @Accept json
// @Produce json
// @Param body body DraftRequest false "Discard unsaved changes of the open tournament"
// @Success 201 {object} EditorResponse[restmodel.TournamentSpecificConfig]
// @Router /tournaments/drafts [post]
func (e *TournamentController) createDraftHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request DraftRequest
		if c.Request.ContentLength > 0 {
			if err := c.BindJSON(&request); err != nil {
				c.JSON(400, gin.H{"error": err.Error()})
				return
			}
		}
		editor, err := e.manager.CreateTournamentDraft(request.Force)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(201, toTournamentEditorResponse(editor))
	}
}

// @Description Opens the tournament editor on a saved tournament or a draft
// @Tags tournament
// @Accept json
// @Produce json
// @Param body body SelectRequest true "Tournament key as listed"
// @Success 200 {object} EditorResponse[restmodel.TournamentSpecificConfig]
// @Router /tournaments/select [post]
func (e *TournamentController) selectTournamentHandler() gin.HandlerFunc {
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
		editor, err := e.manager.SelectTournament(key, request.Force)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, toTournamentEditorResponse(editor))
	}
}

// @Description Updates fields of the tournament draft other than its name and lists
// @Tags tournament
// @Accept json
// @Produce json
// @Param body body service.TournamentPatch true "Fields to change"
// @Success 200 {object} EditorResponse[restmodel.TournamentSpecificConfig]
// @Router /tournaments/editor [patch]
func (e *TournamentController) patchEditorHandler() gin.HandlerFunc {
	return e.handlers.with(func(c *gin.Context, editor *service.TournamentEditor) bool {
		var patch service.TournamentPatch
		if err := c.BindJSON(&patch); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return false
		}
		editor.Apply(patch)
		return true
	})
}

func (e *TournamentController) save(c *gin.Context) error {
	return e.manager.SaveTournament(c)
}

// @Description Preview of the tournament draft
// @Tags tournament
// @Produce json
// @Success 200 {object} service.Preview
// @Router /tournaments/preview [get]
func (e *TournamentController) getPreviewHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		renderPreview(c, e.manager.Preview(service.PreviewTournament))
	}
}
