package controller

import (
	"campadmin/app_error"
	"campadmin/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type TrainingController struct {
	manager *service.ConfigManager
}

func NewTrainingController(manager *service.ConfigManager) *TrainingController {
	return &TrainingController{manager: manager}
}

func setupTrainingController(manager *service.ConfigManager) []RouteInfo {
	e := NewTrainingController(manager)
	return withBasePath("/training", []RouteInfo{
		{Method: "POST", Path: "/select", HandlerFunc: e.selectSeasonHandler()},
		{Method: "GET", Path: "/editor", HandlerFunc: e.getEditorHandler()},
		{Method: "PATCH", Path: "/editor", HandlerFunc: e.patchEditorHandler()},
		{Method: "POST", Path: "/editor/packages", HandlerFunc: e.addPackageHandler()},
		{Method: "DELETE", Path: "/editor/packages/:package_id", HandlerFunc: e.removePackageHandler()},
		{Method: "POST", Path: "/editor/packages/:index/move", HandlerFunc: e.movePackageHandler()},
		{Method: "POST", Path: "/editor/save", HandlerFunc: e.saveHandler()},
		{Method: "POST", Path: "/editor/cancel", HandlerFunc: e.cancelHandler()},
		{Method: "GET", Path: "/preview", HandlerFunc: e.getPreviewHandler()},
	})
}

// withEditor runs fn against the open training editor and answers with its state.
func (e *TrainingController) withEditor(fn func(c *gin.Context, editor *service.TrainingEditor) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		editor, err := e.manager.TrainingEditor()
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		if fn != nil && !fn(c, editor) {
			return
		}
		c.JSON(200, toTrainingEditorResponse(editor))
	}
}

// @Description Opens the training editor on a season event. Fails with 409 when the open editor has unsaved changes and force is not set.
// @Tags training
// @Accept json
// @Produce json
// @Param body body SelectSeasonRequest true "Season event to select"
// @Success 200 {object} TrainingEditorResponse
// @Router /training/select [post]
func (e *TrainingController) selectSeasonHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request SelectSeasonRequest
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		editor, err := e.manager.SelectSeason(request.EventId, request.Force)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, toTrainingEditorResponse(editor))
	}
}

// @Description Current state of the training editor
// @Tags training
// @Produce json
// @Success 200 {object} TrainingEditorResponse
// @Router /training/editor [get]
func (e *TrainingController) getEditorHandler() gin.HandlerFunc {
	return e.withEditor(nil)
}

// @Description Updates the flags or base price of the training draft
// @Tags training
// @Accept json
// @Produce json
// @Param body body service.TrainingPatch true "Fields to change"
// @Success 200 {object} TrainingEditorResponse
// @Router /training/editor [patch]
func (e *TrainingController) patchEditorHandler() gin.HandlerFunc {
	return e.withEditor(func(c *gin.Context, editor *service.TrainingEditor) bool {
		var patch service.TrainingPatch
		if err := c.BindJSON(&patch); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return false
		}
		editor.Apply(patch)
		return true
	})
}

// @Description Appends a pricing package. Rejected with 422 unless the name is set and the price is above zero.
// @Tags training
// @Accept json
// @Produce json
// @Param body body service.PackageCandidate true "Package to add"
// @Success 200 {object} TrainingEditorResponse
// @Router /training/editor/packages [post]
func (e *TrainingController) addPackageHandler() gin.HandlerFunc {
	return e.withEditor(func(c *gin.Context, editor *service.TrainingEditor) bool {
		var candidate service.PackageCandidate
		if err := c.BindJSON(&candidate); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return false
		}
		if !editor.AddPackage(candidate) {
			c.JSON(422, gin.H{"error": "package needs a name and a price above zero"})
			return false
		}
		return true
	})
}

// @Description Removes a pricing package; unknown ids are ignored
// @Tags training
// @Produce json
// @Param package_id path string true "Package Id"
// @Success 200 {object} TrainingEditorResponse
// @Router /training/editor/packages/{package_id} [delete]
func (e *TrainingController) removePackageHandler() gin.HandlerFunc {
	return e.withEditor(func(c *gin.Context, editor *service.TrainingEditor) bool {
		editor.RemovePackage(c.Param("package_id"))
		return true
	})
}

// @Description Swaps a pricing package with its neighbour
// @Tags training
// @Accept json
// @Produce json
// @Param index path int true "Package position"
// @Param body body MoveRequest true "Direction"
// @Success 200 {object} TrainingEditorResponse
// @Router /training/editor/packages/{index}/move [post]
func (e *TrainingController) movePackageHandler() gin.HandlerFunc {
	return e.withEditor(func(c *gin.Context, editor *service.TrainingEditor) bool {
		index, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return false
		}
		var request MoveRequest
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return false
		}
		editor.MovePackage(index, request.Direction)
		return true
	})
}

// @Description Saves the training draft to the admin API
// @Tags training
// @Produce json
// @Success 200 {object} TrainingEditorResponse
// @Router /training/editor/save [post]
func (e *TrainingController) saveHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := e.manager.SaveTraining(c); err != nil {
			app_error.Respond(c, err)
			return
		}
		editor, err := e.manager.TrainingEditor()
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, toTrainingEditorResponse(editor))
	}
}

// @Description Discards the training draft's unsaved changes
// @Tags training
// @Produce json
// @Success 200 {object} TrainingEditorResponse
// @Router /training/editor/cancel [post]
func (e *TrainingController) cancelHandler() gin.HandlerFunc {
	return e.withEditor(func(c *gin.Context, editor *service.TrainingEditor) bool {
		editor.Cancel()
		return true
	})
}

// @Description Preview of the training draft
// @Tags training
// @Produce json
// @Success 200 {object} service.Preview
// @Router /training/preview [get]
func (e *TrainingController) getPreviewHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		renderPreview(c, e.manager.Preview(service.PreviewTraining))
	}
}
