package controller

import (
	"campadmin/app_error"
	"campadmin/service"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// namedEditor is the part shared by the tournament and tryout editors.
type namedEditor interface {
	SetIdentity(name string)
	BlurIdentity()
	AddListItem(field service.ListField, value string) bool
	RemoveListItem(field service.ListField, index int) bool
	Cancel()
}

type namedEditorHandlers[E namedEditor] struct {
	editor  func() (E, error)
	respond func(editor E) any
}

func (h namedEditorHandlers[E]) with(fn func(c *gin.Context, editor E) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		editor, err := h.editor()
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		if fn != nil && !fn(c, editor) {
			return
		}
		c.JSON(200, h.respond(editor))
	}
}

func (h namedEditorHandlers[E]) getEditor() gin.HandlerFunc {
	return h.with(nil)
}

func (h namedEditorHandlers[E]) setName() gin.HandlerFunc {
	return h.with(func(c *gin.Context, editor E) bool {
		var request NameRequest
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return false
		}
		editor.SetIdentity(request.Name)
		return true
	})
}

func (h namedEditorHandlers[E]) blurName() gin.HandlerFunc {
	return h.with(func(c *gin.Context, editor E) bool {
		editor.BlurIdentity()
		return true
	})
}

// addListItem ignores blank values and malformed dates; the response shows the unchanged list.
func (h namedEditorHandlers[E]) addListItem() gin.HandlerFunc {
	return h.with(func(c *gin.Context, editor E) bool {
		field, ok := listField(c)
		if !ok {
			return false
		}
		var request ListItemRequest
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return false
		}
		editor.AddListItem(field, request.Value)
		return true
	})
}

func (h namedEditorHandlers[E]) removeListItem() gin.HandlerFunc {
	return h.with(func(c *gin.Context, editor E) bool {
		field, ok := listField(c)
		if !ok {
			return false
		}
		index, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return false
		}
		editor.RemoveListItem(field, index)
		return true
	})
}

func (h namedEditorHandlers[E]) cancel() gin.HandlerFunc {
	return h.with(func(c *gin.Context, editor E) bool {
		editor.Cancel()
		return true
	})
}

func (h namedEditorHandlers[E]) save(save func(c *gin.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := save(c); err != nil {
			app_error.Respond(c, err)
			return
		}
		h.with(nil)(c)
	}
}

func listField(c *gin.Context) (service.ListField, bool) {
	field, ok := service.ParseListField(c.Param("field"))
	if !ok {
		app_error.WithHTTPStatus(c, errors.New("unknown list field "+c.Param("field")), http.StatusBadRequest)
	}
	return field, ok
}
