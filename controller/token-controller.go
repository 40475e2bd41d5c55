package controller

import (
	"campadmin/app_error"
	"campadmin/auth"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

type TokenController struct {
	tokens *auth.TokenStore
}

func NewTokenController(tokens *auth.TokenStore) *TokenController {
	return &TokenController{tokens: tokens}
}

func setupTokenController(tokens *auth.TokenStore) []RouteInfo {
	e := NewTokenController(tokens)
	return withBasePath("/token", []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: e.getTokenStatusHandler()},
		{Method: "PUT", Path: "", HandlerFunc: e.setTokenHandler()},
		{Method: "DELETE", Path: "", HandlerFunc: e.clearTokenHandler()},
	})
}

type TokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// TokenStatus never contains the token itself.
type TokenStatus struct {
	Configured bool       `json:"configured"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	Expired    bool       `json:"expired"`
}

func (e *TokenController) status() TokenStatus {
	token, _ := e.tokens.Token()
	status := TokenStatus{Configured: token.AccessToken != ""}
	if !token.Expiry.IsZero() {
		expiry := token.Expiry
		status.ExpiresAt = &expiry
		status.Expired = expiry.Before(time.Now())
	}
	return status
}

// @Description Reports whether an admin token is stored and when it expires
// @Tags token
// @Produce json
// @Success 200 {object} TokenStatus
// @Router /token [get]
func (e *TokenController) getTokenStatusHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, e.status())
	}
}

// @Description Stores the admin token used for saving configurations
// @Tags token
// @Accept json
// @Produce json
// @Param body body TokenRequest true "Admin token"
// @Success 200 {object} TokenStatus
// @Router /token [put]
func (e *TokenController) setTokenHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request TokenRequest
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if strings.TrimSpace(request.Token) == "" {
			app_error.Respond(c, app_error.New(errors.New("token must not be blank"), http.StatusBadRequest))
			return
		}
		if err := e.tokens.Set(request.Token); err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, e.status())
	}
}

// @Description Forgets the stored admin token
// @Tags token
// @Success 204
// @Router /token [delete]
func (e *TokenController) clearTokenHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := e.tokens.Clear(); err != nil {
			app_error.Respond(c, err)
			return
		}
		c.Status(204)
	}
}
