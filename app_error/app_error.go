package app_error

import (
	"errors"
	"net/http"

	"campadmin/client"
	"campadmin/service"

	"github.com/gin-gonic/gin"
)

type statusError struct {
	error
	status int
}

func (e statusError) Unwrap() error {
	return e.error
}

func (e statusError) HTTPStatus() int {
	return e.status
}

// New attaches a fixed HTTP status to err.
func New(err error, status int) error {
	return statusError{error: err, status: status}
}

// StatusFor maps a console error to the status the browser sees. Admin API failures are
// reported as 502 except for 4xx answers, which are passed through.
func StatusFor(err error) int {
	var withStatus interface{ HTTPStatus() int }
	if errors.As(err, &withStatus) {
		return withStatus.HTTPStatus()
	}
	var validation service.ValidationErrors
	if errors.As(err, &validation) {
		return http.StatusUnprocessableEntity
	}
	var clientErr *client.ClientError
	if errors.As(err, &clientErr) {
		if clientErr.StatusCode >= 400 && clientErr.StatusCode < 500 {
			return clientErr.StatusCode
		}
		return http.StatusBadGateway
	}
	switch {
	case errors.Is(err, service.ErrUnsavedChanges), errors.Is(err, service.ErrSaveInProgress):
		return http.StatusConflict
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrNoSelection):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func WithHTTPStatus(c *gin.Context, err error, status int) {
	c.JSON(status, gin.H{"error": err.Error()})
}

// Respond writes err with its mapped status; validation errors carry their field messages.
func Respond(c *gin.Context, err error) {
	status := StatusFor(err)
	var validation service.ValidationErrors
	if errors.As(err, &validation) {
		c.JSON(status, gin.H{"error": err.Error(), "fields": validation})
		return
	}
	WithHTTPStatus(c, err, status)
}
