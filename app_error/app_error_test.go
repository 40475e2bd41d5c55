package app_error

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"campadmin/client"
	"campadmin/service"

	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", service.ValidationErrors{"tournamentName": "Tournament name is required"}, http.StatusUnprocessableEntity},
		{"unsaved", service.ErrUnsavedChanges, http.StatusConflict},
		{"wrapped unsaved", fmt.Errorf("select: %w", service.ErrUnsavedChanges), http.StatusConflict},
		{"no selection", service.ErrNoSelection, http.StatusNotFound},
		{"not found", service.ErrNotFound, http.StatusNotFound},
		{"upstream unauthorized", &client.ClientError{StatusCode: 401, Code: "response_error"}, http.StatusUnauthorized},
		{"upstream failure", &client.ClientError{StatusCode: 500, Code: "response_error"}, http.StatusBadGateway},
		{"transport failure", &client.ClientError{Code: "request_error"}, http.StatusBadGateway},
		{"explicit", New(errors.New("bad index"), http.StatusBadRequest), http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StatusFor(tc.err))
		})
	}
}
