package serializer

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pilotdata/project/internal/modules/repo"
	"github.com/pilotdata/project/internal/pkg/apperr"
	"github.com/stretchr/testify/assert"
)

func TestAppErr(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{name: "not found", err: apperr.NotFound("project is not found", nil), status: http.StatusNotFound, msg: "project is not found"},
		{name: "conflict", err: apperr.AlreadyExists("", nil), status: http.StatusConflict, msg: "resource already exists"},
		{name: "unavailable", err: apperr.ServiceUnavailable("", nil), status: http.StatusServiceUnavailable, msg: "required service is unavailable"},
		{name: "unhandled", err: apperr.Unhandled("unable to create project", nil), status: http.StatusInternalServerError, msg: "unable to create project"},
		{name: "plain error", err: errors.New("boom"), status: http.StatusInternalServerError, msg: "unexpected error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, res := AppErr(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.status, res.Code)
			assert.Equal(t, tt.msg, res.Msg)
			assert.Nil(t, res.Data)
		})
	}
}

func TestAppErr_ValidationFields(t *testing.T) {
	status, res := AppErr(apperr.Validation("invalid base64 string", "body", "base64"))
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "validation error", res.Msg)
	assert.Equal(t, []apperr.FieldError{{Loc: []string{"body", "base64"}, Msg: "invalid base64 string"}}, res.Data)
}

func TestErr_HidesCauseInRelease(t *testing.T) {
	gin.SetMode(gin.ReleaseMode)
	defer gin.SetMode(gin.TestMode)

	res := Err(http.StatusInternalServerError, "unexpected error", errors.New("secret detail"))
	assert.Empty(t, res.Error)
}

func TestNewList(t *testing.T) {
	page := &repo.Page[int]{Pagination: repo.Pagination{Page: 1, PageSize: 2}, Total: 5, Entries: []int{3, 4}}

	got := NewList(page, func(v int) int { return v * 10 })
	assert.Equal(t, ListResponse[int]{NumOfPages: 3, Page: 1, Total: 5, Result: []int{30, 40}}, got)
}
