package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"swingconnect/pkg/errorx"
)

func TestFail_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err    error
		status int
	}{
		{errorx.ErrInvalidParam, http.StatusBadRequest},
		{errorx.ErrNeedLogin, http.StatusUnauthorized},
		{errorx.ErrForbidden, http.StatusForbidden},
		{errorx.ErrNotFound, http.StatusNotFound},
		{errorx.ErrEventFull, http.StatusBadRequest},
		{errors.New("db exploded"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

		Fail(c, tc.err)
		assert.Equal(t, tc.status, w.Code)
	}

	// 内部错误不把原始信息透给前端
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)
	Fail(c, errors.New("dsn=postgres://secret"))
	assert.NotContains(t, w.Body.String(), "secret")
}
