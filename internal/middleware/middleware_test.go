package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"skilltracker_backend/internal/model"
	"skilltracker_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "middleware-secret-middleware-secret"

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), AccessLog())
	r.GET("/me", AuthMiddleware(func() string { return secret }), func(c *gin.Context) {
		util.Success(c, gin.H{"user_id": util.GetUserFromContext(c).UserID})
	})
	return r
}

func token(t *testing.T, id uint) string {
	t.Helper()
	u := &model.User{}
	u.ID = id
	s, err := util.GenerateJWT(u, secret, time.Hour)
	require.NoError(t, err)
	return s
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter()

	cases := []struct {
		name   string
		header string
		query  string
		status int
	}{
		{name: "missing token", status: http.StatusUnauthorized},
		{name: "bearer", header: "Bearer " + token(t, 3), status: http.StatusOK},
		{name: "query token", query: "?token=" + token(t, 4), status: http.StatusOK},
		{name: "garbage", header: "Bearer nope", status: http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me"+tc.query, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestRequestIDPropagation(t *testing.T) {
	r := newRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Len(t, w.Header().Get(util.RequestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(util.RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(util.RequestIDHeader))
}
