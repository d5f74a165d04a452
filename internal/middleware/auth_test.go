package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DhavalSuthar-24/cricketclub/internal/common"
	"github.com/DhavalSuthar-24/cricketclub/pkg/rmiddleware"
	"github.com/DhavalSuthar-24/cricketclub/pkg/token"
	"github.com/gin-gonic/gin"
)

const secret = "middleware-secret"

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuthMiddleware(secret))
	r.GET("/whoami", func(c *gin.Context) {
		id, _ := common.GetUserIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "role": common.GetRoleFromContext(c)})
	})
	r.POST("/score", rmiddleware.ScorerOrAdminMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func bearer(t *testing.T, role string) string {
	t.Helper()
	s, err := token.GenerateJWT(7, role, secret, 5)
	if err != nil {
		t.Fatal(err)
	}
	return "Bearer " + s
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter()

	tests := []struct {
		name   string
		method string
		path   string
		header string
		want   int
	}{
		{"missing header", http.MethodGet, "/whoami", "", http.StatusUnauthorized},
		{"not bearer", http.MethodGet, "/whoami", "Token abc", http.StatusUnauthorized},
		{"bad token", http.MethodGet, "/whoami", "Bearer abc", http.StatusUnauthorized},
		{"viewer reads", http.MethodGet, "/whoami", bearer(t, "viewer"), http.StatusOK},
		{"viewer cannot score", http.MethodPost, "/score", bearer(t, "viewer"), http.StatusForbidden},
		{"scorer scores", http.MethodPost, "/score", bearer(t, "scorer"), http.StatusNoContent},
		{"admin scores", http.MethodPost, "/score", bearer(t, "ADMIN"), http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d (%s)", w.Code, tt.want, w.Body.String())
			}
		})
	}
}
