package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubRegistrar struct {
	prefix string
}

func (s *stubRegistrar) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET(s.prefix+"/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
}

func TestRouterSetup_RegistersUnderAPIBasePath(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)
	r.Register(&stubRegistrar{prefix: "/widgets"})
	r.Setup()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/widgets/ping", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestRouterSetup_PageRegistrarsAtRoot(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)
	r.RegisterPages(&stubRegistrar{prefix: "/pages"})
	r.Setup()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/pages/ping", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestRouterSetup_APIMiddlewareDoesNotApplyToPages(t *testing.T) {
	engine := gin.New()
	var apiHits int
	counter := func(c *gin.Context) {
		apiHits++
		c.Next()
	}

	r := NewRouter(engine, WithAPIMiddleware(counter))
	r.Register(&stubRegistrar{prefix: "/widgets"})
	r.RegisterPages(&stubRegistrar{prefix: "/pages"})
	r.Setup()

	engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/pages/ping", nil))
	assert.Equal(t, 0, apiHits)

	engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/widgets/ping", nil))
	assert.Equal(t, 1, apiHits)
}

func TestRouterSetup_CustomBasePath(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithBasePath("/v2"))
	r.Register(&stubRegistrar{prefix: "/widgets"})
	r.Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v2/widgets/ping", nil))
	require.Equal(t, http.StatusOK, w.Code)
}
